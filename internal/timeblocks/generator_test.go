package timeblocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnblocks/internal/models"
)

func TestGenerate_Example(t *testing.T) {
	now := time.Date(2024, 1, 8, 5, 0, 0, 0, time.UTC)
	blocks := Generate(now)
	require.Len(t, blocks, Count)

	last := blocks[Count-1]
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC).Unix(), last.Start)
	assert.Equal(t, time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC).Unix(), last.End)
	assert.Equal(t, "Today 00:00-06:00", last.Label)
	assert.Equal(t, "Jan 8", last.Date)
	assert.True(t, last.IsRecent)

	prev := blocks[Count-2]
	assert.Equal(t, "Yesterday 18:00-24:00", prev.Label)
	assert.True(t, prev.IsRecent)
	assert.True(t, blocks[Count-3].IsRecent)
	assert.False(t, blocks[Count-4].IsRecent)

	first := blocks[0]
	assert.Equal(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC).Unix(), first.Start)
	assert.Equal(t, "Jan 1 06:00-12:00", first.Label)
}

func TestGenerate_Properties(t *testing.T) {
	base := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	// every 37 minutes across three days, plus exact boundaries
	var instants []time.Time
	for m := 0; m < 3*24*60; m += 37 {
		instants = append(instants, base.Add(time.Duration(m)*time.Minute))
	}
	for h := 0; h < 48; h += 6 {
		instants = append(instants, base.Add(time.Duration(h)*time.Hour))
	}

	for _, now := range instants {
		blocks := Generate(now)
		require.Len(t, blocks, Count, now)

		recent := 0
		for i, b := range blocks {
			assert.Equal(t, models.BlockDuration, b.End-b.Start, now)
			assert.Zero(t, b.Start%models.BlockDuration, now)
			assert.Less(t, b.Start, now.Unix(), now)
			assert.LessOrEqual(t, now.Unix()-b.Start, int64(7*24*3600), now)
			if i > 0 {
				assert.Equal(t, blocks[i-1].End, b.Start, now)
			}
			if b.IsRecent {
				recent++
			}
			assert.Equal(t, b.IsRecent, IsRecentByAge(time.Unix(b.Start, 0), now), "ordinal and age rules disagree at %s for %s", now, b.Label)
		}
		assert.Equal(t, RecentCount, recent, now)
		assert.True(t, blocks[Count-1].IsRecent)
	}
}

func TestLatest_OnBoundary(t *testing.T) {
	now := time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Latest(now))

	justAfter := now.Add(time.Second)
	assert.Equal(t, now, Latest(justAfter))
}

func TestLatest_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	now := time.Date(2024, 1, 8, 8, 0, 0, 0, loc) // 05:00 UTC
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), Latest(now))
}

func TestDescribe_MatchesGenerated(t *testing.T) {
	now := time.Date(2024, 1, 8, 13, 30, 0, 0, time.UTC)
	for _, b := range Generate(now) {
		assert.Equal(t, b, Describe(b.Start, now))
	}
}

func TestDescribe_FutureBlockNotRecent(t *testing.T) {
	now := time.Date(2024, 1, 8, 5, 0, 0, 0, time.UTC)
	future := time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC).Unix()
	assert.False(t, Describe(future, now).IsRecent)
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned(1704672000, 1704672000+21600))
	assert.False(t, IsAligned(1704672001, 1704672001+21600))
	assert.False(t, IsAligned(1704672000, 1704672000+3600))
	assert.False(t, IsAligned(1704672000, 1704672000))
}
