// Package timeblocks splits the last seven days into fixed 6-hour UTC windows.
package timeblocks

import (
	"time"

	"hnblocks/internal/models"
)

const (
	BlockSize    = 6 * time.Hour
	BlocksPerDay = 4
	Days         = 7
	Count        = Days * BlocksPerDay
	RecentCount  = 3
	RecentMaxAge = RecentCount * BlockSize
)

// Latest returns the start of the newest window, i.e. the UTC-aligned
// window that contains now. A window starting exactly at now has not
// begun yet, so the previous one is returned in that case.
func Latest(now time.Time) time.Time {
	now = now.UTC()
	start := now.Truncate(BlockSize)
	if !start.Before(now) {
		start = start.Add(-BlockSize)
	}
	return start
}

// Generate returns the Count windows ending with the one in progress at now,
// oldest first. The last RecentCount windows are marked recent.
func Generate(now time.Time) []models.TimeBlock {
	now = now.UTC()
	first := Latest(now).Add(-(Count - 1) * BlockSize)

	blocks := make([]models.TimeBlock, 0, Count)
	for i := 0; i < Count; i++ {
		start := first.Add(time.Duration(i) * BlockSize)
		blocks = append(blocks, newBlock(start, now, i >= Count-RecentCount))
	}
	return blocks
}

// Describe builds a block for an arbitrary aligned start, marking it recent
// when it is one of the newest windows at now.
func Describe(start int64, now time.Time) models.TimeBlock {
	s := time.Unix(start, 0).UTC()
	return newBlock(s, now.UTC(), IsRecentByAge(s, now))
}

// IsRecentByAge reports whether a window starting at start is young enough
// to still count as recent. For generated windows it agrees with the
// ordinal rule used by Generate.
func IsRecentByAge(start, now time.Time) bool {
	if !start.Before(now) {
		return false
	}
	return now.Sub(start) <= RecentMaxAge
}

func IsAligned(start, end int64) bool {
	return start%models.BlockDuration == 0 && end-start == models.BlockDuration
}

func newBlock(start, now time.Time, recent bool) models.TimeBlock {
	return models.TimeBlock{
		Start:    start.Unix(),
		End:      start.Add(BlockSize).Unix(),
		Label:    DayLabel(start, now) + " " + TimeLabel(start),
		Date:     DateLabel(start),
		IsRecent: recent,
	}
}
