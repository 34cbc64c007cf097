package timeblocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hnblocks/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDayLabel(t *testing.T) {
	now := time.Date(2024, 1, 8, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", DayLabel(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Yesterday", DayLabel(time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Jan 6", DayLabel(time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC), now))
}

func TestTimeLabel(t *testing.T) {
	assert.Equal(t, "00:00-06:00", TimeLabel(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "06:00-12:00", TimeLabel(time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, "18:00-24:00", TimeLabel(time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)))
}

func TestBlockTitleAndDescription(t *testing.T) {
	b := models.TimeBlock{
		Start:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC).Unix(),
		Label:    "Today 00:00-06:00",
		IsRecent: true,
	}
	assert.Equal(t, "Today, 00:00-06:00 UTC", BlockTitle(b))
	assert.Equal(t, "January 8, 2024 • Latest stories (still receiving votes)", BlockDescription(b))

	b.IsRecent = false
	assert.Equal(t, "January 8, 2024 • Solidified stories", BlockDescription(b))

	b.Label = "Jan 3 12:00-18:00"
	assert.Equal(t, "Jan 3, 12:00-18:00 UTC", BlockTitle(b))
}

func TestFilterSummary(t *testing.T) {
	assert.Equal(t, "", FilterSummary(models.DefaultSettings()))
	assert.Equal(t, "Top 10 only", FilterSummary(models.SettingsConfig{MinRanking: 10}))
	assert.Equal(t, "25+ points", FilterSummary(models.SettingsConfig{MinPoints: 25}))
	assert.Equal(t, "Top 10 only • 25+ points", FilterSummary(models.SettingsConfig{MinRanking: 10, MinPoints: 25}))
}

func TestTimeAgo(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := now.Unix()
	assert.Equal(t, "0 minutes ago", TimeAgo(ts, now))
	assert.Equal(t, "1 minute ago", TimeAgo(ts-60, now))
	assert.Equal(t, "59 minutes ago", TimeAgo(ts-3599, now))
	assert.Equal(t, "1 hour ago", TimeAgo(ts-3600, now))
	assert.Equal(t, "23 hours ago", TimeAgo(ts-86399, now))
	assert.Equal(t, "1 day ago", TimeAgo(ts-86400, now))
	assert.Equal(t, "3 days ago", TimeAgo(ts-3*86400, now))
	assert.Equal(t, "0 minutes ago", TimeAgo(ts+120, now))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "example.com", ExtractDomain(strPtr("https://www.example.com/a/b?c=d")))
	assert.Equal(t, "blog.example.org", ExtractDomain(strPtr("http://blog.example.org:8080/post")))
	assert.Equal(t, "", ExtractDomain(strPtr("not a url")))
	assert.Equal(t, "", ExtractDomain(strPtr("")))
	assert.Equal(t, "", ExtractDomain(nil))
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "https://news.ycombinator.com/item?id=123", CommentsLink("123"))
	assert.Equal(t, "https://news.ycombinator.com/user?id=pg", AuthorLink("pg"))

	assert.Equal(t, "https://example.com", StoryLink(models.Story{ObjectID: "1", URL: strPtr("https://example.com")}))
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", StoryLink(models.Story{ObjectID: "1"}))
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", StoryLink(models.Story{ObjectID: "1", URL: strPtr("")}))
}
