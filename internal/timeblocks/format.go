package timeblocks

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"hnblocks/internal/models"
)

const hnBaseURL = "https://news.ycombinator.com"

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayLabel names the UTC day of t relative to now.
func DayLabel(t, now time.Time) string {
	days := int(startOfDay(now).Sub(startOfDay(t)).Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return DateLabel(t)
	}
}

// TimeLabel renders the window starting at t as HH:00-HH:00.
// The last window of a day closes with 24:00.
func TimeLabel(t time.Time) string {
	h := t.UTC().Hour()
	return fmt.Sprintf("%02d:00-%02d:00", h, h+int(BlockSize/time.Hour))
}

func DateLabel(t time.Time) string {
	return t.UTC().Format("Jan 2")
}

// BlockTitle renders a label such as "Jan 3 12:00-18:00" as "Jan 3, 12:00-18:00 UTC".
func BlockTitle(b models.TimeBlock) string {
	i := strings.LastIndexByte(b.Label, ' ')
	if i < 0 {
		return b.Label + " UTC"
	}
	return fmt.Sprintf("%s, %s UTC", b.Label[:i], b.Label[i+1:])
}

func BlockDescription(b models.TimeBlock) string {
	date := time.Unix(b.Start, 0).UTC().Format("January 2, 2006")
	if b.IsRecent {
		return date + " • Latest stories (still receiving votes)"
	}
	return date + " • Solidified stories"
}

func FilterSummary(s models.SettingsConfig) string {
	if !s.HasFilters() {
		return ""
	}
	var parts []string
	if s.MinRanking > 0 {
		parts = append(parts, fmt.Sprintf("Top %d only", s.MinRanking))
	}
	if s.MinPoints > 0 {
		parts = append(parts, fmt.Sprintf("%d+ points", s.MinPoints))
	}
	return strings.Join(parts, " • ")
}

// TimeAgo renders the distance between ts and now in whole minutes, hours or days.
func TimeAgo(ts int64, now time.Time) string {
	// clock skew can put ts slightly ahead of now
	diff := max(now.Unix()-ts, 0)
	switch {
	case diff < 3600:
		return plural(diff/60, "minute")
	case diff < 86400:
		return plural(diff/3600, "hour")
	default:
		return plural(diff/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func ExtractDomain(raw *string) string {
	if raw == nil || *raw == "" {
		return ""
	}
	u, err := url.Parse(*raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func CommentsLink(id string) string {
	return hnBaseURL + "/item?id=" + url.QueryEscape(id)
}

func AuthorLink(author string) string {
	return hnBaseURL + "/user?id=" + url.QueryEscape(author)
}

// StoryLink points at the submitted url, or at the discussion for text posts.
func StoryLink(s models.Story) string {
	if s.URL != nil && *s.URL != "" {
		return *s.URL
	}
	return CommentsLink(s.ObjectID)
}
