package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"hnblocks/internal/models"
	"hnblocks/internal/timeblocks"
)

type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	recent   lipgloss.Style
	rank     lipgloss.Style
	points   lipgloss.Style
	empty    lipgloss.Style
	settings lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6600")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		recent:   r.NewStyle().Foreground(lipgloss.Color("#f87171")),
		rank:     r.NewStyle().Width(4).Align(lipgloss.Right),
		points:   r.NewStyle().Bold(true),
		empty:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		settings: r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// renderBlocks lists the blocks newest first with their --block index.
// Recent blocks are only marked when the settings ask for it.
func (st styles) renderBlocks(blocks []models.TimeBlock, settings models.SettingsConfig) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Time blocks (UTC)") + "\n")
	for i := len(blocks) - 1; i >= 0; i-- {
		block := blocks[i]
		line := fmt.Sprintf("%3d  %-24s %s", len(blocks)-1-i, block.Label, st.muted.Render(block.Date))
		if settings.ShowRecentBlocks && block.IsRecent {
			line = st.recent.Render(line + "  ● recent")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func countLine(view *models.StoryView) string {
	line := fmt.Sprintf("%d stories", view.Count)
	if view.Count != view.OriginalCount {
		line = fmt.Sprintf("%d of %d stories", view.Count, view.OriginalCount)
	}
	if view.FilterSummary != "" {
		line += " • " + view.FilterSummary
	}
	return line
}

func (st styles) renderView(view *models.StoryView, now time.Time) string {
	var b strings.Builder
	b.WriteString(st.title.Render(view.Title) + "\n")
	b.WriteString(st.muted.Render(view.Description) + "\n")
	b.WriteString(countLine(view) + "\n\n")

	if view.State != models.ViewStateOK {
		b.WriteString(st.empty.Render(view.Message()) + "\n")
		if view.State == models.ViewStateNoMatch {
			b.WriteString(st.muted.Render("Try adjusting your filters in settings") + "\n")
		}
		return b.String()
	}

	for _, s := range view.Stories {
		title := s.Title
		if domain := timeblocks.ExtractDomain(s.URL); domain != "" {
			title += st.muted.Render(" (" + domain + ")")
		}
		b.WriteString(st.rank.Render(fmt.Sprintf("%d.", s.Rank)) + " " + title + "\n")
		b.WriteString(fmt.Sprintf("     %s by %s %s | %d comments\n",
			st.points.Render(fmt.Sprintf("%d points", s.Points)),
			s.Author,
			timeblocks.TimeAgo(s.CreatedAtI, now),
			s.NumComments,
		))
		b.WriteString("     " + st.muted.Render(timeblocks.StoryLink(s.Story)) + "\n")
		if s.URL != nil && *s.URL != "" {
			b.WriteString("     " + st.muted.Render("discuss: "+timeblocks.CommentsLink(s.ObjectID)) + "\n")
		}
		b.WriteString("     " + st.muted.Render("author: "+timeblocks.AuthorLink(s.Author)) + "\n")
	}
	return b.String()
}

func (st styles) renderSettings(s models.SettingsConfig) string {
	ranking := "off"
	if s.MinRanking > 0 {
		ranking = fmt.Sprintf("top %d", s.MinRanking)
	}
	points := "off"
	if s.MinPoints > 0 {
		points = fmt.Sprintf("%d+", s.MinPoints)
	}
	body := fmt.Sprintf("Minimum ranking:    %s\nMinimum points:     %s\nShow recent blocks: %t", ranking, points, s.ShowRecentBlocks)
	return st.settings.Render(body) + "\n"
}
