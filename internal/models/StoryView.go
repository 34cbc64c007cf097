package models

type ViewState string

const (
	ViewStateOK         ViewState = "ok"
	ViewStateEmpty      ViewState = "empty"
	ViewStateNoMatch    ViewState = "no_match"
	ViewStateUnselected ViewState = "unselected"
)

type RankedStory struct {
	Rank int `json:"rank"`
	Story
}

// StoryView is the filtered, ranked content of one time block.
// Count and OriginalCount alone are enough to tell an empty block
// from a block whose stories were all filtered out.
type StoryView struct {
	Block         *TimeBlock    `json:"block,omitempty"`
	Title         string        `json:"title,omitempty"`
	Description   string        `json:"description,omitempty"`
	Stories       []RankedStory `json:"stories"`
	Count         int           `json:"count"`
	OriginalCount int           `json:"originalCount"`
	State         ViewState     `json:"state"`
	FilterSummary string        `json:"filterSummary,omitempty"`
}

func StateFor(count, originalCount int) ViewState {
	switch {
	case originalCount == 0:
		return ViewStateEmpty
	case count == 0:
		return ViewStateNoMatch
	default:
		return ViewStateOK
	}
}

func (v StoryView) Message() string {
	switch v.State {
	case ViewStateEmpty:
		return "No stories found for this time block"
	case ViewStateNoMatch:
		return "No stories match your filter criteria"
	case ViewStateUnselected:
		return "Select a time block to see its stories"
	default:
		return ""
	}
}
