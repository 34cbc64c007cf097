package models

// BlockDuration is the width of every time block in seconds.
const BlockDuration int64 = 6 * 60 * 60

type TimeBlock struct {
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Label    string `json:"label"`
	Date     string `json:"date"`
	IsRecent bool   `json:"isRecent"`
}

func (b TimeBlock) Contains(ts int64) bool {
	return ts >= b.Start && ts < b.End
}
