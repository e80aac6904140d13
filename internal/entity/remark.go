package entity

import (
	"sort"
	"time"
)

// Remark is the post-meeting note. Remarks are never edited once added.
type Remark struct {
	ID        string    `json:"id"`
	MeetingID string    `json:"meeting_id"`
	RecordID  string    `json:"record_id,omitempty"`
	Text      string    `json:"text"`
	Author    string    `json:"author,omitempty"`
	AddedTime time.Time `json:"added_time"`
}

func SortRemarksNewestFirst(remarks []Remark) {
	sort.SliceStable(remarks, func(i, j int) bool {
		return remarks[i].AddedTime.After(remarks[j].AddedTime)
	})
}
