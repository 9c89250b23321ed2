package models

import (
	"slices"
	"time"
)

type TimelineItemKind string

const (
	TimelineDocument TimelineItemKind = "DOCUMENT"
	TimelineComment  TimelineItemKind = "COMMENT"
	TimelineActivity TimelineItemKind = "ACTIVITY"
)

// TimelineItem is one entry of the case activity timeline. Exactly one of Document, Comment
// or Activity is set, according to Kind.
type TimelineItem struct {
	Kind     TimelineItemKind
	DateTime time.Time
	Document *Document
	Comment  *Comment
	Activity *Activity
}

func DocumentTimelineItem(d Document) TimelineItem {
	return TimelineItem{Kind: TimelineDocument, DateTime: d.CreatedAt, Document: &d}
}

func CommentTimelineItem(c Comment) TimelineItem {
	return TimelineItem{Kind: TimelineComment, DateTime: c.CreatedAt, Comment: &c}
}

func ActivityTimelineItem(a Activity) TimelineItem {
	return TimelineItem{Kind: TimelineActivity, DateTime: a.DateTime, Activity: &a}
}

// SortTimelineNewestFirst sorts in place, newest first. Items with the same date keep their
// relative order.
func SortTimelineNewestFirst(items []TimelineItem) {
	slices.SortStableFunc(items, func(a, b TimelineItem) int {
		return b.DateTime.Compare(a.DateTime)
	})
}
