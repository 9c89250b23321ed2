package models

import "time"

type ActivityType string

const (
	ActivityCreate           ActivityType = "CREATE"
	ActivityUpdate           ActivityType = "UPDATE"
	ActivityRead             ActivityType = "READ"
	ActivityExternalActivity ActivityType = "EXTERNAL_ACTIVITY"
)

type ActivityValue struct {
	Key      string
	NewValue any
	OldValue any
}

type Activity struct {
	UserId   string
	DateTime time.Time
	Type     ActivityType
	Values   []ActivityValue
}
