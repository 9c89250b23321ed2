package models

import (
	"strings"
	"time"
)

type BundleType string

const (
	BundleNew                  BundleType = "NEW"
	BundleSearch               BundleType = "SEARCH"
	BundleSearchPage           BundleType = "SEARCHPAGE"
	BundleSearchAndUpdate      BundleType = "SEARCH AND UPDATE"
	BundleRobotSearchAndUpdate BundleType = "ROBOT SEARCH AND UPDATE"
)

func BundleTypeFrom(s string) BundleType {
	return BundleType(strings.ToUpper(strings.TrimSpace(s)))
}

type CharacteristicChange struct {
	CurrentValue  any
	PreviousValue any
	DataType      string
}

// HistoryRecord is one BPS audit entry: the execution of a BPS service against a case.
type HistoryRecord struct {
	Id              string
	BusinessKey     string
	ServiceId       string
	Type            BundleType
	UserId          string
	Completed       time.Time
	Characteristics map[string]CharacteristicChange
}

type HistoryCharacteristic struct {
	Key      string
	Value    any
	DataType string
}

type HistoryDetails struct {
	HistoryId       string
	Characteristics []HistoryCharacteristic
}
