package models

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type PayloadFormat string

const (
	FormatFlat         PayloadFormat = "flat"
	FormatHierarchical PayloadFormat = "hierarchical"
)

func PayloadFormatFrom(s string) (PayloadFormat, error) {
	switch PayloadFormat(s) {
	case FormatFlat, FormatHierarchical:
		return PayloadFormat(s), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "got %q", s)
	}
}

func (f PayloadFormat) IsFlat() bool {
	return f == FormatFlat
}

type SearchAction string

const (
	ActionSearch SearchAction = "search"
	ActionCount  SearchAction = "count"
)

type Caseview struct {
	CaseviewId string
	Data       json.RawMessage
}

type CaseviewWithLock struct {
	Caseview
	LockedBy null.String
	LockedAt null.Time
}

type CaseviewListPage struct {
	// nil when the search action was not requested
	Caseviews     []CaseviewWithLock
	CaseListCount *int
	TotalCount    *int64
	Page          int
	PageSize      int
}

type SearchCasesInput struct {
	ServiceId   string
	BusinessKey string
	Format      string
	Actions     []SearchAction
	Criteria    map[string]any
	Page        int
	PageSize    int
}

type GetSingleCaseInput struct {
	ServiceId   string
	BusinessKey string
	CaseviewId  string
	Format      string
	RespectLock bool
}

type UpdateSingleCaseInput struct {
	ServiceId                  string
	BusinessKey                string
	CaseviewId                 string
	Format                     string
	RetainLock                 bool
	ExternalUserCharacteristic string
}

type PatchCaseInput struct {
	UpdateSingleCaseInput
	Data map[string]any
}

// BPS facing inputs

type SearchInput struct {
	ServiceId    string
	Criteria     map[string]any
	Flat         bool
	Page         int
	PageSize     int
	UserId       string
	ExternalUser string
}

type CountInput struct {
	ServiceId string
	Criteria  map[string]any
	Flat      bool
}

type UpdateServiceInput struct {
	ServiceId    string
	RetainLock   bool
	Data         map[string]any
	Flat         bool
	UserId       string
	ExternalUser string
}
