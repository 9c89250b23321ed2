package dto

import (
	"encoding/json"
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type CaseviewListQuery struct {
	FilterId string   `form:"filterId" binding:"required"`
	Format   string   `form:"format"`
	Actions  []string `form:"actions"`
	Page     int      `form:"page" binding:"min=0"`
	PageSize int      `form:"pageSize" binding:"min=0,max=500"`
}

// query parameters that are not search criteria
var CaseviewListQueryParams = []string{"filterId", "format", "actions", "page", "pageSize"}

type CaseviewQuery struct {
	FilterId    string `form:"filterId" binding:"required"`
	Format      string `form:"format"`
	RespectLock bool   `form:"respectLock"`
	RetainLock  bool   `form:"retainLock"`
}

type CaseviewUri struct {
	CaseviewId string `uri:"caseview_id" binding:"required"`
}

type CaseviewDto struct {
	CaseviewId string          `json:"caseview_id"`
	Data       json.RawMessage `json:"data"`
	LockedBy   *string         `json:"locked_by,omitempty"`
	LockedAt   *time.Time      `json:"locked_at,omitempty"`
}

func AdaptCaseviewDto(c models.Caseview) CaseviewDto {
	return CaseviewDto{CaseviewId: c.CaseviewId, Data: c.Data}
}

func AdaptCaseviewWithLockDto(c models.CaseviewWithLock) CaseviewDto {
	out := AdaptCaseviewDto(c.Caseview)
	out.LockedBy = c.LockedBy.Ptr()
	out.LockedAt = c.LockedAt.Ptr()
	return out
}

type CaseviewListPageDto struct {
	Caseviews     []CaseviewDto `json:"caseviews,omitempty"`
	CaseListCount *int          `json:"case_list_count,omitempty"`
	TotalCount    *int64        `json:"total_count,omitempty"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
}

func AdaptCaseviewListPageDto(page models.CaseviewListPage) CaseviewListPageDto {
	out := CaseviewListPageDto{
		CaseListCount: page.CaseListCount,
		TotalCount:    page.TotalCount,
		Page:          page.Page,
		PageSize:      page.PageSize,
	}
	if page.Caseviews != nil {
		out.Caseviews = pure_utils.Map(page.Caseviews, AdaptCaseviewWithLockDto)
	}
	return out
}
