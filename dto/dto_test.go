package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

func TestAdaptCaseviewListPageDto_searchOnly(t *testing.T) {
	lockedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	page := models.CaseviewListPage{
		Caseviews: []models.CaseviewWithLock{
			{
				Caseview: models.Caseview{CaseviewId: "c1", Data: json.RawMessage(`{"id":"c1"}`)},
				LockedBy: null.StringFrom("bob"),
				LockedAt: null.TimeFrom(lockedAt),
			},
			{Caseview: models.Caseview{CaseviewId: "c2", Data: json.RawMessage(`{"id":"c2"}`)}},
		},
		Page:     1,
		PageSize: 20,
	}

	body, err := json.Marshal(AdaptCaseviewListPageDto(page))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"caseviews": [
			{"caseview_id": "c1", "data": {"id": "c1"}, "locked_by": "bob", "locked_at": "2024-03-01T10:00:00Z"},
			{"caseview_id": "c2", "data": {"id": "c2"}}
		],
		"page": 1,
		"page_size": 20
	}`, string(body))
}

func TestAdaptCaseviewListPageDto_countOnly(t *testing.T) {
	body, err := json.Marshal(AdaptCaseviewListPageDto(models.CaseviewListPage{
		TotalCount: pure_utils.Ptr(int64(12)),
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"total_count": 12, "page": 0, "page_size": 0}`, string(body))
}

func TestAdaptTimelineItemDto(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	item := AdaptTimelineItemDto(models.CommentTimelineItem(models.Comment{
		Id:        "n1",
		Content:   "hello",
		CreatedAt: at,
	}))

	assert.Equal(t, "COMMENT", item.Kind)
	assert.Equal(t, at, item.DateTime)
	require.NotNil(t, item.Comment)
	assert.Equal(t, "n1", item.Comment.Id)
	assert.Empty(t, item.Comment.ValidAttachments)
	assert.NotNil(t, item.Comment.ValidAttachments)
	assert.Nil(t, item.Document)
	assert.Nil(t, item.Activity)
}
