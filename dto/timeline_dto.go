package dto

import (
	"time"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type DocumentDto struct {
	Id          string    `json:"id"`
	DocumentKey string    `json:"document_key"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	UserId      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func AdaptDocumentDto(d models.Document) DocumentDto {
	return DocumentDto{
		Id:          d.Id,
		DocumentKey: d.DocumentKey,
		Name:        d.Name,
		Type:        d.Type,
		UserId:      d.UserId,
		CreatedAt:   d.CreatedAt,
	}
}

type ActivityValueDto struct {
	Key      string `json:"key"`
	NewValue any    `json:"new_value"`
	OldValue any    `json:"old_value"`
}

type ActivityDto struct {
	UserId   string             `json:"user_id"`
	DateTime time.Time          `json:"date_time"`
	Type     string             `json:"type"`
	Values   []ActivityValueDto `json:"values"`
}

func AdaptActivityDto(a models.Activity) ActivityDto {
	return ActivityDto{
		UserId:   a.UserId,
		DateTime: a.DateTime,
		Type:     string(a.Type),
		Values: pure_utils.Map(a.Values, func(v models.ActivityValue) ActivityValueDto {
			return ActivityValueDto{Key: v.Key, NewValue: v.NewValue, OldValue: v.OldValue}
		}),
	}
}

type TimelineItemDto struct {
	Kind     string       `json:"kind"`
	DateTime time.Time    `json:"date_time"`
	Document *DocumentDto `json:"document,omitempty"`
	Comment  *CommentDto  `json:"comment,omitempty"`
	Activity *ActivityDto `json:"activity,omitempty"`
}

func AdaptTimelineItemDto(item models.TimelineItem) TimelineItemDto {
	out := TimelineItemDto{Kind: string(item.Kind), DateTime: item.DateTime}
	switch {
	case item.Document != nil:
		out.Document = pure_utils.Ptr(AdaptDocumentDto(*item.Document))
	case item.Comment != nil:
		out.Comment = pure_utils.Ptr(AdaptCommentDto(*item.Comment))
	case item.Activity != nil:
		out.Activity = pure_utils.Ptr(AdaptActivityDto(*item.Activity))
	}
	return out
}
