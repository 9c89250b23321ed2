package usecases

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/usecases/characteristics"
	"github.com/checkmarble/caseview-backend/usecases/security"
	"github.com/checkmarble/caseview-backend/utils"
)

// Only the services creating or updating a case are part of its activity. Plain searches are not.
var activityBundleTypes = set.From([]models.BundleType{
	models.BundleNew,
	models.BundleSearchAndUpdate,
	models.BundleRobotSearchAndUpdate,
})

type ActivityRepository interface {
	GetDocuments(ctx context.Context, caseviewId string) ([]models.Document, error)
	GetNotes(ctx context.Context, caseviewId string) ([]models.BpsNote, error)
	GetHistory(ctx context.Context, caseviewId string) ([]models.HistoryRecord, error)
}

type ServiceRegistry interface {
	IsRegisteredService(serviceId string) bool
}

type ActivityUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	repository      ActivityRepository
	registry        ServiceRegistry
	converter       characteristics.Converter
	contentSizeMax  int
}

// GetSingleLogActivitiesForCase returns the documents, comments and activities of a case,
// newest first. updateServiceId is the BPS service whose executions count as updates.
func (usecase *ActivityUsecase) GetSingleLogActivitiesForCase(
	ctx context.Context,
	caseviewId string,
	updateServiceId string,
) ([]models.TimelineItem, error) {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return nil, err
	}

	ctx, span := utils.StartSpan(ctx, "ActivityUsecase.GetSingleLogActivitiesForCase",
		attribute.String("caseview_id", caseviewId))
	defer span.End()

	var (
		documents []models.Document
		notes     []models.BpsNote
		history   []models.HistoryRecord
	)
	group := errgroup.Group{}
	group.Go(func() (err error) {
		documents, err = usecase.repository.GetDocuments(ctx, caseviewId)
		return errors.Wrap(err, "could not get case documents")
	})
	group.Go(func() (err error) {
		notes, err = usecase.repository.GetNotes(ctx, caseviewId)
		return errors.Wrap(err, "could not get case notes")
	})
	group.Go(func() (err error) {
		history, err = usecase.repository.GetHistory(ctx, caseviewId)
		return errors.Wrap(err, "could not get case history")
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	comments := commentsFromNotes(ctx, notes, usecase.enforceSecurity.CanViewAttachments(), usecase.contentSizeMax)
	activities := usecase.activitiesFromHistory(ctx, history, updateServiceId)

	timeline := make([]models.TimelineItem, 0, len(documents)+len(comments)+len(activities))
	for _, d := range documents {
		timeline = append(timeline, models.DocumentTimelineItem(d))
	}
	for _, c := range comments {
		timeline = append(timeline, models.CommentTimelineItem(c))
	}
	for _, a := range activities {
		timeline = append(timeline, models.ActivityTimelineItem(a))
	}
	models.SortTimelineNewestFirst(timeline)

	return timeline, nil
}

func (usecase *ActivityUsecase) activitiesFromHistory(
	ctx context.Context,
	history []models.HistoryRecord,
	updateServiceId string,
) []models.Activity {
	records := pure_utils.Filter(sanitiseHistory(history), func(r models.HistoryRecord) bool {
		return activityBundleTypes.Contains(r.Type)
	})
	return pure_utils.Map(records, func(r models.HistoryRecord) models.Activity {
		return models.Activity{
			UserId:   r.UserId,
			DateTime: r.Completed,
			Type:     usecase.activityType(r, updateServiceId),
			Values:   usecase.changedValues(ctx, r),
		}
	})
}

func (usecase *ActivityUsecase) activityType(record models.HistoryRecord, updateServiceId string) models.ActivityType {
	switch {
	case record.Type != models.BundleNew && !usecase.registry.IsRegisteredService(record.ServiceId):
		return models.ActivityExternalActivity
	case record.Type == models.BundleNew:
		return models.ActivityCreate
	case record.ServiceId == updateServiceId:
		return models.ActivityUpdate
	default:
		return models.ActivityRead
	}
}

func (usecase *ActivityUsecase) changedValues(ctx context.Context, record models.HistoryRecord) []models.ActivityValue {
	values := make([]models.ActivityValue, 0, len(record.Characteristics))
	for _, key := range pure_utils.SortedKeys(record.Characteristics) {
		change := record.Characteristics[key]
		if reflect.DeepEqual(change.CurrentValue, change.PreviousValue) {
			continue
		}
		values = append(values, models.ActivityValue{
			Key:      key,
			NewValue: usecase.converter.ToStrongTyped(ctx, change.CurrentValue, change.DataType),
			OldValue: usecase.converter.ToStrongTyped(ctx, change.PreviousValue, change.DataType),
		})
	}
	return values
}

// sanitiseHistory normalises bundle types, drops records without type or completion date,
// and removes records repeating an already seen history id.
func sanitiseHistory(history []models.HistoryRecord) []models.HistoryRecord {
	seen := set.New[string](len(history))
	out := make([]models.HistoryRecord, 0, len(history))
	for _, record := range history {
		record.Type = models.BundleTypeFrom(string(record.Type))
		if strings.TrimSpace(string(record.Type)) == "" || record.Completed.IsZero() {
			continue
		}
		if record.Id != "" && !seen.Insert(record.Id) {
			continue
		}
		out = append(out, record)
	}
	return out
}
