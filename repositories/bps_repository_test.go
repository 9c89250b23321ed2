package repositories

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/caseview-backend/models"
)

const bpsHost = "http://bps.local"

func newTestBpsRepository() BpsRepository {
	return NewBpsRepository(&http.Client{}, bpsHost+"/api")
}

func TestBpsGetHistory(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/caseviews/case-1/history").
		Reply(http.StatusOK).
		BodyString(`{"data": [{
			"historyId": "h1",
			"businessKey": "case-1",
			"serviceId": "cases-update",
			"bundleType": " search and update ",
			"userId": "alice",
			"completed": "2024-03-01T10:00:00Z",
			"characteristics": {"amount": {"currentValue": 12.50, "previousValue": 10, "dataType": "Numeric"}}
		}]}`)

	history, err := newTestBpsRepository().GetHistory(t.Context(), "case-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.BundleSearchAndUpdate, history[0].Type)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), history[0].Completed.UTC())
	assert.Equal(t, json.Number("12.50"), history[0].Characteristics["amount"].CurrentValue)
	assert.Equal(t, json.Number("10"), history[0].Characteristics["amount"].PreviousValue)
	assert.True(t, gock.IsDone())
}

func TestBpsGetLockStatusNullOwner(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/locks/case-1").
		Reply(http.StatusOK).
		BodyString(`{"data": {"businessKey": "case-1", "userId": null, "timestamp": null}}`)

	lock, err := newTestBpsRepository().GetLockStatus(t.Context(), "case-1")
	require.NoError(t, err)
	assert.Equal(t, "case-1", lock.BusinessKey)
	assert.False(t, lock.IsLocked())
	assert.False(t, lock.Timestamp.Valid)
}

func TestBpsGetLockStatusBatch(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Post("/api/locks/query").
		JSON(map[string][]string{"businessKeys": {"c1", "c2"}}).
		Reply(http.StatusOK).
		BodyString(`{"data": [{"businessKey": "c2", "userId": "bob", "timestamp": "2024-03-01T10:00:00Z"}]}`)

	locks, err := newTestBpsRepository().GetLockStatusBatch(t.Context(), []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Len(t, locks, 1)
	assert.True(t, locks["c2"].IsLockedBy("bob"))
}

func TestBpsErrorsAreRemoteErrors(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/caseviews/case-1/notes").
		Reply(http.StatusInternalServerError).
		JSON(map[string]string{"message": "boom"})

	_, err := newTestBpsRepository().GetNotes(t.Context(), "case-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrBpsUnavailable)
	assert.Contains(t, err.Error(), "boom")
}

func TestBpsNotFound(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/history/unknown").
		Reply(http.StatusNotFound)

	_, err := newTestBpsRepository().GetHistoryDetails(t.Context(), "unknown")
	assert.ErrorIs(t, err, models.NotFoundError)
}

func TestBpsSearchSendsCriteriaAndPaging(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Post("/api/services/cases-summary/search").
		MatchParam("flat", "true").
		MatchParam("page", "2").
		MatchParam("pageSize", "20").
		MatchHeader("X-External-User", "partner").
		JSON(map[string]any{"status": "OPEN"}).
		Reply(http.StatusOK).
		BodyString(`{"data": [{"caseId": "c1"}, {"caseId": "c2"}]}`)

	rows, err := newTestBpsRepository().Search(t.Context(), models.SearchInput{
		ServiceId:    "cases-summary",
		Criteria:     map[string]any{"status": "OPEN"},
		Flat:         true,
		Page:         2,
		PageSize:     20,
		ExternalUser: "partner",
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.JSONEq(t, `{"caseId": "c1"}`, string(rows[0]))
}

func TestBpsCountWithoutPayload(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Post("/api/services/cases-summary/count").
		Reply(http.StatusOK).
		BodyString(`{"data": null}`)

	count, err := newTestBpsRepository().Count(t.Context(), models.CountInput{ServiceId: "cases-summary"})
	require.NoError(t, err)
	assert.Nil(t, count)
}

func TestBpsGetDataDefinitionSendsToken(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/services/cases-summary/data-definition").
		MatchHeader("Authorization", "Bearer internal-token").
		Reply(http.StatusOK).
		BodyString(`{"data": {
			"dateFormat": "dd/MM/yyyy",
			"inputDefinition": [{"key": "applicant[0].name", "dataType": "String"}],
			"outputDefinition": [{"key": "score", "dataType": "NumericInteger"}]
		}}`)

	definition, err := newTestBpsRepository().GetDataDefinition(t.Context(), "cases-summary", "internal-token")
	require.NoError(t, err)
	require.NotNil(t, definition)
	assert.Equal(t, "cases-summary", definition.ServiceId)
	assert.Equal(t, "dd/MM/yyyy", definition.DateFormat)
	assert.Equal(t, []string{"applicant[0].name", "score"}, []string{
		definition.Characteristics()[0].Key,
		definition.Characteristics()[1].Key,
	})
}

func TestBpsGetValidValuesNullPayload(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/valid-values").
		Reply(http.StatusOK).
		BodyString(`{"data": null}`)

	_, err := newTestBpsRepository().GetValidValues(t.Context())
	assert.ErrorIs(t, err, models.ErrBpsUnavailable)
}

func TestBpsGetDocumentContent(t *testing.T) {
	defer gock.Off()

	gock.New(bpsHost).
		Get("/api/documents/doc-1").
		MatchParam("documentType", "pdf").
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/pdf").
		SetHeader("Content-Disposition", `attachment; filename="report.pdf"`).
		BodyString("%PDF-1.4")

	content, err := newTestBpsRepository().GetDocumentContent(t.Context(), "doc-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", content.FileName)
	assert.Equal(t, "application/pdf", content.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), content.Content)
}

func TestBpsPostNoteKeepsAttachmentContentType(t *testing.T) {
	defer gock.Off()

	partTypes := map[string]string{}
	gock.New(bpsHost).
		Post("/api/notes").
		MatchHeader("X-User-Id", "alice").
		AddMatcher(func(req *http.Request, _ *gock.Request) (bool, error) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return false, err
			}
			req.Body = io.NopCloser(bytes.NewReader(raw))
			_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
			if err != nil {
				return false, err
			}
			reader := multipart.NewReader(bytes.NewReader(raw), params["boundary"])
			for {
				part, err := reader.NextPart()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return false, err
				}
				if part.FormName() == "attachments" {
					partTypes[part.FileName()] = part.Header.Get("Content-Type")
				}
			}
			return true, nil
		}).
		Reply(http.StatusOK).
		BodyString(`{"data": {"note": {"id": "n1", "businessKey": "case-1", "content": "hello", "userId": "alice"}, "invalidAttachments": []}}`)

	result, err := newTestBpsRepository().PostNote(t.Context(), models.PostNoteInput{
		CaseviewId: "case-1",
		Content:    "hello",
		UserId:     "alice",
		Attachments: []models.Attachment{
			{FileName: "scan.png", ContentType: "image/png", Content: []byte("png")},
			{FileName: "blob.bin", Content: []byte("bin")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", result.Note.Id)
	assert.Equal(t, map[string]string{
		"scan.png": "image/png",
		"blob.bin": "application/octet-stream",
	}, partTypes)
	assert.True(t, gock.IsDone())
}
