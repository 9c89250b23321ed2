package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
	"github.com/checkmarble/caseview-backend/repositories/httpmodels"
)

const (
	headerUserId       = "X-User-Id"
	headerExternalUser = "X-External-User"
)

// BpsRepository is the http client of the business process system (BPS), which owns cases,
// their notes, documents, history and locks.
type BpsRepository struct {
	client  *http.Client
	baseUrl string
}

func NewBpsRepository(client *http.Client, baseUrl string) BpsRepository {
	return BpsRepository{client: client, baseUrl: baseUrl}
}

func (repo BpsRepository) url(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return repo.baseUrl + fmt.Sprintf(format, escaped...)
}

func newJSONRequest(ctx context.Context, method, u string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "could not encode request body")
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func setUserHeaders(req *http.Request, userId, externalUser string) {
	if userId != "" {
		req.Header.Set(headerUserId, userId)
	}
	if externalUser != "" {
		req.Header.Set(headerExternalUser, externalUser)
	}
}

func getList[T, U any](ctx context.Context, repo BpsRepository, operation, u string, adapt func(T) U) ([]U, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var resp httpmodels.HTTPBpsResponse[[]T]
	if err := doJSON(ctx, repo.client, operation, models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []U{}, nil
	}
	return pure_utils.Map(*resp.Data, adapt), nil
}

func (repo BpsRepository) GetDocuments(ctx context.Context, caseviewId string) ([]models.Document, error) {
	return getList(ctx, repo, "bps_get_documents",
		repo.url("/caseviews/%s/documents", caseviewId), httpmodels.AdaptBpsDocument)
}

func (repo BpsRepository) GetNotes(ctx context.Context, caseviewId string) ([]models.BpsNote, error) {
	return getList(ctx, repo, "bps_get_notes",
		repo.url("/caseviews/%s/notes", caseviewId), httpmodels.AdaptBpsNote)
}

func (repo BpsRepository) GetHistory(ctx context.Context, caseviewId string) ([]models.HistoryRecord, error) {
	return getList(ctx, repo, "bps_get_history",
		repo.url("/caseviews/%s/history", caseviewId), httpmodels.AdaptBpsHistory)
}

func (repo BpsRepository) GetHistoryDetails(ctx context.Context, historyId string) (models.HistoryDetails, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, repo.url("/history/%s", historyId), nil)
	if err != nil {
		return models.HistoryDetails{}, err
	}
	var resp httpmodels.HTTPBpsResponse[httpmodels.HTTPBpsHistoryDetails]
	if err := doJSON(ctx, repo.client, "bps_get_history_details", models.ErrBpsUnavailable, req, &resp); err != nil {
		return models.HistoryDetails{}, err
	}
	if resp.Data == nil {
		return models.HistoryDetails{}, errors.Wrapf(models.NotFoundError, "history %s", historyId)
	}
	return httpmodels.AdaptBpsHistoryDetails(*resp.Data), nil
}

func (repo BpsRepository) GetLockStatus(ctx context.Context, caseviewId string) (models.LockStatus, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, repo.url("/locks/%s", caseviewId), nil)
	if err != nil {
		return models.LockStatus{}, err
	}
	var resp httpmodels.HTTPBpsResponse[httpmodels.HTTPBpsLock]
	if err := doJSON(ctx, repo.client, "bps_get_lock", models.ErrBpsUnavailable, req, &resp); err != nil {
		return models.LockStatus{}, err
	}
	if resp.Data == nil {
		// no lock record at all: the case is free
		return models.LockStatus{}, nil
	}
	return httpmodels.AdaptBpsLock(*resp.Data), nil
}

// GetLockStatusBatch returns the lock status of the given cases, keyed by business key.
// Cases absent from the result are not locked.
func (repo BpsRepository) GetLockStatusBatch(ctx context.Context, caseviewIds []string) (map[string]models.LockStatus, error) {
	if len(caseviewIds) == 0 {
		return map[string]models.LockStatus{}, nil
	}
	req, err := newJSONRequest(ctx, http.MethodPost, repo.url("/locks/query"),
		httpmodels.HTTPBpsLockQuery{BusinessKeys: caseviewIds})
	if err != nil {
		return nil, err
	}
	var resp httpmodels.HTTPBpsResponse[[]httpmodels.HTTPBpsLock]
	if err := doJSON(ctx, repo.client, "bps_get_locks", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return map[string]models.LockStatus{}, nil
	}
	return pure_utils.MapSliceToMap(*resp.Data, func(l httpmodels.HTTPBpsLock) (string, models.LockStatus) {
		return l.BusinessKey, httpmodels.AdaptBpsLock(l)
	}), nil
}

func (repo BpsRepository) Unlock(ctx context.Context, input models.UnlockInput) error {
	u := repo.url("/locks/%s", input.CaseviewId)
	if input.Force {
		u += "?force=true"
	}
	req, err := newJSONRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	setUserHeaders(req, input.UserId, "")
	return doJSON(ctx, repo.client, "bps_unlock", models.ErrBpsUnavailable, req, nil)
}

func (repo BpsRepository) PostNote(ctx context.Context, input models.PostNoteInput) (models.PostNoteResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"businessKey": input.CaseviewId,
		"content":     input.Content,
	}
	for _, key := range pure_utils.SortedKeys(fields) {
		if err := writer.WriteField(key, fields[key]); err != nil {
			return models.PostNoteResult{}, errors.Wrap(err, "could not write note field")
		}
	}
	for _, attachment := range input.Attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", mime.FormatMediaType("form-data",
			map[string]string{"name": "attachments", "filename": attachment.FileName}))
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return models.PostNoteResult{}, errors.Wrap(err, "could not create attachment part")
		}
		if _, err := part.Write(attachment.Content); err != nil {
			return models.PostNoteResult{}, errors.Wrap(err, "could not write attachment part")
		}
	}
	if err := writer.Close(); err != nil {
		return models.PostNoteResult{}, errors.Wrap(err, "could not close note body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, repo.url("/notes"), &body)
	if err != nil {
		return models.PostNoteResult{}, errors.Wrap(err, "could not build BPS request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	setUserHeaders(req, input.UserId, input.ExternalUser)

	var resp httpmodels.HTTPBpsResponse[httpmodels.HTTPBpsPostNoteResponse]
	if err := doJSON(ctx, repo.client, "bps_post_note", models.ErrBpsUnavailable, req, &resp); err != nil {
		return models.PostNoteResult{}, err
	}
	if resp.Data == nil {
		return models.PostNoteResult{}, errors.Wrap(models.ErrEmptyBpsResponse, "bps_post_note")
	}
	return httpmodels.AdaptBpsPostNoteResponse(*resp.Data), nil
}

func (repo BpsRepository) Search(ctx context.Context, input models.SearchInput) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("flat", strconv.FormatBool(input.Flat))
	if input.Page > 0 {
		query.Set("page", strconv.Itoa(input.Page))
	}
	if input.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(input.PageSize))
	}
	req, err := newJSONRequest(ctx, http.MethodPost,
		repo.url("/services/%s/search", input.ServiceId)+"?"+query.Encode(), criteriaBody(input.Criteria))
	if err != nil {
		return nil, err
	}
	setUserHeaders(req, input.UserId, input.ExternalUser)

	var resp httpmodels.HTTPBpsResponse[[]json.RawMessage]
	if err := doJSON(ctx, repo.client, "bps_search", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []json.RawMessage{}, nil
	}
	return *resp.Data, nil
}

func (repo BpsRepository) Count(ctx context.Context, input models.CountInput) (*int64, error) {
	query := url.Values{}
	query.Set("flat", strconv.FormatBool(input.Flat))
	req, err := newJSONRequest(ctx, http.MethodPost,
		repo.url("/services/%s/count", input.ServiceId)+"?"+query.Encode(), criteriaBody(input.Criteria))
	if err != nil {
		return nil, err
	}
	var resp httpmodels.HTTPBpsResponse[httpmodels.HTTPBpsCount]
	if err := doJSON(ctx, repo.client, "bps_count", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}
	return resp.Data.TotalCount, nil
}

func (repo BpsRepository) ExecuteUpdateService(ctx context.Context, input models.UpdateServiceInput) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("flat", strconv.FormatBool(input.Flat))
	query.Set("retainLock", strconv.FormatBool(input.RetainLock))
	req, err := newJSONRequest(ctx, http.MethodPost,
		repo.url("/services/%s/update", input.ServiceId)+"?"+query.Encode(), criteriaBody(input.Data))
	if err != nil {
		return nil, err
	}
	setUserHeaders(req, input.UserId, input.ExternalUser)

	var resp httpmodels.HTTPBpsResponse[json.RawMessage]
	if err := doJSON(ctx, repo.client, "bps_update", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errors.Wrapf(models.ErrEmptyBpsResponse, "update service %s", input.ServiceId)
	}
	return *resp.Data, nil
}

// GetDataDefinition returns nil when BPS has no definition for the service. An empty authToken
// sends the request without authorization header.
func (repo BpsRepository) GetDataDefinition(ctx context.Context, serviceId, authToken string) (*models.UsecaseServiceDataDefinition, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, repo.url("/services/%s/data-definition", serviceId), nil)
	if err != nil {
		return nil, err
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	var resp httpmodels.HTTPBpsResponse[httpmodels.HTTPBpsDataDefinition]
	if err := doJSON(ctx, repo.client, "bps_get_data_definition", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}
	definition := httpmodels.AdaptBpsDataDefinition(*resp.Data)
	if definition.ServiceId == "" {
		definition.ServiceId = serviceId
	}
	return &definition, nil
}

func (repo BpsRepository) GetDocumentContent(ctx context.Context, documentKey, documentType string) (models.DocumentContent, error) {
	u := repo.url("/documents/%s", documentKey)
	if documentType != "" {
		u += "?" + url.Values{"documentType": []string{documentType}}.Encode()
	}
	return repo.getContent(ctx, "bps_get_document_content", u)
}

func (repo BpsRepository) GetNoteAttachmentContent(ctx context.Context, commentId, attachmentId string) (models.DocumentContent, error) {
	return repo.getContent(ctx, "bps_get_attachment_content",
		repo.url("/notes/%s/attachments/%s", commentId, attachmentId))
}

func (repo BpsRepository) getContent(ctx context.Context, operation, u string) (models.DocumentContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.DocumentContent{}, errors.Wrap(err, "could not build BPS request")
	}
	resp, err := do(ctx, repo.client, operation, models.ErrBpsUnavailable, req)
	if err != nil {
		return models.DocumentContent{}, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.DocumentContent{}, errors.Wrapf(models.ErrBpsUnavailable, "could not read %s body: %s", operation, err)
	}
	out := models.DocumentContent{
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		out.FileName = params["filename"]
	}
	return out, nil
}

func (repo BpsRepository) GetSecurityPolicies(ctx context.Context) ([]models.SecurityPolicy, error) {
	return getList(ctx, repo, "bps_get_security_policies",
		repo.url("/security-policies"), httpmodels.AdaptBpsSecurityPolicy)
}

// GetValidValues fails with models.ErrEmptyBpsResponse when BPS answers without payload.
func (repo BpsRepository) GetValidValues(ctx context.Context) ([]models.ValidValueList, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, repo.url("/valid-values"), nil)
	if err != nil {
		return nil, err
	}
	var resp httpmodels.HTTPBpsResponse[[]httpmodels.HTTPBpsValidValueList]
	if err := doJSON(ctx, repo.client, "bps_get_valid_values", models.ErrBpsUnavailable, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errors.Wrap(models.ErrEmptyBpsResponse, "BPS return null response")
	}
	return pure_utils.Map(*resp.Data, httpmodels.AdaptBpsValidValueList), nil
}

func criteriaBody(criteria map[string]any) map[string]any {
	if criteria == nil {
		return map[string]any{}
	}
	return criteria
}
