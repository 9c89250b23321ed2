package repositories

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/repositories/httpmodels"
)

type AntivirusRepository struct {
	client  *http.Client
	baseUrl string
}

func NewAntivirusRepository(client *http.Client, baseUrl string) AntivirusRepository {
	return AntivirusRepository{client: client, baseUrl: baseUrl}
}

func (repo AntivirusRepository) Scan(ctx context.Context, attachment models.Attachment) (models.ScanResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", attachment.FileName)
	if err != nil {
		return models.ScanResult{}, errors.Wrap(err, "could not create scan request part")
	}
	if _, err := part.Write(attachment.Content); err != nil {
		return models.ScanResult{}, errors.Wrap(err, "could not write scan request part")
	}
	if err := writer.Close(); err != nil {
		return models.ScanResult{}, errors.Wrap(err, "could not close scan request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, repo.baseUrl+"/scan", &body)
	if err != nil {
		return models.ScanResult{}, errors.Wrap(err, "could not build scan request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result httpmodels.HTTPAntivirusScanResult
	if err := doJSON(ctx, repo.client, "antivirus_scan", models.ErrAntivirusUnavailable, req, &result); err != nil {
		return models.ScanResult{}, err
	}
	return httpmodels.AdaptAntivirusScanResult(result), nil
}
