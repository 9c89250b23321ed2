package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/repositories/httpmodels"
	"github.com/checkmarble/caseview-backend/utils"
)

const maxErrorBodySize = 4096

// doJSON sends the request and decodes a json body into dest. Transport failures and non 2xx
// statuses are wrapped into sentinel, 404 becoming models.NotFoundError.
func doJSON(ctx context.Context, client *http.Client, operation string, sentinel error, req *http.Request, dest any) error {
	resp, err := do(ctx, client, operation, sentinel, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.Wrapf(models.ErrEmptyBpsResponse, "%s", operation)
		}
		return errors.Wrapf(sentinel, "could not decode %s response: %s", operation, err)
	}
	return nil
}

// do returns the response of a successful call. The caller closes the body.
func do(ctx context.Context, client *http.Client, operation string, sentinel error, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := client.Do(req)
	utils.MetricRemoteCallLatency.With(prometheus.Labels{"operation": operation}).
		Observe(time.Since(start).Seconds())
	if err != nil {
		utils.MetricRemoteCallCount.With(prometheus.Labels{"operation": operation, "outcome": "transport_error"}).Inc()
		return nil, errors.Wrapf(sentinel, "%s: %s", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		utils.MetricRemoteCallCount.With(prometheus.Labels{"operation": operation, "outcome": "http_error"}).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		respErr := parseResponseError(resp.Status, body)
		utils.LoggerFromContext(ctx).WarnContext(ctx, "remote call failed",
			"operation", operation, "status", resp.StatusCode, "error", respErr.Error())
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.Wrapf(models.NotFoundError, "%s: %s", operation, respErr)
		}
		return nil, errors.Wrapf(sentinel, "%s: %s", operation, respErr)
	}

	utils.MetricRemoteCallCount.With(prometheus.Labels{"operation": operation, "outcome": "success"}).Inc()
	return resp, nil
}

func parseResponseError(status string, body []byte) error {
	var dest httpmodels.HTTPBpsError
	err := json.Unmarshal(body, &dest)
	if err != nil || dest.Message == nil {
		return errors.New(status)
	}
	if dest.Code != nil {
		return errors.Newf("%s: %s (%s)", status, *dest.Message, *dest.Code)
	}
	return errors.Newf("%s: %s", status, *dest.Message)
}
