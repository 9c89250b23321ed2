package httpmodels

import "github.com/checkmarble/caseview-backend/models"

type HTTPAntivirusScanResult struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

func AdaptAntivirusScanResult(r HTTPAntivirusScanResult) models.ScanResult {
	status := models.ScanStatus(r.Status)
	switch status {
	case models.ScanPass, models.ScanFail, models.ScanUnavailable:
	default:
		status = models.ScanIncomplete
	}
	return models.ScanResult{Status: status, Detail: r.Detail}
}
