package httpmodels

import (
	"github.com/guregu/null/v5"

	"github.com/checkmarble/caseview-backend/models"
)

type HTTPBpsLock struct {
	BusinessKey string      `json:"businessKey"`
	UserId      null.String `json:"userId"`
	Timestamp   null.Time   `json:"timestamp"`
}

type HTTPBpsLockQuery struct {
	BusinessKeys []string `json:"businessKeys"`
}

func AdaptBpsLock(l HTTPBpsLock) models.LockStatus {
	return models.LockStatus{
		BusinessKey: l.BusinessKey,
		UserId:      l.UserId,
		Timestamp:   l.Timestamp,
	}
}
