package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/caseview-backend/models"
)

type AntivirusRepository struct {
	mock.Mock
}

func (r *AntivirusRepository) Scan(ctx context.Context, attachment models.Attachment) (models.ScanResult, error) {
	args := r.Called(ctx, attachment)
	return args.Get(0).(models.ScanResult), args.Error(1)
}
