package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type InternalTokenRepository struct {
	mock.Mock
}

func (r *InternalTokenRepository) GetInternalToken(ctx context.Context) (string, error) {
	args := r.Called(ctx)
	return args.String(0), args.Error(1)
}
