package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type LockVerifier struct {
	mock.Mock
}

func (v *LockVerifier) VerifyAccess(ctx context.Context, caseviewId string, respectLock, isUpdate bool, effectiveUserId string) error {
	args := v.Called(ctx, caseviewId, respectLock, isUpdate, effectiveUserId)
	return args.Error(0)
}
