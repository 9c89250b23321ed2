package locks

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkmarble/caseview-backend/models"
)

type lockReaderMock struct {
	mock.Mock
}

func (m *lockReaderMock) GetLockStatus(ctx context.Context, caseviewId string) (models.LockStatus, error) {
	args := m.Called(ctx, caseviewId)
	return args.Get(0).(models.LockStatus), args.Error(1)
}

type LockVerifierTestSuite struct {
	suite.Suite
	reader *lockReaderMock

	ctx        context.Context
	caseviewId string
	user       string
	lockedAt   time.Time
}

func (suite *LockVerifierTestSuite) SetupTest() {
	suite.reader = new(lockReaderMock)
	suite.ctx = context.Background()
	suite.caseviewId = "case-1"
	suite.user = "partner/alice"
	suite.lockedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *LockVerifierTestSuite) makeVerifier() LockVerifier {
	return NewLockVerifier(suite.reader)
}

func (suite *LockVerifierTestSuite) AssertExpectations() {
	t := suite.T()
	suite.reader.AssertExpectations(t)
}

func (suite *LockVerifierTestSuite) lockedBy(owner string) models.LockStatus {
	return models.LockStatus{
		BusinessKey: suite.caseviewId,
		UserId:      null.StringFrom(owner),
		Timestamp:   null.TimeFrom(suite.lockedAt),
	}
}

func (suite *LockVerifierTestSuite) TestNoCheckWhenLockNotRespected() {
	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, false, true, suite.user)

	suite.NoError(err)
	suite.reader.AssertNotCalled(suite.T(), "GetLockStatus", mock.Anything, mock.Anything)
}

func (suite *LockVerifierTestSuite) TestUnlockedCaseReadAllowed() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).
		Return(models.LockStatus{BusinessKey: suite.caseviewId}, nil)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestUnlockedCaseUpdateRefused() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).
		Return(models.LockStatus{BusinessKey: suite.caseviewId}, nil)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, true, suite.user)

	suite.ErrorIs(err, models.ErrCaseNotLocked)
	suite.ErrorIs(err, models.LockConflictError)
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestLockedByCallerAllowed() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).Return(suite.lockedBy(suite.user), nil)

	suite.NoError(suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, true, suite.user))
	suite.NoError(suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user))
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestLockedByOther() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).Return(suite.lockedBy("bob"), nil)

	for _, isUpdate := range []bool{true, false} {
		err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, isUpdate, suite.user)

		var lockedErr models.CaseLockedByOtherError
		suite.Require().True(errors.As(err, &lockedErr))
		suite.Equal("bob", lockedErr.LockedBy)
		suite.Equal(suite.lockedAt, lockedErr.LockedAt.Time)
		suite.ErrorIs(err, models.LockConflictError)
	}
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestIdentityWithoutExternalPrefixIsAnotherUser() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).Return(suite.lockedBy("alice"), nil)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user)

	suite.True(errors.As(err, &models.CaseLockedByOtherError{}))
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestEmptyOwnerIsAnotherUser() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).Return(suite.lockedBy(""), nil)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user)

	var lockedErr models.CaseLockedByOtherError
	suite.Require().True(errors.As(err, &lockedErr))
	suite.Empty(lockedErr.LockedBy)
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestUnexpectedLockSubject() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).
		Return(models.LockStatus{BusinessKey: "case-2", UserId: null.StringFrom(suite.user)}, nil)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user)

	suite.ErrorIs(err, models.ErrUnexpectedLockSubject)
	suite.AssertExpectations()
}

func (suite *LockVerifierTestSuite) TestRemoteFailure() {
	suite.reader.On("GetLockStatus", mock.Anything, suite.caseviewId).
		Return(models.LockStatus{}, models.ErrBpsUnavailable)

	err := suite.makeVerifier().VerifyAccess(suite.ctx, suite.caseviewId, true, false, suite.user)

	suite.ErrorIs(err, models.ErrBpsUnavailable)
	suite.AssertExpectations()
}

func TestLockVerifier(t *testing.T) {
	suite.Run(t, new(LockVerifierTestSuite))
}

func TestVerifyAccessNeverSucceedsUpdateWithoutOwnership(t *testing.T) {
	owners := []null.String{{}, null.StringFrom(""), null.StringFrom("bob"), null.StringFrom("alice")}
	for _, owner := range owners {
		reader := new(lockReaderMock)
		reader.On("GetLockStatus", mock.Anything, "case-1").
			Return(models.LockStatus{BusinessKey: "case-1", UserId: owner}, nil)

		err := NewLockVerifier(reader).VerifyAccess(context.Background(), "case-1", true, true, "alice")
		if owner.Valid && owner.String == "alice" {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, models.LockConflictError)
		}
	}
}
