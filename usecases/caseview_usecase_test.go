package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkmarble/caseview-backend/mocks"
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type CaseviewUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity *mocks.EnforceSecurity
	repository      *mocks.BpsRepository
	lockVerifier    *mocks.LockVerifier

	ctx         context.Context
	credentials models.Credentials
	lockedAt    time.Time
}

func (suite *CaseviewUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.repository = new(mocks.BpsRepository)
	suite.lockVerifier = new(mocks.LockVerifier)

	suite.ctx = context.Background()
	suite.credentials = models.Credentials{ActorIdentity: models.Identity{UserId: "alice"}}
	suite.lockedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *CaseviewUsecaseTestSuite) makeUsecase() *CaseviewUsecase {
	return &CaseviewUsecase{
		enforceSecurity: suite.enforceSecurity,
		credentials:     suite.credentials,
		repository:      suite.repository,
		lockVerifier:    suite.lockVerifier,
	}
}

func (suite *CaseviewUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.lockVerifier.AssertExpectations(t)
}

func rows(payloads ...string) []json.RawMessage {
	return pure_utils.Map(payloads, func(p string) json.RawMessage { return json.RawMessage(p) })
}

func (suite *CaseviewUsecaseTestSuite) searchInput(actions ...models.SearchAction) models.SearchCasesInput {
	return models.SearchCasesInput{
		ServiceId:   "cases-summary",
		BusinessKey: "case.id",
		Format:      "flat",
		Actions:     actions,
		Criteria:    map[string]any{"status": "OPEN"},
		Page:        1,
		PageSize:    20,
	}
}

func (suite *CaseviewUsecaseTestSuite) TestSearchOnly() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.repository.On("Search", mock.Anything, models.SearchInput{
		ServiceId: "cases-summary",
		Criteria:  map[string]any{"status": "OPEN"},
		Flat:      true,
		Page:      1,
		PageSize:  20,
		UserId:    "alice",
	}).Return(rows(`{"case.id":"c1","status":"OPEN"}`, `{"case.id":"c2","status":"OPEN"}`, `{"case.id":"c1"}`), nil)
	suite.repository.On("GetLockStatusBatch", mock.Anything, []string{"c1", "c2"}).Return(map[string]models.LockStatus{
		"c1": {BusinessKey: "c1", UserId: null.StringFrom("bob"), Timestamp: null.TimeFrom(suite.lockedAt)},
	}, nil)

	page, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, suite.searchInput(models.ActionSearch))

	suite.Require().NoError(err)
	suite.Require().Len(page.Caseviews, 3)
	suite.Equal("c1", page.Caseviews[0].CaseviewId)
	suite.Equal(null.StringFrom("bob"), page.Caseviews[0].LockedBy)
	suite.Equal(null.TimeFrom(suite.lockedAt), page.Caseviews[0].LockedAt)
	suite.False(page.Caseviews[1].LockedBy.Valid)
	suite.False(page.Caseviews[1].LockedAt.Valid)
	suite.Nil(page.TotalCount)
	suite.Nil(page.CaseListCount)
	suite.repository.AssertNotCalled(suite.T(), "Count", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestCountOnly() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.repository.On("Count", mock.Anything, models.CountInput{
		ServiceId: "cases-summary",
		Criteria:  map[string]any{"status": "OPEN"},
		Flat:      true,
	}).Return(pure_utils.Ptr(int64(42)), nil)

	page, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, suite.searchInput(models.ActionCount))

	suite.Require().NoError(err)
	suite.Nil(page.Caseviews)
	suite.Nil(page.CaseListCount)
	suite.Equal(int64(42), *page.TotalCount)
	suite.repository.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestSearchAndCount() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.repository.On("Search", mock.Anything, mock.Anything).
		Return(rows(`{"case.id":"c1"}`, `{"case.id":"c2"}`), nil)
	suite.repository.On("Count", mock.Anything, mock.Anything).Return(pure_utils.Ptr(int64(57)), nil)
	suite.repository.On("GetLockStatusBatch", mock.Anything, []string{"c1", "c2"}).
		Return(map[string]models.LockStatus{}, nil)

	page, err := suite.makeUsecase().SearchMultipleCases(suite.ctx,
		suite.searchInput(models.ActionSearch, models.ActionCount))

	suite.Require().NoError(err)
	suite.Len(page.Caseviews, 2)
	suite.Equal(2, *page.CaseListCount)
	suite.Equal(int64(57), *page.TotalCount)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestEmptySearchSkipsLockLookup() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.repository.On("Search", mock.Anything, mock.Anything).Return(rows(), nil)

	page, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, suite.searchInput(models.ActionSearch))

	suite.Require().NoError(err)
	suite.NotNil(page.Caseviews)
	suite.Empty(page.Caseviews)
	suite.repository.AssertNotCalled(suite.T(), "GetLockStatusBatch", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestUnsupportedFormat() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	input := suite.searchInput(models.ActionSearch)
	input.Format = "xml"

	_, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, input)

	suite.ErrorIs(err, models.ErrUnsupportedFormat)
	suite.ErrorIs(err, models.BadParameterError)
	suite.repository.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
}

func (suite *CaseviewUsecaseTestSuite) TestNoAction() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)

	page, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, suite.searchInput())

	suite.Require().NoError(err)
	suite.Nil(page.Caseviews)
	suite.Nil(page.CaseListCount)
	suite.Nil(page.TotalCount)
	suite.repository.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
	suite.repository.AssertNotCalled(suite.T(), "Count", mock.Anything, mock.Anything)
}

func (suite *CaseviewUsecaseTestSuite) TestMissingBusinessKey() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.repository.On("Search", mock.Anything, mock.Anything).
		Return(rows(`{"case.id":"c1"}`, `{"status":"OPEN"}`), nil)

	_, err := suite.makeUsecase().SearchMultipleCases(suite.ctx, suite.searchInput(models.ActionSearch))

	suite.ErrorIs(err, models.ErrUnexpectedPayload)
	suite.ErrorIs(err, models.ErrBpsUnavailable)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) singleCaseInput() models.GetSingleCaseInput {
	return models.GetSingleCaseInput{
		ServiceId:   "cases-summary",
		BusinessKey: "case.id",
		CaseviewId:  "c1",
		Format:      "hierarchical",
		RespectLock: true,
	}
}

func (suite *CaseviewUsecaseTestSuite) TestGetSingleCaseSearch() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, false, "alice").Return(nil)
	suite.repository.On("Search", mock.Anything, models.SearchInput{
		ServiceId: "cases-summary",
		Criteria:  map[string]any{"case": map[string]any{"id": "c1"}},
		UserId:    "alice",
	}).Return(rows(`{"case":{"id":"c1","status":"OPEN"}}`, `{"case":{"id":"c9"}}`), nil)

	caseview, err := suite.makeUsecase().GetSingleCaseSearch(suite.ctx, suite.singleCaseInput())

	suite.Require().NoError(err)
	suite.Require().NotNil(caseview)
	suite.Equal("c1", caseview.CaseviewId)
	suite.JSONEq(`{"case":{"id":"c1","status":"OPEN"}}`, string(caseview.Data))
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestGetSingleCaseSearchFirstRowMismatch() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, false, "alice").Return(nil)
	suite.repository.On("Search", mock.Anything, mock.Anything).
		Return(rows(`{"case":{"id":"c9"}}`, `{"case":{"id":"c1"}}`), nil)

	caseview, err := suite.makeUsecase().GetSingleCaseSearch(suite.ctx, suite.singleCaseInput())

	suite.Require().NoError(err)
	suite.Nil(caseview)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestGetSingleCaseSearchLockedByOther() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, false, "alice").
		Return(models.CaseLockedByOtherError{CaseviewId: "c1", LockedBy: "bob"})

	caseview, err := suite.makeUsecase().GetSingleCaseSearch(suite.ctx, suite.singleCaseInput())

	suite.ErrorIs(err, models.LockConflictError)
	suite.Nil(caseview)
	suite.repository.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestPatchCaseMergesBusinessKeyAndExternalUser() {
	suite.credentials = models.Credentials{
		ActorIdentity: models.Identity{UserId: "alice"},
		ExternalUser:  "partner",
	}
	patch := map[string]any{
		"case":   map[string]any{"status": "CLOSED"},
		"amount": 12,
	}
	input := models.PatchCaseInput{
		UpdateSingleCaseInput: models.UpdateSingleCaseInput{
			ServiceId:                  "cases-update",
			BusinessKey:                "case.id",
			CaseviewId:                 "c1",
			Format:                     "hierarchical",
			RetainLock:                 true,
			ExternalUserCharacteristic: "case.externalUser",
		},
		Data: patch,
	}

	suite.enforceSecurity.On("UpdateCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, true, "partner/alice").Return(nil)
	suite.repository.On("ExecuteUpdateService", mock.Anything, models.UpdateServiceInput{
		ServiceId:  "cases-update",
		RetainLock: true,
		Data: map[string]any{
			"case":   map[string]any{"status": "CLOSED", "id": "c1", "externalUser": "partner"},
			"amount": 12,
		},
		UserId:       "partner/alice",
		ExternalUser: "partner",
	}).Return(json.RawMessage(`{"case":{"id":"c1","status":"CLOSED"}}`), nil)

	caseview, err := suite.makeUsecase().PatchCase(suite.ctx, input)

	suite.Require().NoError(err)
	suite.Equal("c1", caseview.CaseviewId)
	suite.Equal(map[string]any{"status": "CLOSED"}, patch["case"], "caller payload must be left untouched")
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestGetSingleCaseUpdateFlat() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, false, "alice").Return(nil)
	suite.repository.On("ExecuteUpdateService", mock.Anything, models.UpdateServiceInput{
		ServiceId: "cases-update",
		Data:      map[string]any{"case.id": "c1"},
		Flat:      true,
		UserId:    "alice",
	}).Return(json.RawMessage(`{"case.id":"c1"}`), nil)

	caseview, err := suite.makeUsecase().GetSingleCaseUpdate(suite.ctx, models.UpdateSingleCaseInput{
		ServiceId:   "cases-update",
		BusinessKey: "case.id",
		CaseviewId:  "c1",
		Format:      "flat",
	})

	suite.Require().NoError(err)
	suite.Equal("c1", caseview.CaseviewId)
	suite.AssertExpectations()
}

func (suite *CaseviewUsecaseTestSuite) TestUpdateResponseWithoutBusinessKey() {
	suite.enforceSecurity.On("ReadCaseview").Return(nil)
	suite.lockVerifier.On("VerifyAccess", mock.Anything, "c1", true, false, "alice").Return(nil)
	suite.repository.On("ExecuteUpdateService", mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"other":"value"}`), nil)

	_, err := suite.makeUsecase().GetSingleCaseUpdate(suite.ctx, models.UpdateSingleCaseInput{
		ServiceId:   "cases-update",
		BusinessKey: "case.id",
		CaseviewId:  "c1",
		Format:      "flat",
	})

	suite.ErrorIs(err, models.ErrMissingBusinessKey)
	suite.AssertExpectations()
}

func TestCaseviewUsecase(t *testing.T) {
	suite.Run(t, new(CaseviewUsecaseTestSuite))
}
