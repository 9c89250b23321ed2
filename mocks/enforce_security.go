package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/caseview-backend/models"
)

type EnforceSecurity struct {
	mock.Mock
}

func (e *EnforceSecurity) Permission(permission models.Permission) error {
	args := e.Called(permission)
	return args.Error(0)
}

func (e *EnforceSecurity) ReadCaseview() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) UpdateCaseview() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) CreateComment() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) ForceUnlock() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) RefreshDataDefinitions() error {
	args := e.Called()
	return args.Error(0)
}

func (e *EnforceSecurity) CanAddAttachments() bool {
	args := e.Called()
	return args.Bool(0)
}

func (e *EnforceSecurity) CanViewAttachments() bool {
	args := e.Called()
	return args.Bool(0)
}
