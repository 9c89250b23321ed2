package security

import (
	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/models"
)

type EnforceSecurityCaseview interface {
	EnforceSecurity
	ReadCaseview() error
	UpdateCaseview() error
	CreateComment() error
	ForceUnlock() error
	RefreshDataDefinitions() error
	// Missing attachment permissions degrade the response instead of failing the request.
	CanAddAttachments() bool
	CanViewAttachments() bool
}

type EnforceSecurityCaseviewImpl struct {
	EnforceSecurity
	Credentials models.Credentials
}

func (e *EnforceSecurityCaseviewImpl) ReadCaseview() error {
	return e.Permission(models.CASEVIEW_READ)
}

func (e *EnforceSecurityCaseviewImpl) UpdateCaseview() error {
	return errors.Join(e.Permission(models.CASEVIEW_READ), e.Permission(models.CASEVIEW_UPDATE))
}

func (e *EnforceSecurityCaseviewImpl) CreateComment() error {
	return errors.Join(e.Permission(models.CASEVIEW_READ), e.Permission(models.ADD_COMMENT))
}

func (e *EnforceSecurityCaseviewImpl) ForceUnlock() error {
	if err := e.Permission(models.RELEASE_LOCK); err != nil {
		return errors.Wrap(err, "No permission to force unlock.")
	}
	return nil
}

func (e *EnforceSecurityCaseviewImpl) RefreshDataDefinitions() error {
	return e.Permission(models.DATA_DEFINITION_REFRESH)
}

func (e *EnforceSecurityCaseviewImpl) CanAddAttachments() bool {
	return e.Credentials.HasPermission(models.ADD_ATTACHMENT)
}

func (e *EnforceSecurityCaseviewImpl) CanViewAttachments() bool {
	return e.Credentials.HasPermission(models.VIEW_ATTACHMENT)
}
