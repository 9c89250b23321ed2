package security

import (
	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/models"
)

type EnforceSecurity interface {
	Permission(permission models.Permission) error
}

type EnforceSecurityImpl struct {
	Credentials models.Credentials
}

func (e *EnforceSecurityImpl) Permission(permission models.Permission) error {
	if !e.Credentials.HasPermission(permission) {
		return errors.Wrapf(models.ForbiddenError, "missing permission %s", permission.String())
	}
	return nil
}
