package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/security"
)

type LockRepository interface {
	Unlock(ctx context.Context, input models.UnlockInput) error
}

type LockUsecase struct {
	enforceSecurity security.EnforceSecurityCaseview
	credentials     models.Credentials
	repository      LockRepository
}

// Unlock releases the caller's lock on a case. Releasing someone else's lock needs force, and
// force needs the release lock permission.
func (usecase *LockUsecase) Unlock(ctx context.Context, caseviewId string, force bool) error {
	if err := usecase.enforceSecurity.ReadCaseview(); err != nil {
		return err
	}
	if force {
		if err := usecase.enforceSecurity.ForceUnlock(); err != nil {
			return err
		}
	}

	err := usecase.repository.Unlock(ctx, models.UnlockInput{
		CaseviewId: caseviewId,
		UserId:     usecase.credentials.EffectiveUserId(),
		Force:      force,
	})
	return errors.Wrapf(err, "could not unlock case %s", caseviewId)
}
