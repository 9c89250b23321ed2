package locks

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/utils"
)

type LockReader interface {
	GetLockStatus(ctx context.Context, caseviewId string) (models.LockStatus, error)
}

// LockVerifier checks that the caller may access a case given its BPS lock. It only reads the
// lock: acquiring and releasing it are done by BPS itself.
type LockVerifier struct {
	LockReader LockReader
}

func NewLockVerifier(reader LockReader) LockVerifier {
	return LockVerifier{LockReader: reader}
}

// VerifyAccess returns nil when the access is allowed. With respectLock false, no check is made.
// An update additionally requires the case to be locked, by the caller.
func (v LockVerifier) VerifyAccess(
	ctx context.Context,
	caseviewId string,
	respectLock bool,
	isUpdate bool,
	effectiveUserId string,
) error {
	if !respectLock {
		return nil
	}

	ctx, span := utils.StartSpan(ctx, "locks.VerifyAccess",
		attribute.String("caseview_id", caseviewId),
		attribute.Bool("is_update", isUpdate))
	defer span.End()

	lock, err := v.LockReader.GetLockStatus(ctx, caseviewId)
	if err != nil {
		return errors.Wrap(err, "could not read lock status")
	}

	if lock.BusinessKey != "" && lock.BusinessKey != caseviewId {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "lock status received for another case",
			"caseview_id", caseviewId, "lock_business_key", lock.BusinessKey)
		return errors.Wrapf(models.ErrUnexpectedLockSubject,
			"Unexpected resource from BPS. Expecting lock status for caseViewId=[%s], but received [%s] instead",
			caseviewId, lock.BusinessKey)
	}

	if isUpdate && !lock.IsLocked() {
		return errors.Wrapf(models.ErrCaseNotLocked, "Resource [%s] is not locked by current user", caseviewId)
	}

	if lock.IsLocked() && !lock.IsLockedBy(effectiveUserId) {
		return models.CaseLockedByOtherError{
			CaseviewId: caseviewId,
			LockedBy:   lock.UserId.String,
			LockedAt:   lock.Timestamp,
		}
	}

	return nil
}
