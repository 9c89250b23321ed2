package usecases

import (
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/usecases/security"
)

type UsecasesWithCreds struct {
	Usecases
	Credentials models.Credentials
}

func (usecases *UsecasesWithCreds) NewEnforceSecurity() security.EnforceSecurity {
	return &security.EnforceSecurityImpl{
		Credentials: usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewEnforceCaseviewSecurity() security.EnforceSecurityCaseview {
	return &security.EnforceSecurityCaseviewImpl{
		EnforceSecurity: usecases.NewEnforceSecurity(),
		Credentials:     usecases.Credentials,
	}
}

func (usecases *UsecasesWithCreds) NewActivityUsecase() ActivityUsecase {
	return ActivityUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		repository:      usecases.Repositories.BpsRepository,
		registry:        usecases.filterConfig,
		converter:       usecases.converter,
		contentSizeMax:  usecases.contentSizeMax,
	}
}

func (usecases *UsecasesWithCreds) NewCommentUsecase() CommentUsecase {
	return CommentUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		credentials:     usecases.Credentials,
		repository:      usecases.Repositories.BpsRepository,
		scanner:         usecases.Repositories.AntivirusRepository,
		contentSizeMax:  usecases.contentSizeMax,
		scanConcurrency: usecases.scanConcurrency,
	}
}

func (usecases *UsecasesWithCreds) NewCaseviewUsecase() CaseviewUsecase {
	return CaseviewUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		credentials:     usecases.Credentials,
		repository:      usecases.Repositories.BpsRepository,
		lockVerifier:    usecases.NewLockVerifier(),
	}
}

func (usecases *UsecasesWithCreds) NewLockUsecase() LockUsecase {
	return LockUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		credentials:     usecases.Credentials,
		repository:      usecases.Repositories.BpsRepository,
	}
}

func (usecases *UsecasesWithCreds) NewDataDefinitionUsecase() DataDefinitionUsecase {
	return DataDefinitionUsecase{
		enforceSecurity:   usecases.NewEnforceCaseviewSecurity(),
		repository:        usecases.Repositories.BpsRepository,
		tokenRepository:   usecases.Repositories.InternalTokenRepository,
		services:          usecases.filterConfig,
		cache:             usecases.dataDefinitionCache,
		defaultDateFormat: usecases.defaultDateFormat,
	}
}

func (usecases *UsecasesWithCreds) NewAuditTrailUsecase() AuditTrailUsecase {
	return AuditTrailUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		repository:      usecases.Repositories.BpsRepository,
	}
}

func (usecases *UsecasesWithCreds) NewDocumentUsecase() DocumentUsecase {
	return DocumentUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		repository:      usecases.Repositories.BpsRepository,
	}
}

func (usecases *UsecasesWithCreds) NewReferenceDataUsecase() ReferenceDataUsecase {
	return ReferenceDataUsecase{
		enforceSecurity: usecases.NewEnforceCaseviewSecurity(),
		repository:      usecases.Repositories.BpsRepository,
	}
}
