package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/checkmarble/caseview-backend/mocks"
	"github.com/checkmarble/caseview-backend/models"
)

type CommentUsecaseTestSuite struct {
	suite.Suite
	enforceSecurity *mocks.EnforceSecurity
	repository      *mocks.BpsRepository
	scanner         *mocks.AntivirusRepository

	ctx         context.Context
	caseviewId  string
	credentials models.Credentials
	createdAt   time.Time
}

func (suite *CommentUsecaseTestSuite) SetupTest() {
	suite.enforceSecurity = new(mocks.EnforceSecurity)
	suite.repository = new(mocks.BpsRepository)
	suite.scanner = new(mocks.AntivirusRepository)

	suite.ctx = context.Background()
	suite.caseviewId = "case-1"
	suite.credentials = models.Credentials{
		ActorIdentity: models.Identity{UserId: "alice"},
		ExternalUser:  "partner",
	}
	suite.createdAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *CommentUsecaseTestSuite) makeUsecase() *CommentUsecase {
	return &CommentUsecase{
		enforceSecurity: suite.enforceSecurity,
		credentials:     suite.credentials,
		repository:      suite.repository,
		scanner:         suite.scanner,
		contentSizeMax:  DefaultCommentContentSizeMax,
		scanConcurrency: 2,
	}
}

func (suite *CommentUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.enforceSecurity.AssertExpectations(t)
	suite.repository.AssertExpectations(t)
	suite.scanner.AssertExpectations(t)
}

func (suite *CommentUsecaseTestSuite) note(content string) models.BpsNote {
	return models.BpsNote{
		Id:          "note-1",
		BusinessKey: suite.caseviewId,
		Content:     content,
		UserId:      "partner/alice",
		CreatedAt:   suite.createdAt,
	}
}

func attachment(name string) models.Attachment {
	return models.Attachment{FileName: name, ContentType: "application/pdf", Content: []byte(name)}
}

func (suite *CommentUsecaseTestSuite) TestNoAttachmentPermission() {
	suite.enforceSecurity.On("CreateComment").Return(nil)
	suite.enforceSecurity.On("CanAddAttachments").Return(false)
	suite.repository.On("PostNote", mock.Anything, models.PostNoteInput{
		CaseviewId:   suite.caseviewId,
		Content:      "hello",
		UserId:       "partner/alice",
		ExternalUser: "partner",
	}).Return(models.PostNoteResult{Note: suite.note("hello")}, nil)

	created, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "hello",
		[]models.Attachment{attachment("a.pdf"), attachment("b.pdf")})

	suite.Require().NoError(err)
	suite.Equal("note-1", created.Id)
	suite.Equal([]models.InvalidAttachmentMeta{
		{FileName: "a.pdf", Code: models.NoAttachPermission, Description: models.NoAttachPermissionText},
		{FileName: "b.pdf", Code: models.NoAttachPermission, Description: models.NoAttachPermissionText},
	}, created.InvalidAttachments)
	suite.scanner.AssertNotCalled(suite.T(), "Scan", mock.Anything, mock.Anything)
	suite.AssertExpectations()
}

func (suite *CommentUsecaseTestSuite) TestScanOutcomesKeepInputOrder() {
	clean, infected, unavailable, broken := attachment("clean.pdf"), attachment("infected.pdf"),
		attachment("unavailable.pdf"), attachment("broken.pdf")

	suite.enforceSecurity.On("CreateComment").Return(nil)
	suite.enforceSecurity.On("CanAddAttachments").Return(true)
	suite.scanner.On("Scan", mock.Anything, clean).Return(models.ScanResult{Status: models.ScanPass}, nil)
	suite.scanner.On("Scan", mock.Anything, infected).Return(models.ScanResult{Status: models.ScanFail}, nil)
	suite.scanner.On("Scan", mock.Anything, unavailable).Return(models.ScanResult{Status: models.ScanUnavailable}, nil)
	suite.scanner.On("Scan", mock.Anything, broken).
		Return(models.ScanResult{}, errors.Wrap(models.ErrAntivirusUnavailable, "timeout"))
	suite.repository.On("PostNote", mock.Anything, mock.MatchedBy(func(input models.PostNoteInput) bool {
		return len(input.Attachments) == 1 && input.Attachments[0].FileName == "clean.pdf"
	})).Return(models.PostNoteResult{Note: suite.note("with files")}, nil)

	created, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "with files",
		[]models.Attachment{infected, clean, unavailable, broken})

	suite.Require().NoError(err)
	suite.Equal([]models.InvalidAttachmentMeta{
		{FileName: "infected.pdf", Code: models.FileFailedVirusCheck, Description: models.VirusCheckFailedText},
		{FileName: "unavailable.pdf", Code: models.FileVirusCheckUnavailable, Description: models.VirusCheckUnavailableText},
		{FileName: "broken.pdf", Code: models.FileVirusCheckIncomplete, Description: models.VirusCheckIncompleteText},
	}, created.InvalidAttachments)
	suite.AssertExpectations()
}

func (suite *CommentUsecaseTestSuite) TestBpsRefusedAttachmentsAreReported() {
	file := attachment("huge.pdf")
	suite.enforceSecurity.On("CreateComment").Return(nil)
	suite.enforceSecurity.On("CanAddAttachments").Return(true)
	suite.scanner.On("Scan", mock.Anything, file).Return(models.ScanResult{Status: models.ScanPass}, nil)
	suite.repository.On("PostNote", mock.Anything, mock.Anything).Return(models.PostNoteResult{
		Note: suite.note("too big"),
		InvalidAttachments: []models.BpsInvalidAttachment{
			{FileName: "huge.pdf", Result: models.BpsAttachmentTooLong, Description: "max 10MB"},
			{FileName: "other.exe", Result: "SOMETHING_NEW", Description: "?"},
		},
	}, nil)

	created, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "too big",
		[]models.Attachment{file})

	suite.Require().NoError(err)
	suite.Equal([]models.InvalidAttachmentMeta{
		{FileName: "huge.pdf", Code: models.FileTooLarge, Description: "max 10MB"},
		{FileName: "other.exe", Code: models.AttachmentSystemError, Description: "?"},
	}, created.InvalidAttachments)
	suite.AssertExpectations()
}

func (suite *CommentUsecaseTestSuite) TestReturnedContentIsTruncated() {
	long := strings.Repeat("é", DefaultCommentContentSizeMax+1)
	suite.enforceSecurity.On("CreateComment").Return(nil)
	suite.enforceSecurity.On("CanAddAttachments").Return(true)
	suite.repository.On("PostNote", mock.Anything, mock.Anything).
		Return(models.PostNoteResult{Note: suite.note(long)}, nil)

	created, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, long, nil)

	suite.Require().NoError(err)
	suite.Len([]rune(created.Content), DefaultCommentContentSizeMax)
	suite.True(strings.HasSuffix(created.Content, "..."))
	suite.Empty(created.InvalidAttachments)
	suite.AssertExpectations()
}

func (suite *CommentUsecaseTestSuite) TestBlankContent() {
	suite.enforceSecurity.On("CreateComment").Return(nil)

	_, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "  \n", nil)

	suite.ErrorIs(err, models.BadParameterError)
	suite.repository.AssertNotCalled(suite.T(), "PostNote", mock.Anything, mock.Anything)
}

func (suite *CommentUsecaseTestSuite) TestPostNoteFailure() {
	suite.enforceSecurity.On("CreateComment").Return(nil)
	suite.enforceSecurity.On("CanAddAttachments").Return(true)
	suite.repository.On("PostNote", mock.Anything, mock.Anything).
		Return(models.PostNoteResult{}, models.ErrBpsUnavailable)

	_, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "hello", nil)

	suite.ErrorIs(err, models.ErrBpsUnavailable)
	suite.AssertExpectations()
}

func (suite *CommentUsecaseTestSuite) TestForbidden() {
	suite.enforceSecurity.On("CreateComment").Return(models.ForbiddenError)

	_, err := suite.makeUsecase().PostCommentWithAttachments(suite.ctx, suite.caseviewId, "hello", nil)

	suite.ErrorIs(err, models.ForbiddenError)
	suite.AssertExpectations()
}

func TestCommentUsecase(t *testing.T) {
	suite.Run(t, new(CommentUsecaseTestSuite))
}
