package models

import (
	"fmt"
	"time"
)

type AttachmentErrorCode string

const (
	FileTooLarge              AttachmentErrorCode = "FILE_TOO_LARGE"
	UnsupportedFileType       AttachmentErrorCode = "UNSUPPORTED_FILE_TYPE"
	BadData                   AttachmentErrorCode = "BAD_DATA"
	MismatchedType            AttachmentErrorCode = "MISMATCHED_TYPE"
	ExceededFilesPerMinute    AttachmentErrorCode = "EXCEEDED_FILES_PER_MINUTE"
	FileFailedVirusCheck      AttachmentErrorCode = "FILE_FAILED_VIRUS_CHECK"
	FileVirusCheckIncomplete  AttachmentErrorCode = "FILE_VIRUS_CHECK_INCOMPLETE"
	FileVirusCheckUnavailable AttachmentErrorCode = "FILE_VIRUS_CHECK_UNAVAILABLE"
	NoAttachPermission        AttachmentErrorCode = "NO_ATTACH_PERMISSION"
	AttachmentSystemError     AttachmentErrorCode = "SYSTEM_ERROR"
)

// Result codes returned by BPS for attachments it refused to persist
type BpsAttachmentResult string

const (
	BpsAttachmentTooLong         BpsAttachmentResult = "TOO_LONG"
	BpsAttachmentUnsupportedType BpsAttachmentResult = "UNSUPPORTED_TYPE"
	BpsAttachmentBadData         BpsAttachmentResult = "BAD_DATA"
	BpsAttachmentMismatchedType  BpsAttachmentResult = "MISMATCHED_TYPE"
	BpsAttachmentExceedsCadence  BpsAttachmentResult = "EXCEEDS_CADENCE"
)

func (r BpsAttachmentResult) ErrorCode() AttachmentErrorCode {
	switch r {
	case BpsAttachmentTooLong:
		return FileTooLarge
	case BpsAttachmentUnsupportedType:
		return UnsupportedFileType
	case BpsAttachmentBadData:
		return BadData
	case BpsAttachmentMismatchedType:
		return MismatchedType
	case BpsAttachmentExceedsCadence:
		return ExceededFilesPerMinute
	default:
		return AttachmentSystemError
	}
}

const (
	VirusCheckFailedText      = "The file failed the virus check."
	VirusCheckIncompleteText  = "The file virus check is not completed."
	VirusCheckUnavailableText = "The file virus check is not available."
	NoAttachPermissionText    = "The file not persisted due to user does not have add attachment permission."
)

// Attachment is a file uploaded along with a comment, before it is scanned and sent to BPS.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

type AttachmentMeta struct {
	Id       string
	FileName string
	FileSize int64
	FileType string
}

type InvalidAttachmentMeta struct {
	FileName    string
	Code        AttachmentErrorCode
	Description string
}

func (i InvalidAttachmentMeta) String() string {
	return fmt.Sprintf("%s: %s", i.FileName, i.Code)
}

type Comment struct {
	Id               string
	BusinessKey      string
	Content          string
	UserId           string
	CreatedAt        time.Time
	ValidAttachments []AttachmentMeta
}

type CreatedComment struct {
	Comment
	InvalidAttachments []InvalidAttachmentMeta
}

// BpsNote is a note as stored by BPS. It is only exposed as a Comment once its fields are validated.
type BpsNote struct {
	Id          string
	BusinessKey string
	Content     string
	UserId      string
	CreatedAt   time.Time
	Attachments []AttachmentMeta
}

type BpsInvalidAttachment struct {
	FileName    string
	Result      BpsAttachmentResult
	Description string
}

type PostNoteInput struct {
	CaseviewId   string
	Content      string
	UserId       string
	ExternalUser string
	Attachments  []Attachment
}

type PostNoteResult struct {
	Note               BpsNote
	InvalidAttachments []BpsInvalidAttachment
}
