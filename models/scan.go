package models

type ScanStatus string

const (
	ScanPass        ScanStatus = "PASS"
	ScanFail        ScanStatus = "FAIL"
	ScanUnavailable ScanStatus = "UNAVAILABLE"
	ScanIncomplete  ScanStatus = "INCOMPLETE"
)

type ScanResult struct {
	Status ScanStatus
	Detail string
}

func (s ScanResult) Passed() bool {
	return s.Status == ScanPass
}

// InvalidAttachment turns a non passing scan into the outcome reported to the caller.
func (s ScanResult) InvalidAttachment(fileName string) InvalidAttachmentMeta {
	switch s.Status {
	case ScanFail:
		return InvalidAttachmentMeta{FileName: fileName, Code: FileFailedVirusCheck, Description: VirusCheckFailedText}
	case ScanUnavailable:
		return InvalidAttachmentMeta{
			FileName:    fileName,
			Code:        FileVirusCheckUnavailable,
			Description: VirusCheckUnavailableText,
		}
	default:
		return InvalidAttachmentMeta{
			FileName:    fileName,
			Code:        FileVirusCheckIncomplete,
			Description: VirusCheckIncompleteText,
		}
	}
}
