package models

import "github.com/guregu/null/v5"

// LockStatus is the BPS view of a case lock. It is never acquired nor released here,
// only read and interpreted.
type LockStatus struct {
	BusinessKey string
	UserId      null.String
	Timestamp   null.Time
}

// IsLocked is true whenever BPS reports an owner, even an empty one. Only a null owner means unlocked.
func (l LockStatus) IsLocked() bool {
	return l.UserId.Valid
}

func (l LockStatus) IsLockedBy(userId string) bool {
	return l.IsLocked() && l.UserId.String == userId
}

type UnlockInput struct {
	CaseviewId string
	UserId     string
	Force      bool
}
