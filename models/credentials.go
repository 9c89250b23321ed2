package models

import (
	"fmt"
	"slices"
)

type UserId string

type Identity struct {
	UserId UserId
	Email  string
}

type Credentials struct {
	ActorIdentity Identity
	Permissions   []Permission
	// value of the X-External-User header, when the caller acts on behalf of an external user
	ExternalUser string
}

func (c Credentials) HasPermission(permission Permission) bool {
	return slices.Contains(c.Permissions, permission)
}

// EffectiveUserId is the identity compared with the BPS lock owner.
func (c Credentials) EffectiveUserId() string {
	if c.ExternalUser == "" {
		return string(c.ActorIdentity.UserId)
	}
	return fmt.Sprintf("%s/%s", c.ExternalUser, c.ActorIdentity.UserId)
}

type Permission int

const (
	CASEVIEW_READ Permission = iota
	CASEVIEW_UPDATE
	ADD_COMMENT
	ADD_ATTACHMENT
	VIEW_ATTACHMENT
	RELEASE_LOCK
	DATA_DEFINITION_REFRESH
)

func (p Permission) String() string {
	switch p {
	case CASEVIEW_READ:
		return "CASEVIEW_READ"
	case CASEVIEW_UPDATE:
		return "CASEVIEW_UPDATE"
	case ADD_COMMENT:
		return "ADD_COMMENT"
	case ADD_ATTACHMENT:
		return "ADD_ATTACHMENT"
	case VIEW_ATTACHMENT:
		return "VIEW_ATTACHMENT"
	case RELEASE_LOCK:
		return "RELEASE_LOCK"
	case DATA_DEFINITION_REFRESH:
		return "DATA_DEFINITION_REFRESH"
	default:
		return "UNKNOWN_PERMISSION"
	}
}

func PermissionFromString(s string) (Permission, bool) {
	switch s {
	case "CASEVIEW_READ":
		return CASEVIEW_READ, true
	case "CASEVIEW_UPDATE":
		return CASEVIEW_UPDATE, true
	case "ADD_COMMENT":
		return ADD_COMMENT, true
	case "ADD_ATTACHMENT":
		return ADD_ATTACHMENT, true
	case "VIEW_ATTACHMENT":
		return VIEW_ATTACHMENT, true
	case "RELEASE_LOCK":
		return RELEASE_LOCK, true
	case "DATA_DEFINITION_REFRESH":
		return DATA_DEFINITION_REFRESH, true
	default:
		return 0, false
	}
}
