package dto

import (
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type SecurityPolicyDto struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func AdaptSecurityPolicyDto(p models.SecurityPolicy) SecurityPolicyDto {
	permissions := p.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return SecurityPolicyDto{Id: p.Id, Name: p.Name, Description: p.Description, Permissions: permissions}
}

type ValidValueItemDto struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type ValidValueListDto struct {
	Key    string              `json:"key"`
	Values []ValidValueItemDto `json:"values"`
}

func AdaptValidValueListDto(l models.ValidValueList) ValidValueListDto {
	return ValidValueListDto{
		Key: l.Key,
		Values: pure_utils.Map(l.Values, func(v models.ValidValueItem) ValidValueItemDto {
			return ValidValueItemDto{Code: v.Code, Label: v.Label}
		}),
	}
}
