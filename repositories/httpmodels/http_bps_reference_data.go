package httpmodels

import (
	"github.com/checkmarble/caseview-backend/models"
	"github.com/checkmarble/caseview-backend/pure_utils"
)

type HTTPBpsSecurityPolicy struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type HTTPBpsValidValueItem struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type HTTPBpsValidValueList struct {
	Key    string                  `json:"key"`
	Values []HTTPBpsValidValueItem `json:"values"`
}

type HTTPBpsCount struct {
	TotalCount *int64 `json:"totalCount"`
}

func AdaptBpsSecurityPolicy(p HTTPBpsSecurityPolicy) models.SecurityPolicy {
	return models.SecurityPolicy{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Permissions: p.Permissions,
	}
}

func AdaptBpsValidValueList(l HTTPBpsValidValueList) models.ValidValueList {
	return models.ValidValueList{
		Key: l.Key,
		Values: pure_utils.Map(l.Values, func(v HTTPBpsValidValueItem) models.ValidValueItem {
			return models.ValidValueItem{Code: v.Code, Label: v.Label}
		}),
	}
}
