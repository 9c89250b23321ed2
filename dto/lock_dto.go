package dto

type UnlockQuery struct {
	Force bool `form:"force"`
}
