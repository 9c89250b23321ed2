package models

type SecurityPolicy struct {
	Id          string
	Name        string
	Description string
	Permissions []string
}
