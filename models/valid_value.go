package models

type ValidValueItem struct {
	Code  string
	Label string
}

type ValidValueList struct {
	Key    string
	Values []ValidValueItem
}
