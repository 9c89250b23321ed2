package models

import "time"

type Document struct {
	Id          string
	DocumentKey string
	Name        string
	Type        string
	UserId      string
	CreatedAt   time.Time
}

type DocumentContent struct {
	FileName    string
	ContentType string
	Content     []byte
}
