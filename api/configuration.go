package api

import "time"

type Configuration struct {
	Env                 string
	AppName             string
	AppVersion          string
	Port                string
	RequestLoggingLevel string
	AllowedOrigins      []string
	DefaultTimeout      time.Duration
	CommentTimeout      time.Duration
	// multipart body limit of the comment upload, attachments included
	MaxCommentUploadBytes int64
	EnablePrometheus      bool
}
