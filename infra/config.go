package infra

import "time"

type BpsConfig struct {
	BaseUrl        string
	RequestTimeout time.Duration
	// layout of the dates BPS uses internally for characteristics of type Date
	InternalDateLayout string
	// date format used when no data definition declares one
	DefaultDateFormat string
}

type AntivirusConfig struct {
	BaseUrl        string
	RequestTimeout time.Duration
	MaxConcurrency int
}

type InternalTokenConfig struct {
	Url          string
	ClientId     string
	ClientSecret string
	TokenTTL     time.Duration
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	SamplingRate    float64
}
