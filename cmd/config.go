package cmd

import (
	"github.com/cockroachdb/errors"
)

type CompiledConfig struct {
	Version string
}

type ServerConfig struct {
	filterConfigFile  string
	jwtPublicKey      string
	loggingFormat     string
	loggingLevel      string
	sentryDsn         string
	commentContentMax int
	outputDateLayout  string
}

func (config ServerConfig) Validate() error {
	if config.filterConfigFile == "" {
		return errors.New("FILTER_CONFIG_FILE is required")
	}
	if config.commentContentMax <= 0 {
		return errors.New("COMMENT_CONTENT_SIZE_MAX must be positive")
	}
	return nil
}
