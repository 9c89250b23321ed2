package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envVarType interface {
	string | int | bool | time.Duration
}

func GetEnv[T envVarType](envVar string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnv[T](envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid: %s", envVar, err))
	}
	return value
}

func GetRequiredEnv[T envVarType](envVar string) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	value, err := parseEnv[T](envValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: %s", envVar, err)
	}
	return value
}

func parseEnv[T envVarType](envValue string) (T, error) {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = envValue
	case *int:
		v, err := strconv.Atoi(envValue)
		if err != nil {
			return out, fmt.Errorf("'%s' is not an integer", envValue)
		}
		*ptr = v
	case *bool:
		v, err := strconv.ParseBool(envValue)
		if err != nil {
			return out, fmt.Errorf("'%s' cannot be converted to bool", envValue)
		}
		*ptr = v
	case *time.Duration:
		v, err := time.ParseDuration(envValue)
		if err != nil {
			return out, fmt.Errorf("'%s' is not a duration", envValue)
		}
		*ptr = v
	default:
		return out, fmt.Errorf("unsupported type %T", out)
	}
	return out, nil
}
