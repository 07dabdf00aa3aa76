// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of the variable named by the key.
// Unset or malformed values yield fallback.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvInt64 is GetEnvInt for 64-bit values.
func GetEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvDuration parses the variable with time.ParseDuration.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// GetEnvLevel returns the log level named by the key (debug, info, warn, error).
func GetEnvLevel(key string, fallback log.Level) log.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	lvl, err := log.ParseLevel(value)
	if err != nil {
		return fallback
	}
	return lvl
}
