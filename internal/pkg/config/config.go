package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMillisecond retrieves the value associated with key as a number of milliseconds.
	GetMillisecond(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Implementations handle type conversion and fall back to zero values (or
// registered defaults) when a key is missing.
type Config interface {
	io.Closer
	TimeConfig

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetArray retrieves the value associated with key as a slice of strings.
	// The value is stored as <element1>,<element2>,... and blank elements are dropped.
	GetArray(key string) []string
}
