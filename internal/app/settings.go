package app

import (
	"time"

	"github.com/shandysiswandi/gostopwatch/internal/pkg/config"
)

// settings are the server values read once at startup. The key tags name
// the config key each field comes from so validation errors point at it.
type settings struct {
	HTTPAddress       string        `key:"app.server.http.address" validate:"required,hostname_port"`
	ReadHeaderTimeout time.Duration `key:"app.server.http.read_header_timeout_seconds" validate:"gte=0"`
	IdleTimeout       time.Duration `key:"app.server.http.idle_timeout_seconds" validate:"gte=0"`
	AdminEnabled      bool          `key:"app.server.admin.enabled"`
	AdminAddress      string        `key:"app.server.admin.address" validate:"required_if=AdminEnabled true,omitempty,hostname_port"`
	CORSOrigins       []string      `key:"app.server.cors" validate:"dive,required"`
	ShutdownTimeout   time.Duration `key:"app.shutdown_timeout_seconds" validate:"gt=0"`
	TraceSampleRatio  float64       `key:"instrument.trace_sample_ratio" validate:"gte=0,lte=1"`
	LogLevel          string        `key:"instrument.log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

func loadSettings(cfg config.Config) settings {
	return settings{
		HTTPAddress:       cfg.GetString("app.server.http.address"),
		ReadHeaderTimeout: cfg.GetSecond("app.server.http.read_header_timeout_seconds"),
		IdleTimeout:       cfg.GetSecond("app.server.http.idle_timeout_seconds"),
		AdminEnabled:      cfg.GetBool("app.server.admin.enabled"),
		AdminAddress:      cfg.GetString("app.server.admin.address"),
		CORSOrigins:       cfg.GetArray("app.server.cors"),
		ShutdownTimeout:   cfg.GetSecond("app.shutdown_timeout_seconds"),
		TraceSampleRatio:  cfg.GetFloat64("instrument.trace_sample_ratio"),
		LogLevel:          cfg.GetString("instrument.log_level"),
	}
}
