package config

// Defaults are the built-in values used when neither the config file nor the
// environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"app.name": "stopwatch",

		"app.server.http.address":                     "127.0.0.1:9876",
		"app.server.http.read_header_timeout_seconds": 5,
		"app.server.http.idle_timeout_seconds":        60,
		"app.server.admin.enabled":                    true,
		"app.server.admin.address":                    "127.0.0.1:9877",
		"app.server.cors":                             "",
		"app.shutdown_timeout_seconds":                10,

		"instrument.enabled":                 false,
		"instrument.service_name":            "stopwatch",
		"instrument.service_version":         "dev",
		"instrument.env":                     "local",
		"instrument.otlp_endpoint":           "localhost:4317",
		"instrument.otlp_secure":             false,
		"instrument.trace_sample_ratio":      1.0,
		"instrument.metric_interval_seconds": 60,
		"instrument.log_level":               "info",
		"instrument.log_requests":            false,
		"instrument.log_mask_fields":         "",
	}
}
