package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      string `env:"METRICS_ENABLED"`
	Port         string `env:"METRICS_PORT" env-default:"9090"`
	OtlpEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" env-default:"nfl-scores-service"`
	OtlpInsecure string `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// On reports whether metrics export is enabled (default true).
func (c MetricsConfig) On() bool {
	return parseBool(c.Enabled, true)
}

// Insecure reports whether the OTLP exporter should skip TLS (default true).
func (c MetricsConfig) Insecure() bool {
	return parseBool(c.OtlpInsecure, true)
}

func (c *MetricsConfig) normalize() {
	c.Port = stringOrDefault(c.Port, defaultMetricsPort)
	c.ServiceName = stringOrDefault(c.ServiceName, defaultServiceName)
}
