package store

import (
	"time"

	"cobrify/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot guard
	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}

// ConfigFrom reads SERVICE_PGSQL_* keys; URL is only required when enabled
func ConfigFrom(c config.Conf) Config {
	pc := c.Prefix("SERVICE_PGSQL_")
	cfg := PGConfig{Enabled: pc.MayBool("ENABLED", false)}
	if !cfg.Enabled {
		return Config{PG: cfg}
	}
	cfg.URL = pc.MustString("DBURL")
	cfg.MaxConns = int32(pc.MayInt("MAX_CONNS", 4))
	cfg.SlowQueryMs = pc.MayInt("SLOW_MS", 200)
	cfg.LogSQL = pc.MayBool("LOG_SQL", false)
	cfg.ConnectRetries = pc.MayInt("CONNECT_RETRIES", 6)
	cfg.PingTimeout = pc.MayDuration("PING_TIMEOUT", 3*time.Second)
	return Config{PG: cfg}
}
