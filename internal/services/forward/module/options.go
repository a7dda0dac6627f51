package module

import (
	"time"

	"cobrify/internal/platform/config"
)

// Options controls the forward lane
type Options struct {
	CollectorURL string
	UserAgent    string
	Timeout      time.Duration
}

// FromConfig reads with FORWARD_ prefix; the collector url is required
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FORWARD_")
	return Options{
		CollectorURL: c.MustURL("COLLECTOR_URL").String(),
		UserAgent:    c.MayString("USER_AGENT", ""),
		Timeout:      c.MayDuration("TIMEOUT", 15*time.Second),
	}
}
