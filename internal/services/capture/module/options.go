package module

import (
	"time"

	"cobrify/internal/platform/config"
	"cobrify/internal/services/capture/domain"
)

// Options controls the capture module
type Options struct {
	TrustedPackage string
	Autostart      bool
	IngestRPS      float64
	IngestBurst    int
	KeepAlive      time.Duration
}

// FromConfig reads with CAPTURE_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CAPTURE_")
	return Options{
		TrustedPackage: c.MayString("TRUSTED_PACKAGE", domain.DefaultTrustedPackage),
		Autostart:      c.MayBool("AUTOSTART", true),
		IngestRPS:      c.MayFloat64("INGEST_RPS", 20),
		IngestBurst:    c.MayInt("INGEST_BURST", 40),
		KeepAlive:      c.MayDuration("SSE_KEEPALIVE", 25*time.Second),
	}
}
