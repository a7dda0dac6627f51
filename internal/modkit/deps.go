// Package modkit provides module wiring and the deps every module receives
package modkit

import (
	"cobrify/internal/platform/config"
	"cobrify/internal/platform/logger"
	"cobrify/internal/platform/store"
)

// Deps holds the shared dependencies handed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when postgres is disabled; modules fall back to memory
	PG store.TxRunner
}
