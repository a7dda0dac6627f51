// Package module defines the contract every service module satisfies
package module

import phttp "cobrify/internal/platform/net/http"

// Module mounts routes and exposes ports for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
