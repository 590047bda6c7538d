package helper

import (
	"product-api/pkg/config"
	"product-api/service-api/internal/app"
)

// NewAppServer exposes the API server to binaries outside service-api (standalone mode)
func NewAppServer(
	cfg *config.Config,
) *app.AppServer {
	return app.NewAppServer(cfg)
}
