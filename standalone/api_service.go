package main

import (
	"product-api/pkg/config"
	api "product-api/service-api"
)

// runAPIService blocks until the API server receives a shutdown signal
func runAPIService(cfg *config.Config) {
	app := api.NewAppServer(cfg)
	app.Serve()
}
