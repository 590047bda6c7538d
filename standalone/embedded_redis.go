package main

import (
	"product-api/pkg/logger"

	"github.com/alicebob/miniredis/v2"
)

// startEmbeddedRedis starts an in-process Redis used as the throttle store
func startEmbeddedRedis() (*miniredis.Miniredis, error) {
	logger.Info("starting embedded Redis...")

	server, err := miniredis.Run()
	if err != nil {
		return nil, err
	}

	logger.Infof("embedded Redis started on %s", server.Addr())
	return server, nil
}
