package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"product-api/pkg/config"
	"product-api/pkg/database"
	"product-api/pkg/logger"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

const (
	embeddedDBName     = "productapi"
	embeddedDBUser     = "postgres"
	embeddedDBPassword = "postgres"
)

type embeddedDB struct {
	postgres *embeddedpostgres.EmbeddedPostgres
	port     uint32
}

// findAvailablePort finds an available port starting from the given port
func findAvailablePort(startPort uint32) (uint32, error) {
	for port := startPort; port < startPort+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in [%d, %d)", startPort, startPort+100)
}

// startEmbeddedDB boots a throwaway PostgreSQL under ~/.product-api and applies the schema
func startEmbeddedDB(ctx context.Context) (*embeddedDB, error) {
	logger.Info("starting embedded PostgreSQL...")

	port, err := findAvailablePort(15432)
	if err != nil {
		return nil, err
	}
	logger.Infof("using port %d for PostgreSQL", port)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	root := filepath.Join(homeDir, ".product-api")
	dataDir := filepath.Join(root, "data")
	runtimeDir := filepath.Join(root, "runtime")
	binariesDir := filepath.Join(root, "binaries")

	// the data directory is recreated on every start
	if err := os.RemoveAll(dataDir); err != nil {
		logger.Warnf("failed to clean up existing data directory: %v", err)
	}
	for _, dir := range []string{dataDir, runtimeDir, binariesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(embeddedDBUser).
		Password(embeddedDBPassword).
		Database(embeddedDBName).
		Port(port).
		RuntimePath(runtimeDir).
		DataPath(dataDir).
		BinariesPath(binariesDir).
		StartTimeout(60 * time.Second))

	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("failed to start embedded PostgreSQL: %w", err)
	}

	edb := &embeddedDB{postgres: pg, port: port}
	if err := edb.migrate(ctx); err != nil {
		edb.stop()
		return nil, err
	}

	logger.Infof("embedded PostgreSQL started on port %d", port)
	return edb, nil
}

// migrate waits for the server to accept connections and applies the schema
func (e *embeddedDB) migrate(ctx context.Context) error {
	cfg := &config.Config{Database: embeddedDatabaseConfig(e.port)}

	var (
		db  *sql.DB
		err error
	)
	for attempt := 1; attempt <= 30; attempt++ {
		db, err = database.NewPgDB(cfg)
		if err == nil {
			break
		}
		logger.Debugf("waiting for PostgreSQL... (%d/30)", attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("embedded PostgreSQL did not become ready: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logger.Info("database schema initialized")
	return nil
}

func (e *embeddedDB) stop() {
	logger.Info("shutting down embedded PostgreSQL...")
	if err := e.postgres.Stop(); err != nil {
		logger.Error(err, "failed to stop embedded PostgreSQL")
	}
}
