package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"music-catalog/internal"
	"music-catalog/internal/http"
	"music-catalog/internal/memory"
	"music-catalog/internal/postgres"
	"music-catalog/internal/service"

	"cloud.google.com/go/compute/metadata"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

func main() {
	if metadata.OnGCE() {
		if err := useGCEPort(); err != nil {
			log.Fatal(err)
		}
	}

	v, err := loadConfig(".env")
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.New(v.AppName, version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	ctx := context.Background()

	store, closeStore, err := newStore(ctx, v, logger)
	if err != nil {
		logger.Error("failed to open storage",
			"storage", v.Storage,
			"details", err.Error(),
		)
		os.Exit(1)
	}
	defer closeStore()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("music-catalog root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		AppName: v.AppName,
		Version: version,
		Logger:  logger,
		Catalog: &service.Catalog{
			Store:  store,
			Logger: logger,
		},
	}
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

// useGCEPort points ADDR at the port Cloud Run and App Engine assign.
func useGCEPort() error {
	port := os.Getenv("PORT")
	if port == "" {
		return nil
	}
	return os.Setenv("ADDR", ":"+port)
}

func newStore(ctx context.Context, v variables, logger tools.Logger) (internal.Store, func(), error) {
	switch v.Storage {
	case storageMemory:
		logger.Warn("using in-memory storage, data will not survive a restart")
		return memory.New(nil), func() {}, nil
	case storagePostgres:
		pg, err := newPostgres(v, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, errors.Wrap(err, "ping postgres")
		}
		return pg, func() { _ = pg.Close() }, nil
	}
	return nil, nil, errors.Errorf("unknown storage %q", v.Storage)
}

func newPostgres(v variables, logger tools.Logger) (*postgres.Postgres, error) {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: !v.PostgresSSL,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	return postgres.New(pgConfig, logger, v.DBTimeout)
}
