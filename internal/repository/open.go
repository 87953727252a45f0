// Package repository selects and opens the configured persistence backend.
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/repository/file"
	"github.com/mamadbah2/suraksha/internal/repository/kv"
	"github.com/mamadbah2/suraksha/internal/repository/mongodb"
	"github.com/mamadbah2/suraksha/internal/repository/postgres"
	"github.com/mamadbah2/suraksha/internal/repository/s3"
	"github.com/mamadbah2/suraksha/internal/repository/sqlite"
)

// CloseFunc releases whatever the opened backend holds.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open builds the kv.Store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (kv.Store, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; records are lost on exit")
		return kv.NewMemoryStore(), noopClose, nil
	case config.DriverFile, "":
		store, err := file.NewStore(cfg.Storage.FileDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("file storage ready", zap.String("dir", cfg.Storage.FileDir))
		return store, noopClose, nil
	case config.DriverSQLite:
		store, err := sqlite.NewStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("sqlite storage ready", zap.String("path", cfg.Storage.SQLitePath))
		return store, func(context.Context) error { return store.Close() }, nil
	case config.DriverPostgres:
		store, err := postgres.NewStore(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("postgres storage ready")
		return store, func(context.Context) error { return store.Close() }, nil
	case config.DriverMongoDB:
		store, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("mongodb storage ready", zap.String("db", cfg.MongoDB.DBName))
		return store, store.Close, nil
	case config.DriverS3:
		store, err := s3.New(ctx, s3.Config{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("s3 storage ready", zap.String("bucket", cfg.S3.Bucket))
		return store, noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
