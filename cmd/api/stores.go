package main

import (
	"context"
	"fmt"
	"time"

	"asset-registry-api/internal/config"
	"asset-registry-api/internal/database"
	"asset-registry-api/internal/repository"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// storeSet is the storage wired for the configured driver.
type storeSet struct {
	Employees repository.EmployeeStore
	Systems   repository.SystemStore
	Ping      func(ctx context.Context) error
	close     func() error
}

func (s *storeSet) Close() {
	if s.close != nil {
		_ = s.close()
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storeSet, error) {
	var (
		set *storeSet
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		set, err = openPostgres(ctx, cfg)
	case config.DriverMongo:
		set, err = openMongo(ctx, cfg)
	case config.DriverMemory:
		logger.Warn("Using in-memory storage; records are lost on restart")
		set = &storeSet{
			Employees: repository.NewEmployeeMemoryStore(),
			Systems:   repository.NewSystemMemoryStore(),
		}
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	schema := repository.NewSchemaValidator()
	set.Employees = repository.Validated("Employee", set.Employees, schema)
	set.Systems = repository.Validated("System", set.Systems, schema)

	logger.Info("Storage ready", zap.String("driver", cfg.Database.Driver))
	return set, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*storeSet, error) {
	db, err := database.InitPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db, repository.EmployeeTable, repository.SystemTable); err != nil {
		db.Close()
		return nil, err
	}

	return &storeSet{
		Employees: repository.NewEmployeePostgresStore(db),
		Systems:   repository.NewSystemPostgresStore(db),
		Ping:      db.PingContext,
		close:     db.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*storeSet, error) {
	client, db, err := database.InitMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &storeSet{
		Employees: repository.NewEmployeeMongoStore(db),
		Systems:   repository.NewSystemMongoStore(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		},
	}, nil
}
