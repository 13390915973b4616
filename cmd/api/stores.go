package main

import (
	"context"
	"fmt"
	"log/slog"

	"voice-mentor/internal/assessment"
	"voice-mentor/internal/audit"
	"voice-mentor/internal/calls"
	"voice-mentor/internal/config"
	"voice-mentor/internal/todos"
	"voice-mentor/internal/users"
	"voice-mentor/pkg/utils"
)

// stores holds one repository per aggregate, all backed by the configured driver.
type stores struct {
	Users      users.Repository
	Todos      todos.Repository
	Calls      calls.Repository
	Assessment assessment.Repository
	Audit      audit.Repository

	close func()
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, db, err := utils.OpenMongo(ctx, utils.MongoConfig{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return stores{}, err
		}
		userRepo := users.NewMongoRepo(db)
		todoRepo := todos.NewMongoRepo(db)
		callRepo := calls.NewMongoRepo(db)
		assessmentRepo := assessment.NewMongoRepo(db)
		for _, ix := range []indexer{userRepo, todoRepo, callRepo, assessmentRepo} {
			if err := ix.EnsureIndexes(ctx); err != nil {
				_ = client.Disconnect(context.Background())
				return stores{}, fmt.Errorf("mongo indexes: %w", err)
			}
		}
		log.Info("store ready", "driver", "mongo", "database", cfg.Mongo.Database)
		return stores{
			Users:      userRepo,
			Todos:      todoRepo,
			Calls:      callRepo,
			Assessment: assessmentRepo,
			Audit:      audit.NewMongoRepo(db),
			close:      func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		db, err := utils.OpenPostgres(ctx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return stores{}, err
		}
		var schema []string
		for _, s := range [][]string{users.Schema, todos.Schema, calls.Schema, assessment.Schema, audit.Schema} {
			schema = append(schema, s...)
		}
		if err := utils.ApplySchema(ctx, db, schema...); err != nil {
			_ = db.Close()
			return stores{}, fmt.Errorf("postgres schema: %w", err)
		}
		log.Info("store ready", "driver", "postgres")
		return stores{
			Users:      users.NewPostgresRepo(db),
			Todos:      todos.NewPostgresRepo(db),
			Calls:      calls.NewPostgresRepo(db),
			Assessment: assessment.NewPostgresRepo(db),
			Audit:      audit.NewPostgresRepo(db),
			close:      func() { _ = db.Close() },
		}, nil
	}
}
