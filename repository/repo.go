package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/fx"
)

const (
	simulationRunCollection = "simulation_runs"
	connectTimeout          = 10 * time.Second
)

type Params struct {
	fx.In
	Lc          fx.Lifecycle `optional:"true"`
	MongoConfig config.MongoDBConfig
}

// NewRepository returns the Mongo backed repository when MongoDB is enabled,
// otherwise an in-process one.
func NewRepository(params Params) (domain.Repository, error) {
	if !params.MongoConfig.Enable {
		return NewMemoryRepository(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	r, err := NewMongoRepository(ctx, params.MongoConfig)
	if err != nil {
		return nil, err
	}
	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return r.Close(ctx)
			},
		})
	}
	return r, nil
}

type repo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoRepository(ctx context.Context, cfg config.MongoDBConfig) (*repo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI()))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb, err: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb, err: %w", err)
	}

	r := &repo{
		client: client,
		db:     client.Database(cfg.Database),
	}
	if err := r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Logger(ctx).Info().Msgf("connected to mongodb %s:%s, database %s", cfg.Host, cfg.Port, cfg.Database)
	return r, nil
}

func (r *repo) ensureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(simulationRunCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}}},
		{Keys: bson.D{{Key: "created_time", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create simulation run indexes, err: %w", err)
	}
	return nil
}

func (r *repo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
