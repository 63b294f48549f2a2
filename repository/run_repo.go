package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// prepareRun fills the id and creation time of a run about to be stored
func prepareRun(run *domain.SimulationRun) error {
	if run == nil {
		return errors.New("nil simulation run")
	}
	if run.ID == "" {
		run.ID = xid.New().String()
	}
	if run.CreatedTime == 0 {
		run.CreatedTime = time.Now().UnixMilli()
	}
	return nil
}

func (r *repo) CreateRun(ctx context.Context, run *domain.SimulationRun) error {
	if err := prepareRun(run); err != nil {
		return err
	}
	_, err := r.db.Collection(simulationRunCollection).InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("create simulation run, err: %w", err)
	}
	return nil
}

func (r *repo) QueryRuns(ctx context.Context, opt *domain.QueryRunOptions) error {
	if opt == nil {
		return domain.ErrNilQueryInput
	}

	filter := bson.M{}
	if len(opt.IDs) > 0 {
		filter["_id"] = bson.M{"$in": opt.IDs}
	}
	if len(opt.Fingerprints) > 0 {
		filter["fingerprint"] = bson.M{"$in": opt.Fingerprints}
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "created_time", Value: -1}, {Key: "_id", Value: -1}})
	if opt.Limit > 0 {
		findOpts.SetLimit(opt.Limit)
	}

	cursor, err := r.db.Collection(simulationRunCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("find simulation runs, err: %w", err)
	}

	var result []*domain.SimulationRun
	if err := cursor.All(ctx, &result); err != nil {
		return fmt.Errorf("decode simulation runs, err: %w", err)
	}
	opt.Result = result
	return nil
}

func (r *repo) DeleteRun(ctx context.Context, id string) error {
	res, err := r.db.Collection(simulationRunCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete simulation run, err: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
