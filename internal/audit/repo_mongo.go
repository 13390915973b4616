package audit

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("audit_events")}
}

func (r *MongoRepo) Append(ctx context.Context, e Event) error {
	_, err := r.coll.InsertOne(ctx, e)
	return err
}
