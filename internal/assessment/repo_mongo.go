package assessment

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("assessments")}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepo) Get(ctx context.Context, userID string) (History, error) {
	var h History
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return History{}, ErrNotFound
		}
		return History{}, err
	}
	return h, nil
}

func (r *MongoRepo) Upsert(ctx context.Context, h History) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": h.UserID},
		bson.M{"$set": bson.M{"conversationHistory": h.Entries, "updatedAt": h.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}
