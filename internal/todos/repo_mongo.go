package todos

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "todos"

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection(mongoCollection)}
}

// EnsureIndexes creates the owner listing index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *MongoRepo) Insert(ctx context.Context, t Todo) error {
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

func (r *MongoRepo) Get(ctx context.Context, userID, id string) (Todo, error) {
	var t Todo
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return t, nil
}

func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Todo, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Update(ctx context.Context, t Todo) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": t.ID, "userId": t.UserID},
		bson.M{"$set": bson.M{
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"priority":    t.Priority,
			"updatedAt":   t.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
