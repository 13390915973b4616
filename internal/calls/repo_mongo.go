package calls

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("calllogs")}
}

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "callSid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *MongoRepo) Insert(ctx context.Context, l CallLog) error {
	_, err := r.coll.InsertOne(ctx, l)
	return err
}

func (r *MongoRepo) GetByCallSID(ctx context.Context, callSID string) (CallLog, error) {
	var l CallLog
	if err := r.coll.FindOne(ctx, bson.M{"callSid": callSID}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CallLog{}, ErrNotFound
		}
		return CallLog{}, err
	}
	return l, nil
}

func (r *MongoRepo) UpdateStatus(ctx context.Context, callSID string, status CallStatus, durationSeconds int, at time.Time) (CallLog, error) {
	var prev CallLog
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"callSid": callSID},
		bson.M{"$set": bson.M{"status": status, "duration": durationSeconds, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CallLog{}, ErrNotFound
		}
		return CallLog{}, err
	}
	return prev, nil
}

func (r *MongoRepo) SetRecording(ctx context.Context, callSID, url string, at time.Time) error {
	return r.set(ctx, callSID, bson.M{"recordingUrl": url, "updatedAt": at})
}

func (r *MongoRepo) set(ctx context.Context, callSID string, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"callSid": callSID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]CallLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]CallLog, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
