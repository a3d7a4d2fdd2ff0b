package repository

import (
	"context"
	"errors"
	"report_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const resultCollection = "results"

type MongoResultRepository struct {
	coll *mongo.Collection
}

func NewMongoResultRepository(db *mongo.Database) *MongoResultRepository {
	return &MongoResultRepository{coll: db.Collection(resultCollection)}
}

func (r *MongoResultRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "result_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_result_id"),
		},
		{
			Keys:    bson.D{{Key: "result_user_id", Value: 1}, {Key: "result_test_id", Value: 1}},
			Options: options.Index().SetName("idx_result_user_test"),
		},
	})
	return err
}

func (r *MongoResultRepository) find(ctx context.Context, filter bson.M) ([]model.Result, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	results := []model.Result{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoResultRepository) findOne(ctx context.Context, filter bson.M) (*model.Result, error) {
	var result model.Result
	if err := r.coll.FindOne(ctx, filter).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *MongoResultRepository) FindAll(ctx context.Context) ([]model.Result, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoResultRepository) FindByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	return r.findOne(ctx, bson.M{"result_id": resultID})
}

func (r *MongoResultRepository) FindByUserID(ctx context.Context, userID string) ([]model.Result, error) {
	return r.find(ctx, bson.M{"result_user_id": userID})
}

func (r *MongoResultRepository) FindByUserAndTest(ctx context.Context, userID, testID string) (*model.Result, error) {
	return r.findOne(ctx, bson.M{"result_user_id": userID, "result_test_id": testID})
}

func (r *MongoResultRepository) Create(ctx context.Context, result *model.Result) error {
	_, err := r.coll.InsertOne(ctx, result)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoResultRepository) Save(ctx context.Context, result *model.Result) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": result.ID}, result)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoResultRepository) DeleteByResultID(ctx context.Context, resultID string) (*model.Result, error) {
	var result model.Result
	err := r.coll.FindOneAndDelete(ctx, bson.M{"result_id": resultID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
