package repository

import (
	"context"
	"errors"
	"report_backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const individualCollection = "individuals"

type MongoIndividualRepository struct {
	coll *mongo.Collection
}

func NewMongoIndividualRepository(db *mongo.Database) *MongoIndividualRepository {
	return &MongoIndividualRepository{coll: db.Collection(individualCollection)}
}

// EnsureIndexes creates the unique user_id index backing the one record per
// user rule.
func (r *MongoIndividualRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
	})
	return err
}

func (r *MongoIndividualRepository) FindByUserID(ctx context.Context, userID string) (*model.Individual, error) {
	var individual model.Individual
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&individual)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	individual.Normalize()
	return &individual, nil
}

func (r *MongoIndividualRepository) FindAll(ctx context.Context) ([]model.Individual, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	individuals := []model.Individual{}
	if err := cur.All(ctx, &individuals); err != nil {
		return nil, err
	}
	for i := range individuals {
		individuals[i].Normalize()
	}
	return individuals, nil
}

func (r *MongoIndividualRepository) Create(ctx context.Context, individual *model.Individual) error {
	_, err := r.coll.InsertOne(ctx, individual)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoIndividualRepository) Save(ctx context.Context, individual *model.Individual) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": individual.ID}, individual)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
