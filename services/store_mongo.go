package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/theankitdev/ExpenseTracker/models"
)

// ExpenseStore is the document collection holding expense records. Records
// are write-once: there is no update or delete.
type ExpenseStore interface {
	Insert(ctx context.Context, expense *models.Expense) error
	Find(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error)
}

// MongoExpenseStore backs ExpenseStore with a MongoDB collection.
type MongoExpenseStore struct {
	coll *mongo.Collection
}

func NewMongoExpenseStore(coll *mongo.Collection) *MongoExpenseStore {
	return &MongoExpenseStore{coll: coll}
}

func (s *MongoExpenseStore) Insert(ctx context.Context, expense *models.Expense) error {
	if _, err := s.coll.InsertOne(ctx, expense); err != nil {
		return fmt.Errorf("%w: insert: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Find returns the owner's matching records, most recent first.
func (s *MongoExpenseStore) Find(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := s.coll.Find(ctx, BuildQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStoreUnavailable, err)
	}

	records := []models.Expense{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrStoreUnavailable, err)
	}

	return records, nil
}
