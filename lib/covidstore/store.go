// Package covidstore persists daily statistics documents in MongoDB,
// one document per calendar day keyed by the record's date field.
package covidstore

import (
	"context"
	"errors"
	"fmt"

	"covidtrack-backend/lib/covid"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "daily_statistics"

var (
	// ErrAlreadyExists reports an insert for a date that already has
	// a document. Callers treat it as an idempotent no-op.
	ErrAlreadyExists = errors.New("a record for this date already exists")
	ErrNotFound      = errors.New("no record for this date")
)

type Store struct {
	collection *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique index on the date key. The index
// is what makes concurrent first-time inserts for the same day safe:
// exactly one wins, the rest surface ErrAlreadyExists.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique date index: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, rec *covid.DailyStatistics) error {
	_, err := s.collection.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

func (s *Store) FindByDate(ctx context.Context, date string) (*covid.DailyStatistics, error) {
	var rec covid.DailyStatistics
	err := s.collection.FindOne(ctx, bson.M{"date": date}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// MedicalByDate projects only the medical-staff counters of one day.
// A missing day returns (nil, nil): the caller's delta computation
// treats absence as a valid state, not an error.
func (s *Store) MedicalByDate(ctx context.Context, date string) (*covid.MedicalStaff, error) {
	var doc struct {
		Overall struct {
			Confirmed struct {
				Medical covid.MedicalStaff `bson:"medical"`
			} `bson:"confirmed"`
		} `bson:"overall"`
	}

	err := s.collection.FindOne(ctx, bson.M{"date": date},
		options.FindOne().SetProjection(bson.M{"overall.confirmed.medical": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Overall.Confirmed.Medical, nil
}

// Range returns the stored days with from <= date <= to in ascending
// date order. The date keys sort lexicographically because they share
// a fixed-width ISO 8601 layout.
func (s *Store) Range(ctx context.Context, from, to string) ([]covid.DailyStatistics, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{"date": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var out []covid.DailyStatistics
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Latest(ctx context.Context) (*covid.DailyStatistics, error) {
	var rec covid.DailyStatistics
	err := s.collection.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}}),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
