package repository

import (
	"context"
	"time"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDisruptionRecordRepository implements DisruptionRecordRepository
type MongoDisruptionRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoDisruptionRecordRepository creates a new disruption record repository
func NewMongoDisruptionRecordRepository(db *mongo.Database) repository.DisruptionRecordRepository {
	collection := db.Collection("disruption_records")

	// Index on flightNumber+date for lookups
	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "flightNumber", Value: 1}, {Key: "date", Value: 1}},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	createdIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}
	collection.Indexes().CreateOne(ctx, createdIndex)

	return &MongoDisruptionRecordRepository{
		collection: collection,
	}
}

// Insert stores one assembled record
func (r *MongoDisruptionRecordRepository) Insert(ctx context.Context, record *entity.DisruptionRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindRecent returns the newest records, most recent first
func (r *MongoDisruptionRecordRepository) FindRecent(ctx context.Context, limit int) ([]*entity.DisruptionRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.DisruptionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByFlight returns records for a flight number, optionally narrowed to a date
func (r *MongoDisruptionRecordRepository) FindByFlight(ctx context.Context, flightNumber, date string) ([]*entity.DisruptionRecord, error) {
	filter := bson.M{"flightNumber": flightNumber}
	if date != "" {
		filter["date"] = date
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.DisruptionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
