package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"greencalc/internal/domain/models"
)

const defaultListLimit = 200

// MongoDBRepository persists calculation history into a MongoDB collection.
// It is the alternative to the default SQLite backend for deployments that
// already run a cluster.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "calculations",
	}, nil
}

// Append inserts one calculation record.
func (r *MongoDBRepository) Append(ctx context.Context, record models.HistoryRecord) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

// List returns the most recent records first.
func (r *MongoDBRepository) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	collection := r.client.Database(r.dbName).Collection(r.collName)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query history records: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := []models.HistoryRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history records: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
