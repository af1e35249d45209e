package store

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoContentStore struct {
	col *mongo.Collection
}

func NewMongoContentStore(db *mongo.Database) *MongoContentStore {
	return &MongoContentStore{col: db.Collection(contentsCollection)}
}

// EnsureIndexes creates the phone_number index used by ListByPhoneNumber.
// Called on startup after Mongo has connected.
func (s *MongoContentStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_number", Value: 1}},
		Options: options.Index().SetName("idx_phone_number"),
	})
	return err
}

// Create assigns an id (if missing) and a creation time, then inserts c.
func (s *MongoContentStore) Create(ctx context.Context, c *models.GeneratedContent) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Data == nil {
		c.Data = []string{}
	}
	if _, err := s.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

func (s *MongoContentStore) ListByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.GeneratedContent, error) {
	cursor, err := s.col.Find(ctx, bson.M{"phone_number": phoneNumber})
	if err != nil {
		return nil, fmt.Errorf("find contents: %w", err)
	}
	defer cursor.Close(ctx)

	contents := []models.GeneratedContent{}
	if err := cursor.All(ctx, &contents); err != nil {
		return nil, fmt.Errorf("decode contents: %w", err)
	}
	return contents, nil
}

// Delete removes the record with id. A missing id is not an error.
func (s *MongoContentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
