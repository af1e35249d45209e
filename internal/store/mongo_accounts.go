package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountStore keeps one document per phone number in the users
// collection, with the phone number as _id.
type MongoAccountStore struct {
	col *mongo.Collection
}

func NewMongoAccountStore(db *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{col: db.Collection(usersCollection)}
}

// SetAccessCode upserts the access code, leaving other fields untouched.
func (s *MongoAccountStore) SetAccessCode(ctx context.Context, phoneNumber, code string) error {
	update := bson.M{"$set": bson.M{
		"access_code": code,
		"updated_at":  time.Now().UTC(),
	}}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": phoneNumber}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set access code: %w", err)
	}
	return nil
}

func (s *MongoAccountStore) GetAccount(ctx context.Context, phoneNumber string) (*models.UserAccount, error) {
	var acc models.UserAccount
	err := s.col.FindOne(ctx, bson.M{"_id": phoneNumber}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acc, nil
}

// ConsumeAccessCode clears the stored code only if it still equals code.
// It reports whether a document was matched.
func (s *MongoAccountStore) ConsumeAccessCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	filter := bson.M{"_id": phoneNumber, "access_code": code}
	update := bson.M{"$set": bson.M{
		"access_code": "",
		"updated_at":  time.Now().UTC(),
	}}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("consume access code: %w", err)
	}
	return res.MatchedCount == 1, nil
}
