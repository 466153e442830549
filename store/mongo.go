package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	models "github.com/nampd/membership-portal-go/models"
)

// MongoStore persists both collections in MongoDB.
type MongoStore struct {
	members  *mongo.Collection
	payments *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		members:  db.Collection("members"),
		payments: db.Collection("payments"),
	}
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *MongoStore) GetMember(ctx context.Context, id string) (models.MemberProfile, error) {
	var m models.MemberProfile
	err := s.members.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return m, ErrMemberNotFound
	}
	return m, err
}

func (s *MongoStore) GetMemberByEmail(ctx context.Context, email string) (models.MemberProfile, error) {
	var m models.MemberProfile
	err := s.members.FindOne(ctx, bson.M{"email": email}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return m, ErrMemberNotFound
	}
	return m, err
}

func (s *MongoStore) ListMembers(ctx context.Context) ([]models.MemberProfile, error) {
	cursor, err := s.members.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var members []models.MemberProfile
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MongoStore) InsertMember(ctx context.Context, m models.MemberProfile) error {
	if _, err := s.members.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrMemberExists
		}
		return err
	}
	return nil
}

func (s *MongoStore) UpdateMember(ctx context.Context, m models.MemberProfile) error {
	res, err := s.members.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *MongoStore) InsertPayment(ctx context.Context, p models.Payment) error {
	_, err := s.payments.InsertOne(ctx, p)
	return err
}

func (s *MongoStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.payments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// SeedIfEmpty loads the demo dataset into empty collections so a fresh
// deployment has the same accounts as the in-memory store.
func (s *MongoStore) SeedIfEmpty(ctx context.Context) error {
	n, err := s.members.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, m := range SeedMembers() {
		if err := s.InsertMember(ctx, m); err != nil {
			return err
		}
	}
	for _, p := range SeedPayments() {
		if err := s.InsertPayment(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
