package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash []byte             `bson:"password"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}

type userStore struct {
	collection *mongo.Collection
}

type UserStoreDependencies struct {
	Database *mongo.Database
}

func NewUserStore(deps UserStoreDependencies) domain.UserStore {
	return &userStore{
		collection: deps.Database.Collection(usersCollection),
	}
}

// EnsureUserIndexes creates the unique email index. Called once at startup.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	return nil
}

func (s *userStore) Create(ctx context.Context, email string, passwordHash []byte) (domain.User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc

	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user by email: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, domain.ErrNotFound
	}

	var doc userDoc

	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to find user by id: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *userStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
