package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/todox/internal/database"
	"github.com/thenoetrevino/todox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a user; the unique email index decides races
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	now := s.stamp()
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return nil, duplicateAs(err, database.ErrDuplicateEmail, "create user")
	}
	return doc.model(), nil
}

// GetUserByEmail returns the user with this exact email, or nil
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

// GetUserByID returns the user with this id, or nil
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

// UpdateUserPasswordHash replaces the hash and refreshes updated_at
func (s *Store) UpdateUserPasswordHash(ctx context.Context, id, passwordHash string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": s.stamp()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", id, err)
	}
	return nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.model(), nil
}
