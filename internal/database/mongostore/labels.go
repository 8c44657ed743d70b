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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateLabel inserts a label; the (owner_id, name) index rejects duplicates
func (s *Store) CreateLabel(ctx context.Context, ownerID, name string) (*models.Label, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return nil, fmt.Errorf("invalid owner id %q", ownerID)
	}
	doc := labelDoc{
		ID:        primitive.NewObjectID(),
		Name:      name,
		OwnerID:   owner,
		CreatedAt: s.stamp(),
	}
	if _, err := s.labels.InsertOne(ctx, doc); err != nil {
		return nil, duplicateAs(err, database.ErrDuplicateLabel, "create label")
	}
	return doc.model(), nil
}

// GetLabelsByOwner returns the owner's labels ordered by name
func (s *Store) GetLabelsByOwner(ctx context.Context, ownerID string) ([]*models.Label, error) {
	labels := []*models.Label{}
	owner, ok := objectID(ownerID)
	if !ok {
		return labels, nil
	}

	cursor, err := s.labels.Find(ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get labels for owner %s: %w", ownerID, err)
	}
	var docs []labelDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode labels: %w", err)
	}
	for i := range docs {
		labels = append(labels, docs[i].model())
	}
	return labels, nil
}

// GetLabelByID returns nil when the label is missing or owned by someone else
func (s *Store) GetLabelByID(ctx context.Context, id, ownerID string) (*models.Label, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}
	var doc labelDoc
	err := s.labels.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", id, err)
	}
	return doc.model(), nil
}

// UpdateLabel renames a label with a single find-and-update
func (s *Store) UpdateLabel(ctx context.Context, id, ownerID, name string) (*models.Label, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}
	var doc labelDoc
	err := s.labels.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, duplicateAs(err, database.ErrDuplicateLabel, "update label")
	}
	return doc.model(), nil
}

// DeleteLabel pulls the label id from the owner's tasks, then deletes the
// label. A crash in between leaves a label no task references, which is safe.
func (s *Store) DeleteLabel(ctx context.Context, id, ownerID string) (bool, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return false, nil
	}

	if err := s.labels.FindOne(ctx, filter).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up label %s: %w", id, err)
	}

	_, err := s.tasks.UpdateMany(ctx,
		bson.M{"owner_id": filter["owner_id"], "label_ids": id},
		bson.M{"$pull": bson.M{"label_ids": id}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove label %s from tasks: %w", id, err)
	}

	result, err := s.labels.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// ownedFilter matches one document by id and owner; ok is false when either
// id is not an ObjectID
func ownedFilter(id, ownerID string) (bson.M, bool) {
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	owner, ok := objectID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "owner_id": owner}, true
}
