package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/todox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTask inserts a task with status=open and an empty label set unless supplied
func (s *Store) CreateTask(ctx context.Context, ownerID string, fields models.TaskFields) (*models.Task, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return nil, fmt.Errorf("invalid owner id %q", ownerID)
	}
	status := fields.Status
	if status == "" {
		status = models.StatusOpen
	}

	now := s.stamp()
	doc := taskDoc{
		ID:          primitive.NewObjectID(),
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    string(fields.Priority),
		Deadline:    fields.Deadline.Time(),
		Status:      string(status),
		LabelIDs:    models.UniqueIDs(fields.LabelIDs),
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.tasks.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return doc.model(), nil
}

// GetTasksByOwner returns the owner's tasks, newest first
func (s *Store) GetTasksByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	tasks := []*models.Task{}
	owner, ok := objectID(ownerID)
	if !ok {
		return tasks, nil
	}

	// ObjectIDs grow with insertion, so _id breaks created_at ties
	cursor, err := s.tasks.Find(ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for owner %s: %w", ownerID, err)
	}
	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	for i := range docs {
		tasks = append(tasks, docs[i].model())
	}
	return tasks, nil
}

// GetTaskByID returns nil when the task is missing or owned by someone else
func (s *Store) GetTaskByID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}
	var doc taskDoc
	err := s.tasks.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return doc.model(), nil
}

// UpdateTask $sets only the supplied fields plus updated_at
func (s *Store) UpdateTask(ctx context.Context, id, ownerID string, patch models.TaskPatch) (*models.Task, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, nil
	}

	var doc taskDoc
	err := s.tasks.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": patchSet(patch, s.stamp())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return doc.model(), nil
}

// DeleteTask removes a task outright
func (s *Store) DeleteTask(ctx context.Context, id, ownerID string) (bool, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return false, nil
	}
	result, err := s.tasks.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// patchSet builds the $set document for a partial update
func patchSet(p models.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Priority != nil {
		set["priority"] = string(*p.Priority)
	}
	if p.Deadline != nil {
		set["deadline"] = p.Deadline.Time()
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.LabelIDs != nil {
		set["label_ids"] = models.UniqueIDs(*p.LabelIDs)
	}
	return set
}
