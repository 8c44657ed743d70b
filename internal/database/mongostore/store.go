// Package mongostore implements database.DataStore on MongoDB.
// Ids are ObjectIDs rendered as hex strings; an id that is not valid hex is
// treated like a document that does not exist.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/todox/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection  = "users"
	LabelsCollection = "labels"
	TasksCollection  = "tasks"
)

// DefaultDatabase is used when no database name is configured
const DefaultDatabase = "todox"

// Store is a MongoDB-backed DataStore
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	labels *mongo.Collection
	tasks  *mongo.Collection
	now    func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp created/updated times
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open connects to uri, verifies the connection and returns a Store on dbName.
// Indexes are not created here; call EnsureIndexes once at startup.
func Open(ctx context.Context, uri, dbName string, opts ...Option) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if dbName == "" {
		dbName = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			slog.Error("failed to disconnect after ping failure", "error", dErr)
		}
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return New(client.Database(dbName), opts...), nil
}

// New wraps an already connected database
func New(db *mongo.Database, opts ...Option) *Store {
	s := &Store{
		client: db.Client(),
		users:  db.Collection(UsersCollection),
		labels: db.Collection(LabelsCollection),
		tasks:  db.Collection(TasksCollection),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// indexes lists every index the store relies on, per collection
func indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
		},
		LabelsCollection: {
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("owner_name_unique"),
			},
		},
		TasksCollection: {
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}},
				Options: options.Index().SetName("owner"),
			},
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("owner_created_desc"),
			},
		},
	}
}

// EnsureIndexes creates the unique and listing indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	collections := map[string]*mongo.Collection{
		UsersCollection:  s.users,
		LabelsCollection: s.labels,
		TasksCollection:  s.tasks,
	}
	for name, specs := range indexes() {
		created, err := collections[name].Indexes().CreateMany(ctx, specs)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		slog.Debug("ensured indexes", "collection", name, "indexes", created)
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// stamp returns the current time at the precision MongoDB stores
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// duplicateAs maps a duplicate key error to target and leaves others wrapped
func duplicateAs(err, target error, action string) error {
	if mongo.IsDuplicateKeyError(err) {
		return target
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Compile-time verification that *Store implements DataStore
var _ database.DataStore = (*Store)(nil)
