package mongostore

import (
	"time"

	"github.com/thenoetrevino/todox/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type labelDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *labelDoc) model() *models.Label {
	return &models.Label{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		OwnerID:   d.OwnerID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// taskDoc stores the deadline as midnight UTC and label ids as plain strings
type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Priority    string             `bson:"priority"`
	Deadline    time.Time          `bson:"deadline"`
	Status      string             `bson:"status"`
	LabelIDs    []string           `bson:"label_ids"`
	OwnerID     primitive.ObjectID `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *taskDoc) model() *models.Task {
	labels := d.LabelIDs
	if labels == nil {
		labels = []string{}
	}
	return &models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    models.Priority(d.Priority),
		Deadline:    models.DateOf(d.Deadline.UTC()),
		Status:      models.Status(d.Status),
		LabelIDs:    labels,
		OwnerID:     d.OwnerID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// objectID parses a hex id; ok is false for anything that is not an ObjectID
func objectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
