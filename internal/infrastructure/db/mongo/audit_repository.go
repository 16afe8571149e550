package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

const eventsCollection = "request_events"

// AuditRepository persists lifecycle events to the request_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(eventsCollection)}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.RequestEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"request_id":   event.RequestID,
		"type":         string(event.Type),
		"actor":        event.Actor,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Organization != "" {
		doc["organization"] = event.Organization
	}
	if event.Feedback != "" {
		doc["feedback"] = event.Feedback
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
