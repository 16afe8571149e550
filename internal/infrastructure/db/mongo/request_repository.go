package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

const requestsCollection = "flight_requests"

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

// Insert stores a new pending request document.
func (r *RequestRepository) Insert(ctx context.Context, req *domain.FlightRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert request: %w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.FlightRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.FlightRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w: %v", domain.ErrUnavailable, err)
	}
	return &req, nil
}

// ListByOwner returns the requests created by one client identity,
// most-recently-created first.
func (r *RequestRepository) ListByOwner(ctx context.Context, organization, username string) ([]*domain.FlightRequest, error) {
	return r.list(ctx, bson.M{"organization": organization, "username": username})
}

// ListAll returns every request across organizations, most-recently-created first.
func (r *RequestRepository) ListAll(ctx context.Context) ([]*domain.FlightRequest, error) {
	return r.list(ctx, bson.M{})
}

func (r *RequestRepository) list(ctx context.Context, filter bson.M) ([]*domain.FlightRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w: %v", domain.ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	requests := make([]*domain.FlightRequest, 0)
	for cur.Next(ctx) {
		var req domain.FlightRequest
		if err := cur.Decode(&req); err != nil {
			return nil, fmt.Errorf("decode request: %w: %v", domain.ErrUnavailable, err)
		}
		requests = append(requests, &req)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w: %v", domain.ErrUnavailable, err)
	}
	return requests, nil
}

// ApplyDecision performs the pending -> terminal transition as a single
// compare-and-set: the filter matches only while status is still pending, so
// concurrent decisions on the same id serialize in Mongo and exactly one
// write lands. A miss is disambiguated into not-found vs already-decided by
// a follow-up read.
func (r *RequestRepository) ApplyDecision(ctx context.Context, id string, d domain.Decision) (*domain.FlightRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.StatusPending}
	update := bson.M{"$set": bson.M{
		"status":    d.Status,
		"feedback":  d.Feedback,
		"decidedBy": d.DecidedBy,
		"decidedAt": d.DecidedAt.UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.FlightRequest
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("apply decision: %w: %v", domain.ErrUnavailable, err)
	}

	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrAlreadyDecided
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organization", Value: 1}, {Key: "username", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
