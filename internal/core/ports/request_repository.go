package ports

import (
	"context"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// RequestRepository defines persistence operations for flight requests.
type RequestRepository interface {
	Insert(ctx context.Context, r *domain.FlightRequest) error
	FindByID(ctx context.Context, id string) (*domain.FlightRequest, error)
	// ListByOwner returns the requests created by one client identity,
	// most-recently-created first.
	ListByOwner(ctx context.Context, organization, username string) ([]*domain.FlightRequest, error)
	// ListAll returns every request across organizations, most-recently-created first.
	ListAll(ctx context.Context) ([]*domain.FlightRequest, error)
	// ApplyDecision writes the decision if and only if the request is still
	// pending, as a single atomic compare-and-set on that request. Returns
	// the updated request, domain.ErrRequestNotFound for an unknown id, or
	// domain.ErrAlreadyDecided when the request is in a terminal state.
	ApplyDecision(ctx context.Context, id string, d domain.Decision) (*domain.FlightRequest, error)
}

// AuditRepository persists lifecycle events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.RequestEvent) error
}
