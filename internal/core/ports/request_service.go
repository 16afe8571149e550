package ports

import (
	"context"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
)

// SubmitInput carries the four client-supplied fields of a new request.
// Organization and username are never taken from the payload; they are
// stamped from the authenticated identity.
type SubmitInput struct {
	Date        string
	Time        string
	Area        string
	Description string
}

// DecideInput carries an admin decision on a pending request.
type DecideInput struct {
	Status   domain.RequestStatus
	Feedback string
}

// RequestService defines the use-case operations of the workflow engine.
type RequestService interface {
	Submit(ctx context.Context, identity domain.Identity, in SubmitInput) (*domain.FlightRequest, error)
	ListForClient(ctx context.Context, identity domain.Identity) ([]*domain.FlightRequest, error)
	ListForAdmin(ctx context.Context, identity domain.Identity) ([]*domain.FlightRequest, error)
	Decide(ctx context.Context, identity domain.Identity, requestID string, in DecideInput) (*domain.FlightRequest, error)
}
