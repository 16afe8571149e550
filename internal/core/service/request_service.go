package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// AuditSink receives lifecycle events for asynchronous persistence. Record
// must not block the caller; a lost audit event never fails the operation
// that produced it.
type AuditSink interface {
	Record(event domain.RequestEvent)
}

// RequestService implements the flight-request workflow: submission by
// clients, role-scoped listing, and the single admin decision.
type RequestService struct {
	repo  ports.RequestRepository
	audit AuditSink
	log   zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, audit AuditSink, log zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, audit: audit, log: log}
}

// Submit creates a new pending request owned by the authenticated client.
// Organization and username come from the identity, never from the payload.
func (s *RequestService) Submit(ctx context.Context, identity domain.Identity, in ports.SubmitInput) (*domain.FlightRequest, error) {
	if identity.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	area := strings.TrimSpace(in.Area)
	description := strings.TrimSpace(in.Description)

	if date == "" || clock == "" || area == "" || description == "" {
		return nil, fmt.Errorf("%w: date, time, area and description are required", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be a valid YYYY-MM-DD value", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(timeLayout, clock); err != nil {
		return nil, fmt.Errorf("%w: time must be a valid HH:MM value", domain.ErrInvalidInput)
	}

	request := &domain.FlightRequest{
		ID:           uuid.NewString(),
		Organization: identity.Organization,
		Username:     identity.Username,
		Date:         date,
		Time:         clock,
		Area:         area,
		Description:  description,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, request); err != nil {
		s.log.Error().Err(err).Str("username", identity.Username).Msg("failed to insert request")
		return nil, err
	}

	s.audit.Record(domain.RequestEvent{
		RequestID:    request.ID,
		Type:         domain.EventSubmitted,
		Actor:        identity.Username,
		Organization: identity.Organization,
		Timestamp:    request.CreatedAt,
	})

	s.log.Info().
		Str("request_id", request.ID).
		Str("username", identity.Username).
		Str("organization", identity.Organization).
		Msg("request submitted")

	return request, nil
}

// ListForClient returns the requests owned by the identity's
// (organization, username) pair, most-recently-created first.
func (s *RequestService) ListForClient(ctx context.Context, identity domain.Identity) ([]*domain.FlightRequest, error) {
	if identity.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByOwner(ctx, identity.Organization, identity.Username)
}

// ListForAdmin returns all requests regardless of organization,
// most-recently-created first.
func (s *RequestService) ListForAdmin(ctx context.Context, identity domain.Identity) ([]*domain.FlightRequest, error) {
	if identity.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// Decide applies an accept or decline decision to a pending request. The
// status check and the write are one atomic unit in the repository, so of
// any number of racing decisions exactly one wins and the rest observe
// ErrAlreadyDecided.
func (s *RequestService) Decide(ctx context.Context, identity domain.Identity, requestID string, in ports.DecideInput) (*domain.FlightRequest, error) {
	if identity.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !in.Status.IsDecision() {
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrInvalidInput, domain.StatusAccepted, domain.StatusDeclined)
	}

	feedback := strings.TrimSpace(in.Feedback)
	switch in.Status {
	case domain.StatusDeclined:
		if feedback == "" {
			return nil, domain.ErrFeedbackRequired
		}
	case domain.StatusAccepted:
		if feedback == "" {
			feedback = domain.DefaultAcceptanceFeedback
		}
	}

	updated, err := s.repo.ApplyDecision(ctx, requestID, domain.Decision{
		Status:    in.Status,
		Feedback:  feedback,
		DecidedBy: identity.UserID,
		DecidedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	eventType := domain.EventAccepted
	if in.Status == domain.StatusDeclined {
		eventType = domain.EventDeclined
	}
	s.audit.Record(domain.RequestEvent{
		RequestID: updated.ID,
		Type:      eventType,
		Actor:     identity.Username,
		Feedback:  feedback,
		Timestamp: *updated.DecidedAt,
	})

	s.log.Info().
		Str("request_id", updated.ID).
		Str("status", string(updated.Status)).
		Str("decided_by", identity.Username).
		Msg("request decided")

	return updated, nil
}
