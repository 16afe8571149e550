package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a flight request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// DefaultAcceptanceFeedback is attached to an accepted request when the
// deciding admin leaves the feedback field empty.
const DefaultAcceptanceFeedback = "Request approved."

var ErrInvalidInput = errors.New("invalid input")
var ErrRequestNotFound = errors.New("request not found")
var ErrAlreadyDecided = errors.New("request already decided")
var ErrFeedbackRequired = errors.New("feedback is required when declining")
var ErrForbidden = errors.New("access forbidden")
var ErrUnavailable = errors.New("storage unavailable")

// Terminal reports whether the status permits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsDecision reports whether the status is a valid decision target.
// The only transitions in the system are pending -> accepted and
// pending -> declined.
func (s RequestStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// FlightRequest is the core aggregate root: one flight-operation request
// submitted by a client and decided at most once by an admin.
//
// The `_id` JSON name preserves the wire contract the web client relies on.
type FlightRequest struct {
	ID           string        `json:"_id" bson:"_id"`
	Organization string        `json:"organization" bson:"organization"`
	Username     string        `json:"username" bson:"username"`
	Date         string        `json:"date" bson:"date"`
	Time         string        `json:"time" bson:"time"`
	Area         string        `json:"area" bson:"area"`
	Description  string        `json:"description" bson:"description"`
	Status       RequestStatus `json:"status" bson:"status"`
	Feedback     string        `json:"feedback,omitempty" bson:"feedback,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	DecidedAt    *time.Time    `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`
	DecidedBy    string        `json:"decidedBy,omitempty" bson:"decidedBy,omitempty"`
}

// Decision carries everything written atomically when a pending request is
// accepted or declined.
type Decision struct {
	Status    RequestStatus
	Feedback  string
	DecidedBy string
	DecidedAt time.Time
}
