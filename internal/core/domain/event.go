package domain

import "time"

// RequestEventType identifies a lifecycle transition on a flight request.
type RequestEventType string

const (
	EventSubmitted RequestEventType = "submitted"
	EventAccepted  RequestEventType = "accepted"
	EventDeclined  RequestEventType = "declined"
)

// RequestEvent is the audit-trail record written for every lifecycle
// transition. Events are persisted asynchronously and never block the
// operation that produced them.
type RequestEvent struct {
	RequestID    string
	Type         RequestEventType
	Actor        string
	Organization string
	Feedback     string
	Timestamp    time.Time
}
