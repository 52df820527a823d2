package store

import (
	"context"
	"time"
)

// KVRepo is string-valued durable key-value storage. It holds the progress
// record and the answers individual activities remember.
type KVRepo interface {
	// Get returns the value for name and whether it was present.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set stores value under name, replacing any previous value.
	Set(ctx context.Context, name, value string) error

	// Delete removes every listed name. Missing names are not an error.
	Delete(ctx context.Context, names ...string) error
}

// Event kinds recorded in the story log.
const (
	EventStart      = "start"
	EventNavigate   = "navigate"
	EventLoadFailed = "load_failed"
	EventOutcome    = "outcome"
	EventComplete   = "complete"
	EventReset      = "reset"
)

// EventData is one entry to append to the story log.
type EventData struct {
	SessionID string
	Kind      string
	Slide     int
	Status    string
	Message   string
}

// EventRecord is a stored event with its global ordering.
type EventRecord struct {
	Sequence  int64
	Timestamp time.Time
	EventData
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	SessionID string // only this session ("" = all)
	Kind      string // only this kind ("" = all)
	After     int64  // sequence > After
	Limit     int    // max results (0 = unlimited)
}

// EventRepo provides append and query access to the story log.
type EventRepo interface {
	// AppendEvent records an event with the next global sequence number.
	AppendEvent(ctx context.Context, data EventData) error

	// QueryEvents returns events in sequence order.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error)
}
