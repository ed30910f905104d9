// Package audit persists a record of every structurization run: what was
// fed in, how many helper constructs came out, and whether it succeeded.
// Records are written by the HTTP API's POST /structurize handler and read
// back to answer GET /runs/{id}.
package audit

import (
	"context"
	"time"

	"github.com/ardenhollis/structurize/pkg/structurize"
)

// Record is one completed (or failed) structurization run.
type Record struct {
	ID         string             `json:"id" bson:"id"`
	InputHash  string             `json:"input_hash" bson:"input_hash"`
	StartedAt  time.Time          `json:"started_at" bson:"started_at"`
	Duration   time.Duration      `json:"duration" bson:"duration"`
	Success    bool               `json:"success" bson:"success"`
	Error      string             `json:"error,omitempty" bson:"error,omitempty"`
	Stats      structurize.Stats  `json:"stats" bson:"stats"`
	Diagnostics []string          `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}

// Store is the persistence backend interface.
type Store interface {
	Put(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]*Record, error)
}
