// Package history persists attempt records on the local device. It holds
// no business logic: append, list, delete, clear.
package history

import (
	"context"
	"time"

	"github.com/Phyquie/textquiz/internal/scoring"
)

// Record is a persisted attempt result.
type Record struct {
	// ID uniquely identifies the record. Assigned on append when empty.
	ID string `json:"id"`

	// Timestamp is when the attempt was submitted. Assigned on append
	// when zero. Display order is by this field, descending, recomputed
	// at read time.
	Timestamp time.Time `json:"timestamp"`

	TotalQuestions   int  `json:"totalQuestions"`
	CorrectCount     int  `json:"correctCount"`
	ScorePercent     int  `json:"scorePercent"`
	TimeTakenSeconds int  `json:"timeTakenSeconds"`
	AutoSubmitted    bool `json:"autoSubmitted"`

	// Details is parallel to the attempt's question set. May be empty on
	// records written by older versions.
	Details []scoring.DetailedResult `json:"detailedResults,omitempty"`
}

// Repo is the attempt history store.
//
// Implementations assign a process-unique ID and a timestamp on Append
// when the caller did not supply them. Delete of an unknown ID is a
// no-op, not an error.
type Repo interface {
	Append(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
