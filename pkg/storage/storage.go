// Package storage persists solved layouts.
//
// A [Record] pairs a scene with the [scene.Result] it produced. Records are
// kept in a [Store]:
//   - [MemoryStore]: in-process map for the CLI, tests and single-instance
//     servers
//   - [MongoStore]: MongoDB collection for deployments that share records
//
// # Usage
//
//	store := storage.NewMemoryStore()
//
//	rec := storage.NewRecord("login", s, res)
//	if err := store.Save(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := store.Get(ctx, id)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // unknown id
//	}
package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/scene"
)

// ErrNotFound is returned when a record does not exist. It carries the
// NOT_FOUND code.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "layout not found")

// IsNotFound reports whether err is or wraps [ErrNotFound].
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Record is one saved layout.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Scene     *scene.Scene  `json:"scene" bson:"scene"`
	Result    *scene.Result `json:"result" bson:"result"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh id.
func NewRecord(name string, s *scene.Scene, res *scene.Result) *Record {
	return &Record{
		ID:        uuid.New().String(),
		Name:      name,
		Scene:     s,
		Result:    res,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// clone returns a deep copy of rec.
func (rec *Record) clone() *Record {
	cp := *rec
	cp.Scene = rec.Scene.Clone()
	cp.Result = rec.Result.Clone()
	return &cp
}

// Store is the interface for layout storage backends.
type Store interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by id, or returns ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting an unknown id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases the backend.
	Close(ctx context.Context) error
}

func validRecord(rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record must have an id")
	}
	if rec.Result == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record %s has no result", rec.ID)
	}
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
