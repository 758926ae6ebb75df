// Package history persists the list of completed quiz records in the
// durable key-value store as a single JSON array.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/ailearn/internal/quiz"
	"github.com/abhisek/ailearn/internal/store"
)

// Key is the storage key holding the serialized history.
const Key = "quizHistory"

// ErrCorrupt is returned when the stored history is not a valid JSON array
// of records. The stored value is left untouched.
var ErrCorrupt = errors.New("quiz history is corrupt")

// Repo reads and writes the quiz history.
type Repo struct {
	kv store.KVRepo
}

// NewRepo creates a Repo over the given key-value store.
func NewRepo(kv store.KVRepo) *Repo {
	return &Repo{kv: kv}
}

// Load returns the stored history. A missing key yields an empty list.
func (r *Repo) Load(ctx context.Context) ([]quiz.Record, error) {
	raw, ok, err := r.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return []quiz.Record{}, nil
	}

	var records []quiz.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		// "null" decodes without error.
		records = []quiz.Record{}
	}
	return records, nil
}

// Save replaces the stored history with records.
func (r *Repo) Save(ctx context.Context, records []quiz.Record) error {
	if records == nil {
		records = []quiz.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := r.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Append returns records with rec appended and persists the whole list.
// The input slice is not modified.
func (r *Repo) Append(ctx context.Context, records []quiz.Record, rec quiz.Record) ([]quiz.Record, error) {
	next := make([]quiz.Record, len(records), len(records)+1)
	copy(next, records)
	next = append(next, rec)
	if err := r.Save(ctx, next); err != nil {
		return records, err
	}
	return next, nil
}

// Clear removes the stored history.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
