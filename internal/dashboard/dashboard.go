package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/ailearn/internal/quiz"
)

// ErrHistoryUnavailable is returned by Submit when the stored history could
// not be loaded. Saving in that state would overwrite the stored value.
var ErrHistoryUnavailable = errors.New("quiz history could not be loaded; not saving")

// HistoryStore persists the quiz history.
type HistoryStore interface {
	Load(ctx context.Context) ([]quiz.Record, error)
	Append(ctx context.Context, records []quiz.Record, rec quiz.Record) ([]quiz.Record, error)
}

// Dashboard owns the quiz session and the in-memory copy of the history.
type Dashboard struct {
	store   HistoryStore
	session *quiz.Session
	history []quiz.Record
	loaded  bool
	loadErr error
	now     func() time.Time
}

// New creates a Dashboard over store. Call Load before use.
func New(store HistoryStore) *Dashboard {
	return &Dashboard{
		store:   store,
		session: quiz.NewSession(),
		history: []quiz.Record{},
		now:     time.Now,
	}
}

// SetClock overrides the clock used to date records.
func (d *Dashboard) SetClock(now func() time.Time) {
	d.now = now
}

// Load reads the stored history once. On failure the history stays empty
// and submissions are refused until a later Load succeeds.
func (d *Dashboard) Load(ctx context.Context) error {
	records, err := d.store.Load(ctx)
	d.Apply(records, err)
	return err
}

// Apply installs the result of a history read performed elsewhere, such as
// in a background command. A non-nil err is handled as in Load.
func (d *Dashboard) Apply(records []quiz.Record, err error) {
	d.loaded = true
	if err != nil {
		d.loadErr = err
		d.history = []quiz.Record{}
		return
	}
	if records == nil {
		records = []quiz.Record{}
	}
	d.loadErr = nil
	d.history = records
}

// Store returns the history store backing the dashboard.
func (d *Dashboard) Store() HistoryStore {
	return d.store
}

// Loaded reports whether a history read has completed, successfully or not.
func (d *Dashboard) Loaded() bool {
	return d.loaded
}

// LoadErr returns the error from the last Load, if any.
func (d *Dashboard) LoadErr() error {
	return d.loadErr
}

// History returns the records in insertion order.
func (d *Dashboard) History() []quiz.Record {
	return d.history
}

// Summary aggregates the current history.
func (d *Dashboard) Summary() Summary {
	return Summarize(d.history)
}

// Session exposes the quiz session for rendering and answering.
func (d *Dashboard) Session() *quiz.Session {
	return d.session
}

// Start generates a quiz for subject, replacing any quiz in progress.
func (d *Dashboard) Start(subject string) quiz.Quiz {
	return d.session.Start(subject)
}

// Submit finishes the active quiz, appends its record and persists the
// whole list. It refuses until history has been read, since the empty
// in-memory list would replace the stored one. When persisting fails the
// record is still kept in memory.
func (d *Dashboard) Submit(ctx context.Context) (quiz.Record, error) {
	if !d.loaded {
		return quiz.Record{}, fmt.Errorf("%w: history not read yet", ErrHistoryUnavailable)
	}
	if d.loadErr != nil {
		return quiz.Record{}, fmt.Errorf("%w: %v", ErrHistoryUnavailable, d.loadErr)
	}

	rec, err := d.session.Submit(d.now())
	if err != nil {
		return quiz.Record{}, err
	}

	next, err := d.store.Append(ctx, d.history, rec)
	if err != nil {
		kept := make([]quiz.Record, len(d.history), len(d.history)+1)
		copy(kept, d.history)
		d.history = append(kept, rec)
		return rec, fmt.Errorf("persist quiz record: %w", err)
	}
	d.history = next
	return rec, nil
}
