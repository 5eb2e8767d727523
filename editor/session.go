// Package editor hosts the interactive sub-step flow editor: an editing
// session over one task's details, with pointer gesture handling,
// mutation operations and debounced write-back to the owning task.
//
// Persisted state (planflow.TaskDetails) and transient interaction
// state (drag/connect gestures, selection) are kept strictly apart:
// only the former ever reaches the update callback.
package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/geometry"
)

// UpdateFunc receives the full details snapshot after edits have been
// quiet for the debounce window. The external store owns durability.
type UpdateFunc func(taskID string, details planflow.TaskDetails)

// GenerateID produces globally unique IDs with a kind prefix. The core
// never constructs IDs itself.
type GenerateID func(prefix string) string

// ConfirmFunc gates destructive operations with a yes/no prompt.
type ConfirmFunc func(prompt string) bool

// DefaultDebounce is the write-back quiet window.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Session. The zero value is usable: collaborators
// default to a UUID-backed ID generator, an always-yes confirmer, the
// reference geometry and the default debounce window.
type Options struct {
	GenerateID        GenerateID
	Confirm           ConfirmFunc
	Geometry          geometry.Config
	Debounce          time.Duration
	ReadOnly          bool
	MaxAttachmentSize int64
	Now               func() time.Time
}

// Session is one open editor over a task's details. All methods are
// safe for concurrent use; in practice a session is driven from a
// single event loop plus the debounce timer goroutine.
type Session struct {
	mu sync.Mutex

	taskID  string
	details planflow.TaskDetails

	geom       geometry.Config
	connectors []geometry.Connector

	genID     GenerateID
	confirm   ConfirmFunc
	now       func() time.Time
	maxAttach int64
	readOnly  bool

	update UpdateFunc
	deb    *debouncer

	selected string

	// Transient gesture state, never serialized.
	state      State
	dragID     string
	dragOffset planflow.Point
	connecting *Connecting
	pointer    planflow.Point
}

// NewSession opens an editing session over the given details. onUpdate
// may be nil for a detached session (no write-back).
func NewSession(taskID string, details planflow.TaskDetails, onUpdate UpdateFunc, opts Options) *Session {
	if opts.GenerateID == nil {
		opts.GenerateID = func(prefix string) string { return prefix + "-" + uuid.NewString() }
	}
	if opts.Confirm == nil {
		opts.Confirm = func(string) bool { return true }
	}
	if opts.Geometry == (geometry.Config{}) {
		opts.Geometry = geometry.DefaultConfig()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxAttachmentSize <= 0 {
		opts.MaxAttachmentSize = DefaultMaxAttachmentSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		taskID:    taskID,
		details:   details.Clone(),
		geom:      opts.Geometry.WithCanvas(details.Canvas),
		genID:     opts.GenerateID,
		confirm:   opts.Confirm,
		now:       opts.Now,
		maxAttach: opts.MaxAttachmentSize,
		readOnly:  opts.ReadOnly,
		update:    onUpdate,
		deb:       newDebouncer(opts.Debounce),
	}
	s.connectors = geometry.Connectors(s.details.SubSteps, s.geom)
	return s
}

// TaskID returns the owning task's ID.
func (s *Session) TaskID() string { return s.taskID }

// ReadOnly reports whether edit-producing operations are disabled.
func (s *Session) ReadOnly() bool { return s.readOnly }

// Details returns a deep copy of the current details snapshot.
func (s *Session) Details() planflow.TaskDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details.Clone()
}

// Connectors returns the edge geometry derived from the current
// collection. It is recomputed after every mutation and drag commit.
func (s *Session) Connectors() []geometry.Connector {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]geometry.Connector, len(s.connectors))
	copy(out, s.connectors)
	return out
}

// Select marks a sub-step as selected. Selection works in read-only
// mode too; it never mutates the model.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.details.SubSteps.Find(id); !ok {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the currently selected sub-step ID, if any.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Close discards any in-flight gesture without mutating the model and
// flushes a pending debounced write so the last edit is not lost.
func (s *Session) Close() {
	s.mu.Lock()
	s.resetGesture()
	s.mu.Unlock()
	if s.deb.Stop() && s.update != nil {
		s.push()
	}
}

// touch recomputes derived geometry and schedules the debounced
// write-back. Callers must hold s.mu.
func (s *Session) touch() {
	s.connectors = geometry.Connectors(s.details.SubSteps, s.geom)
	if s.update != nil {
		s.deb.Schedule(s.push)
	}
}

// push snapshots the details under lock, then invokes the update
// callback without it.
func (s *Session) push() {
	s.mu.Lock()
	snap := s.details.Clone()
	s.mu.Unlock()
	s.update(s.taskID, snap)
}
