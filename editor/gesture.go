package editor

import "github.com/meikuraledutech/planflow"

// State is the exclusive interaction state: a sub-step cannot be
// dragged and connected from at the same time.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateConnecting
)

// Connecting is the transient artifact of an in-flight connection
// gesture. It exists only between StartConnection and the release that
// commits or cancels it, and is never part of the persisted model.
type Connecting struct {
	FromID  string
	FromPos planflow.Point
}

// State returns the current interaction state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartDrag begins a press-and-move gesture on a sub-step's body. The
// pointer offset relative to the card's position is captured so the
// card does not jump to the pointer. Reports whether the gesture began:
// it does not in read-only mode, mid-gesture, or for an unknown ID.
func (s *Session) StartDrag(id string, pointer planflow.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly || s.state != StateIdle {
		return false
	}
	step, ok := s.details.SubSteps.Find(id)
	if !ok {
		return false
	}
	pos := planflow.Point{}
	if step.Position != nil {
		pos = *step.Position
	}
	s.state = StateDragging
	s.dragID = id
	s.dragOffset = planflow.Point{X: pointer.X - pos.X, Y: pointer.Y - pos.Y}
	s.pointer = pointer
	return true
}

// StartConnection begins a connection gesture from a sub-step's handle.
// The pointer position is canvas-relative, scroll already applied by
// the host. Reports whether the gesture began.
func (s *Session) StartConnection(id string, pointer planflow.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly || s.state != StateIdle {
		return false
	}
	if _, ok := s.details.SubSteps.Find(id); !ok {
		return false
	}
	s.state = StateConnecting
	s.connecting = &Connecting{FromID: id, FromPos: pointer}
	s.pointer = pointer
	return true
}

// MovePointer tracks the pointer during a gesture. Outside a gesture it
// is a no-op.
func (s *Session) MovePointer(p planflow.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return
	}
	s.pointer = p
}

// DragPosition returns the unclamped live position of the dragged card
// (pointer minus the captured offset), for rendering during the drag.
func (s *Session) DragPosition() (planflow.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDragging {
		return planflow.Point{}, false
	}
	return planflow.Point{X: s.pointer.X - s.dragOffset.X, Y: s.pointer.Y - s.dragOffset.Y}, true
}

// ConnectingFrom returns the in-flight connection gesture, if any.
func (s *Session) ConnectingFrom() (Connecting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return Connecting{}, false
	}
	return *s.connecting, true
}

// PreviewLine returns the endpoints of the live preview edge drawn
// while connecting: from the press position to the current pointer.
func (s *Session) PreviewLine() (from, to planflow.Point, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnecting {
		return planflow.Point{}, planflow.Point{}, false
	}
	return s.connecting.FromPos, s.pointer, true
}

// Release ends the current gesture over empty canvas. A drag commits
// its final position, clamped to the canvas even when released outside
// it; a connection gesture is cancelled with no mutation.
func (s *Session) Release(p planflow.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateDragging:
		s.pointer = p
		s.commitDrag()
	case StateConnecting:
		s.resetGesture()
	}
}

// ReleaseOnSubStep ends the current gesture over a sub-step's body.
// A connection gesture commits an edge, unless the target is the source
// itself, which cancels. A drag commits as with Release.
func (s *Session) ReleaseOnSubStep(targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateDragging:
		s.commitDrag()
	case StateConnecting:
		fromID := s.connecting.FromID
		s.resetGesture()
		if fromID == targetID {
			return
		}
		if _, ok := s.details.SubSteps.Find(targetID); !ok {
			return
		}
		s.details.SubSteps = s.details.SubSteps.WithEdge(fromID, targetID)
		s.touch()
	}
}

// CancelGesture discards any in-flight gesture without touching the
// model.
func (s *Session) CancelGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetGesture()
}

// commitDrag writes the clamped final position into the model. Callers
// must hold s.mu and be in StateDragging.
func (s *Session) commitDrag() {
	id := s.dragID
	pos := s.geom.Clamp(planflow.Point{X: s.pointer.X - s.dragOffset.X, Y: s.pointer.Y - s.dragOffset.Y})
	s.resetGesture()
	s.details.SubSteps = s.details.SubSteps.WithNode(id, func(step planflow.SubStep) planflow.SubStep {
		p := pos
		step.Position = &p
		return step
	})
	s.touch()
}

// resetGesture clears transient interaction state. Callers must hold s.mu.
func (s *Session) resetGesture() {
	s.state = StateIdle
	s.dragID = ""
	s.dragOffset = planflow.Point{}
	s.connecting = nil
}
