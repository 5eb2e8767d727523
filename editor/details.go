package editor

import (
	"github.com/meikuraledutech/planflow"
)

// The sibling form fields of the task detail view share the same
// debounced write-back as the graph: each setter reschedules the
// window, so a burst of keystrokes coalesces into one push.

func (s *Session) setField(apply func(*planflow.TaskDetails)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	apply(&s.details)
	s.touch()
	return nil
}

// SetResources replaces the free-form resources field.
func (s *Session) SetResources(v string) error {
	return s.setField(func(d *planflow.TaskDetails) { d.Resources = v })
}

// SetResponsible replaces the task-level responsible field.
func (s *Session) SetResponsible(v string) error {
	return s.setField(func(d *planflow.TaskDetails) { d.Responsible = v })
}

// SetNotes replaces the task-level notes field.
func (s *Session) SetNotes(v string) error {
	return s.setField(func(d *planflow.TaskDetails) { d.Notes = v })
}

// SetDueDate replaces the task-level due date.
func (s *Session) SetDueDate(v string) error {
	return s.setField(func(d *planflow.TaskDetails) { d.DueDate = v })
}

// SetNumericalTarget replaces the numerical target; nil clears it.
func (s *Session) SetNumericalTarget(t *planflow.NumericalTarget) error {
	return s.setField(func(d *planflow.TaskDetails) {
		if t == nil {
			d.NumericalTarget = nil
			return
		}
		c := *t
		d.NumericalTarget = &c
	})
}

// SetResourceMatrix replaces the resource matrix; nil clears it.
func (s *Session) SetResourceMatrix(m *planflow.Matrix) error {
	return s.setField(func(d *planflow.TaskDetails) { d.ResourceMatrix = m.Clone() })
}

// SetDecisions replaces the decision log wholesale, the way the
// decision dialog saves it.
func (s *Session) SetDecisions(decisions []planflow.Decision) error {
	return s.setField(func(d *planflow.TaskDetails) {
		d.Decisions = append([]planflow.Decision(nil), decisions...)
	})
}

// SetCanvas resizes the sub-step canvas for this task. Future drag
// commits clamp against the new bounds; existing positions are left
// where they are.
func (s *Session) SetCanvas(cv planflow.Canvas) error {
	return s.setField(func(d *planflow.TaskDetails) {
		c := cv
		d.Canvas = &c
		s.geom = s.geom.WithCanvas(&c)
	})
}
