package editor

import (
	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/geometry"
)

// AddSubStep appends a new sub-step with a fresh ID, the next free grid
// slot as its position, and no action items.
func (s *Session) AddSubStep(text string) (planflow.SubStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return planflow.SubStep{}, planflow.ErrNotEditable
	}
	pos := s.geom.GridSlot(len(s.details.SubSteps))
	step := planflow.SubStep{
		ID:       s.genID("substep"),
		Text:     text,
		Position: &pos,
	}
	s.details.SubSteps = append(s.details.SubSteps.Clone(), step)
	s.touch()
	return step.Clone(), nil
}

// RemoveSubStep deletes a sub-step after confirmation, cascading away
// every edge that references it. Reports whether the removal happened
// (false when the prompt was declined). A removed selection is cleared.
func (s *Session) RemoveSubStep(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return false, planflow.ErrNotEditable
	}
	if _, ok := s.details.SubSteps.Find(id); !ok {
		return false, planflow.ErrSubStepNotFound
	}
	if !s.confirm("Delete this sub-step?") {
		return false, nil
	}
	s.details.SubSteps = s.details.SubSteps.WithoutNode(id)
	if s.selected == id {
		s.selected = ""
	}
	s.touch()
	return true, nil
}

// UpdateSubStep applies update to one sub-step. The ID is preserved and
// self-references are stripped from the adjacency set afterwards, so an
// updater cannot break the graph invariants.
func (s *Session) UpdateSubStep(id string, update func(*planflow.SubStep)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSubStepLocked(id, update)
}

func (s *Session) updateSubStepLocked(id string, update func(*planflow.SubStep)) error {
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	found := false
	s.details.SubSteps = s.details.SubSteps.WithNode(id, func(step planflow.SubStep) planflow.SubStep {
		found = true
		update(&step)
		step.ID = id
		if step.HasNext(id) {
			next := step.NextSubStepIDs[:0:0]
			for _, nid := range step.NextSubStepIDs {
				if nid != id {
					next = append(next, nid)
				}
			}
			step.NextSubStepIDs = next
		}
		return step
	})
	if !found {
		return planflow.ErrSubStepNotFound
	}
	s.touch()
	return nil
}

// MoveSubStep places a sub-step at the given position, clamped to the
// canvas bounds.
func (s *Session) MoveSubStep(id string, p planflow.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.geom.Clamp(p)
	return s.updateSubStepLocked(id, func(step *planflow.SubStep) {
		step.Position = &pos
	})
}

// Connect adds a directed edge between two existing sub-steps. Unlike
// the gesture path, which treats a self-release as cancellation, an
// explicit self-loop request is a validation error.
func (s *Session) Connect(sourceID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	if sourceID == targetID {
		return planflow.ErrSelfLoop
	}
	if _, ok := s.details.SubSteps.Find(sourceID); !ok {
		return planflow.ErrSubStepNotFound
	}
	if _, ok := s.details.SubSteps.Find(targetID); !ok {
		return planflow.ErrSubStepNotFound
	}
	s.details.SubSteps = s.details.SubSteps.WithEdge(sourceID, targetID)
	s.touch()
	return nil
}

// Disconnect removes an edge. This is a direct action with no
// confirmation step, unlike sub-step removal.
func (s *Session) Disconnect(sourceID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	s.details.SubSteps = s.details.SubSteps.WithoutEdge(sourceID, targetID)
	s.touch()
	return nil
}

// AutoLayout reflows all sub-steps onto the deterministic grid,
// overwriting every position.
func (s *Session) AutoLayout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	s.details.SubSteps = geometry.AutoLayout(s.details.SubSteps, s.geom)
	s.touch()
	return nil
}

// AddActionItem appends a new, uncompleted action item to a sub-step.
func (s *Session) AddActionItem(subStepID, text string) (planflow.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := planflow.ActionItem{ID: s.genID("action"), Text: text}
	err := s.updateSubStepLocked(subStepID, func(step *planflow.SubStep) {
		step.ActionItems = append(step.ActionItems, item)
	})
	if err != nil {
		return planflow.ActionItem{}, err
	}
	return item, nil
}

// RemoveActionItem deletes an action item after confirmation. Reports
// whether the removal happened.
func (s *Session) RemoveActionItem(subStepID, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return false, planflow.ErrNotEditable
	}
	step, ok := s.details.SubSteps.Find(subStepID)
	if !ok {
		return false, planflow.ErrSubStepNotFound
	}
	idx := -1
	for i, ai := range step.ActionItems {
		if ai.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, planflow.ErrActionItemNotFound
	}
	if !s.confirm("Delete this action item?") {
		return false, nil
	}
	err := s.updateSubStepLocked(subStepID, func(step *planflow.SubStep) {
		step.ActionItems = append(step.ActionItems[:idx:idx], step.ActionItems[idx+1:]...)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateActionItem applies update to one action item; the ID is
// preserved.
func (s *Session) UpdateActionItem(subStepID, itemID string, update func(*planflow.ActionItem)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateActionItemLocked(subStepID, itemID, update)
}

func (s *Session) updateActionItemLocked(subStepID, itemID string, update func(*planflow.ActionItem)) error {
	if s.readOnly {
		return planflow.ErrNotEditable
	}
	step, ok := s.details.SubSteps.Find(subStepID)
	if !ok {
		return planflow.ErrSubStepNotFound
	}
	idx := -1
	for i, ai := range step.ActionItems {
		if ai.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return planflow.ErrActionItemNotFound
	}
	return s.updateSubStepLocked(subStepID, func(step *planflow.SubStep) {
		update(&step.ActionItems[idx])
		step.ActionItems[idx].ID = itemID
	})
}

// SetActionItemCompleted toggles completion and stamps or clears the
// completion date alongside it.
func (s *Session) SetActionItemCompleted(subStepID, itemID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateActionItemLocked(subStepID, itemID, func(ai *planflow.ActionItem) {
		ai.Completed = completed
		if completed {
			ai.CompletedDate = s.now().Format("2006-01-02")
		} else {
			ai.CompletedDate = ""
		}
	})
}

// SetActionItemReport attaches an execution report to an action item.
func (s *Session) SetActionItemReport(subStepID, itemID string, report *planflow.ActionItemReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateActionItemLocked(subStepID, itemID, func(ai *planflow.ActionItem) {
		ai.Report = report
	})
}
