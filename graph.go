package planflow

// SubSteps is the ordered sub-step collection of one task.
//
// All operations are pure: they leave the receiver untouched and return
// a new collection, so callers can treat any held slice as immutable.
type SubSteps []SubStep

// Find returns the sub-step with the given ID.
func (ss SubSteps) Find(id string) (SubStep, bool) {
	for _, s := range ss {
		if s.ID == id {
			return s, true
		}
	}
	return SubStep{}, false
}

// WithNode returns a copy of the collection with the matched sub-step
// replaced by update's result. An unmatched ID returns the collection
// unchanged.
func (ss SubSteps) WithNode(id string, update func(SubStep) SubStep) SubSteps {
	for i, s := range ss {
		if s.ID != id {
			continue
		}
		out := make(SubSteps, len(ss))
		copy(out, ss)
		out[i] = update(s.Clone())
		return out
	}
	return ss
}

// WithoutNode removes the sub-step and, in the same step, drops every
// remaining sub-step's adjacency reference to it. No dangling edge is
// ever observable.
func (ss SubSteps) WithoutNode(id string) SubSteps {
	out := make(SubSteps, 0, len(ss))
	for _, s := range ss {
		if s.ID == id {
			continue
		}
		if s.HasNext(id) {
			c := s.Clone()
			next := make([]string, 0, len(c.NextSubStepIDs)-1)
			for _, nid := range c.NextSubStepIDs {
				if nid != id {
					next = append(next, nid)
				}
			}
			if len(next) == 0 {
				next = nil
			}
			c.NextSubStepIDs = next
			s = c
		}
		out = append(out, s)
	}
	return out
}

// WithEdge adds targetID to the source's adjacency set. Self-loops and
// already-present edges are no-ops, as is an unknown source.
func (ss SubSteps) WithEdge(sourceID, targetID string) SubSteps {
	if sourceID == targetID {
		return ss
	}
	return ss.WithNode(sourceID, func(s SubStep) SubStep {
		if s.HasNext(targetID) {
			return s
		}
		s.NextSubStepIDs = append(s.NextSubStepIDs, targetID)
		return s
	})
}

// WithoutEdge removes targetID from the source's adjacency set if
// present, and is a no-op otherwise.
func (ss SubSteps) WithoutEdge(sourceID, targetID string) SubSteps {
	return ss.WithNode(sourceID, func(s SubStep) SubStep {
		if !s.HasNext(targetID) {
			return s
		}
		next := make([]string, 0, len(s.NextSubStepIDs)-1)
		for _, nid := range s.NextSubStepIDs {
			if nid != targetID {
				next = append(next, nid)
			}
		}
		if len(next) == 0 {
			next = nil
		}
		s.NextSubStepIDs = next
		return s
	})
}
