package planflow

// Clone returns a deep copy of the sub-step, including its owned
// action items and attachments.
func (s SubStep) Clone() SubStep {
	c := s
	if s.Position != nil {
		p := *s.Position
		c.Position = &p
	}
	if s.NextSubStepIDs != nil {
		c.NextSubStepIDs = append([]string(nil), s.NextSubStepIDs...)
	}
	if s.ActionItems != nil {
		c.ActionItems = make([]ActionItem, len(s.ActionItems))
		for i, ai := range s.ActionItems {
			c.ActionItems[i] = ai.Clone()
		}
	}
	if s.Attachments != nil {
		c.Attachments = append([]Attachment(nil), s.Attachments...)
	}
	return c
}

// Clone returns a deep copy of the action item.
func (ai ActionItem) Clone() ActionItem {
	c := ai
	if ai.Report != nil {
		r := ActionItemReport{Notes: ai.Report.Notes}
		if ai.Report.Attachments != nil {
			r.Attachments = append([]Attachment(nil), ai.Report.Attachments...)
		}
		if ai.Report.MatrixData != nil {
			r.MatrixData = ai.Report.MatrixData.Clone()
		}
		c.Report = &r
	}
	return c
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	c := &Matrix{}
	if m.Headers != nil {
		c.Headers = append([]string(nil), m.Headers...)
	}
	if m.Rows != nil {
		c.Rows = make([][]string, len(m.Rows))
		for i, row := range m.Rows {
			c.Rows[i] = append([]string(nil), row...)
		}
	}
	return c
}

// Clone returns a deep copy of the collection.
func (ss SubSteps) Clone() SubSteps {
	if ss == nil {
		return nil
	}
	out := make(SubSteps, len(ss))
	for i, s := range ss {
		out[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the whole details snapshot.
func (d TaskDetails) Clone() TaskDetails {
	c := d
	c.SubSteps = d.SubSteps.Clone()
	if d.NumericalTarget != nil {
		t := *d.NumericalTarget
		c.NumericalTarget = &t
	}
	c.ResourceMatrix = d.ResourceMatrix.Clone()
	if d.Attachments != nil {
		c.Attachments = append([]Attachment(nil), d.Attachments...)
	}
	if d.Decisions != nil {
		c.Decisions = append([]Decision(nil), d.Decisions...)
	}
	if d.Canvas != nil {
		cv := *d.Canvas
		c.Canvas = &cv
	}
	return c
}
