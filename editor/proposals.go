package editor

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/geometry"
)

// SubStepProposal is an externally generated sub-step candidate. Ref is
// a provisional key used only while a batch is being applied; the real
// ID is assigned at acceptance and the ref never persists.
type SubStepProposal struct {
	Ref         string `json:"ref,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ActionItemProposal targets either an existing sub-step by ID or a
// sub-step proposal in the same batch by its ref.
type ActionItemProposal struct {
	TargetRef string `json:"targetRef"`
	Title     string `json:"title"`
}

// ProposalSet is one batch of generated additions.
type ProposalSet struct {
	SubSteps    []SubStepProposal    `json:"subSteps"`
	ActionItems []ActionItemProposal `json:"actionItems,omitempty"`
}

// ProposalSource generates proposals for a task. The generation logic
// is external; the editor only consumes the result shape. Calls may
// fail and are safely retryable.
type ProposalSource interface {
	Propose(ctx context.Context, taskTitle, taskDescription string) (ProposalSet, error)
}

// ApplyProposals accepts a batch: all sub-steps are created first, with
// fresh IDs and positions continuing the existing grid sequence, and a
// ref-to-ID map is built. Action items are then resolved through that
// map (falling back to existing sub-step IDs), so ordering between
// proposals never matters. An unresolvable target rejects the whole
// batch. Returns the new collection and the created sub-steps.
func ApplyProposals(steps planflow.SubSteps, set ProposalSet, gen GenerateID, cfg geometry.Config) (planflow.SubSteps, []planflow.SubStep, error) {
	out := steps.Clone()

	// Create sub-steps and record ref → final ID.
	refs := make(map[string]string)
	createdIDs := make([]string, 0, len(set.SubSteps))
	for i, p := range set.SubSteps {
		pos := cfg.GridSlot(len(steps) + i)
		step := planflow.SubStep{
			ID:       gen("substep"),
			Text:     p.Title,
			Notes:    p.Description,
			Position: &pos,
		}
		if p.Ref != "" {
			refs[p.Ref] = step.ID
		}
		out = append(out, step)
		createdIDs = append(createdIDs, step.ID)
	}

	// Distribute action items onto their resolved targets.
	for _, p := range set.ActionItems {
		targetID := p.TargetRef
		if id, ok := refs[p.TargetRef]; ok {
			targetID = id
		} else if _, ok := out.Find(p.TargetRef); !ok {
			return nil, nil, fmt.Errorf("planflow: action item target %q: %w", p.TargetRef, planflow.ErrUnknownProposalRef)
		}
		item := planflow.ActionItem{ID: gen("action"), Text: p.Title}
		out = out.WithNode(targetID, func(step planflow.SubStep) planflow.SubStep {
			step.ActionItems = append(step.ActionItems, item)
			return step
		})
	}

	created := make([]planflow.SubStep, 0, len(createdIDs))
	for _, id := range createdIDs {
		step, _ := out.Find(id)
		created = append(created, step)
	}
	return out, created, nil
}

// AcceptProposals applies a batch to the session's collection.
func (s *Session) AcceptProposals(set ProposalSet) ([]planflow.SubStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return nil, planflow.ErrNotEditable
	}
	out, created, err := ApplyProposals(s.details.SubSteps, set, s.genID, s.geom)
	if err != nil {
		return nil, err
	}
	s.details.SubSteps = out
	s.touch()
	return created, nil
}
