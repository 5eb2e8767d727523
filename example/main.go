package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/editor"
)

func main() {
	// Open an editing session over a fresh task. The update callback is
	// where a host would persist the snapshot (see the server command
	// for the postgres wiring); here it just reports what would be
	// written.
	onUpdate := func(taskID string, d planflow.TaskDetails) {
		completed, total := d.ActionItemProgress()
		fmt.Printf("\nwrite-back for %s: %d sub-steps, %d/%d actions done\n",
			taskID, len(d.SubSteps), completed, total)
	}

	s := editor.NewSession("task-onboarding", planflow.TaskDetails{}, onUpdate, editor.Options{})
	defer s.Close()

	// ── Build a small flow by hand ────────────────────────────────────
	design, err := s.AddSubStep("Design the onboarding form")
	if err != nil {
		log.Fatalf("add: %v", err)
	}
	build, err := s.AddSubStep("Build the form")
	if err != nil {
		log.Fatalf("add: %v", err)
	}
	launch, err := s.AddSubStep("Launch to pilot users")
	if err != nil {
		log.Fatalf("add: %v", err)
	}

	if err := s.Connect(design.ID, build.ID); err != nil {
		log.Fatalf("connect: %v", err)
	}
	if err := s.Connect(build.ID, launch.ID); err != nil {
		log.Fatalf("connect: %v", err)
	}

	// ── Drag the launch card with a pointer gesture ───────────────────
	s.StartDrag(launch.ID, planflow.Point{X: 700, Y: 120})
	s.MovePointer(planflow.Point{X: 900, Y: 400})
	s.Release(planflow.Point{X: 900, Y: 400})

	// ── Connect by gesture: press the handle, release on a card ───────
	s.StartConnection(design.ID, planflow.Point{X: 250, Y: 125})
	s.MovePointer(planflow.Point{X: 650, Y: 400})
	s.ReleaseOnSubStep(launch.ID)

	fmt.Println("connectors after gestures:")
	printJSON(s.Connectors())

	// ── Accept a generated proposal batch ─────────────────────────────
	created, err := s.AcceptProposals(editor.ProposalSet{
		SubSteps: []editor.SubStepProposal{
			{Ref: "p1", Title: "Collect pilot feedback", Description: "Survey the first cohort"},
		},
		ActionItems: []editor.ActionItemProposal{
			{TargetRef: "p1", Title: "Draft the survey questions"},
			{TargetRef: build.ID, Title: "Write form validation tests"},
		},
	})
	if err != nil {
		log.Fatalf("proposals: %v", err)
	}
	fmt.Printf("\naccepted %d proposed sub-steps\n", len(created))

	// ── Tick off an action item ───────────────────────────────────────
	feedback := created[0]
	if err := s.SetActionItemCompleted(feedback.ID, feedback.ActionItems[0].ID, true); err != nil {
		log.Fatalf("complete: %v", err)
	}

	// ── Reflow everything onto the grid ───────────────────────────────
	if err := s.AutoLayout(); err != nil {
		log.Fatalf("layout: %v", err)
	}

	fmt.Println("\nfinal details:")
	printJSON(s.Details())
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
