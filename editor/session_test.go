package editor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/editor"
)

func seqGen() editor.GenerateID {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newSession(t *testing.T, details planflow.TaskDetails, opts editor.Options) *editor.Session {
	t.Helper()
	if opts.GenerateID == nil {
		opts.GenerateID = seqGen()
	}
	s := editor.NewSession("task-1", details, nil, opts)
	t.Cleanup(s.Close)
	return s
}

func pt(x, y float64) *planflow.Point {
	return &planflow.Point{X: x, Y: y}
}

func twoSteps() planflow.TaskDetails {
	return planflow.TaskDetails{
		SubSteps: planflow.SubSteps{
			{ID: "a", Text: "Design", Position: pt(100, 100)},
			{ID: "b", Text: "Build", Position: pt(500, 100)},
		},
	}
}

func position(t *testing.T, s *editor.Session, id string) planflow.Point {
	t.Helper()
	step, ok := s.Details().SubSteps.Find(id)
	require.True(t, ok)
	require.NotNil(t, step.Position)
	return *step.Position
}

func TestDragCommitsOnRelease(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	// Press at (110,120): offset (10,20) from the card at (100,100).
	require.True(t, s.StartDrag("a", planflow.Point{X: 110, Y: 120}))
	assert.Equal(t, editor.StateDragging, s.State())

	s.MovePointer(planflow.Point{X: 310, Y: 220})
	live, ok := s.DragPosition()
	require.True(t, ok)
	assert.Equal(t, planflow.Point{X: 300, Y: 200}, live)

	s.Release(planflow.Point{X: 310, Y: 220})
	assert.Equal(t, editor.StateIdle, s.State())
	assert.Equal(t, planflow.Point{X: 300, Y: 200}, position(t, s, "a"))
}

func TestDragOffsetPreventsJumpToPointer(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartDrag("a", planflow.Point{X: 150, Y: 160}))
	s.Release(planflow.Point{X: 150, Y: 160})

	// No movement between press and release: the card stays put.
	assert.Equal(t, planflow.Point{X: 100, Y: 100}, position(t, s, "a"))
}

func TestDragReleaseOutsideCanvasClamps(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartDrag("a", planflow.Point{X: 100, Y: 100}))
	s.Release(planflow.Point{X: 9999, Y: -50})

	// Default canvas 1200x800, card 200x150.
	assert.Equal(t, planflow.Point{X: 1000, Y: 0}, position(t, s, "a"))
}

func TestDragUnknownSubStepDoesNotStart(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})
	assert.False(t, s.StartDrag("nope", planflow.Point{}))
	assert.Equal(t, editor.StateIdle, s.State())
}

func TestConnectGestureCommitsEdge(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartConnection("a", planflow.Point{X: 300, Y: 175}))
	s.MovePointer(planflow.Point{X: 450, Y: 160})

	from, to, ok := s.PreviewLine()
	require.True(t, ok)
	assert.Equal(t, planflow.Point{X: 300, Y: 175}, from)
	assert.Equal(t, planflow.Point{X: 450, Y: 160}, to)

	s.ReleaseOnSubStep("b")
	assert.Equal(t, editor.StateIdle, s.State())

	a, _ := s.Details().SubSteps.Find("a")
	assert.True(t, a.HasNext("b"))
	require.Len(t, s.Connectors(), 1)
}

func TestConnectReleaseOnSourceCancels(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartConnection("a", planflow.Point{}))
	s.ReleaseOnSubStep("a")

	a, _ := s.Details().SubSteps.Find("a")
	assert.Empty(t, a.NextSubStepIDs)
	assert.Equal(t, editor.StateIdle, s.State())
}

func TestConnectReleaseOnCanvasCancels(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartConnection("a", planflow.Point{}))
	s.Release(planflow.Point{X: 999, Y: 999})

	a, _ := s.Details().SubSteps.Find("a")
	assert.Empty(t, a.NextSubStepIDs)
	assert.Empty(t, s.Connectors())
}

func TestGesturesAreExclusive(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{})

	require.True(t, s.StartDrag("a", planflow.Point{X: 100, Y: 100}))
	assert.False(t, s.StartConnection("b", planflow.Point{}))
	assert.False(t, s.StartDrag("b", planflow.Point{}))

	s.CancelGesture()
	assert.Equal(t, editor.StateIdle, s.State())
	assert.True(t, s.StartConnection("b", planflow.Point{}))
}

func TestReadOnlySessionAllowsOnlySelection(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{ReadOnly: true})

	assert.False(t, s.StartDrag("a", planflow.Point{X: 100, Y: 100}))
	assert.False(t, s.StartConnection("a", planflow.Point{}))

	_, err := s.AddSubStep("x")
	assert.ErrorIs(t, err, planflow.ErrNotEditable)
	_, err = s.RemoveSubStep("a")
	assert.ErrorIs(t, err, planflow.ErrNotEditable)
	assert.ErrorIs(t, s.Connect("a", "b"), planflow.ErrNotEditable)
	assert.ErrorIs(t, s.Disconnect("a", "b"), planflow.ErrNotEditable)
	assert.ErrorIs(t, s.AutoLayout(), planflow.ErrNotEditable)
	assert.ErrorIs(t, s.SetNotes("x"), planflow.ErrNotEditable)

	assert.True(t, s.Select("a"))
	assert.Equal(t, "a", s.Selected())
}

func TestCloseMidGestureDiscardsTransientState(t *testing.T) {
	s := editor.NewSession("task-1", twoSteps(), nil, editor.Options{GenerateID: seqGen()})

	require.True(t, s.StartDrag("a", planflow.Point{X: 100, Y: 100}))
	s.MovePointer(planflow.Point{X: 700, Y: 600})
	s.Close()

	// The drag never committed: the position is untouched.
	assert.Equal(t, planflow.Point{X: 100, Y: 100}, position(t, s, "a"))
	assert.Equal(t, editor.StateIdle, s.State())
}

func TestSelectionSurvivesReadOnly(t *testing.T) {
	s := newSession(t, twoSteps(), editor.Options{ReadOnly: true})
	assert.False(t, s.Select("nope"))
	assert.True(t, s.Select("b"))
	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestSessionCanvasOverrideFromDetails(t *testing.T) {
	d := twoSteps()
	d.Canvas = &planflow.Canvas{Width: 600, Height: 400}
	s := newSession(t, d, editor.Options{})

	require.True(t, s.StartDrag("a", planflow.Point{X: 100, Y: 100}))
	s.Release(planflow.Point{X: 9999, Y: 9999})

	assert.Equal(t, planflow.Point{X: 400, Y: 250}, position(t, s, "a"))
}
