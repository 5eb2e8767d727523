package geometry_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/planflow"
	"github.com/meikuraledutech/planflow/geometry"
)

func TestAutoLayoutDeterministicGrid(t *testing.T) {
	cfg := geometry.DefaultConfig()
	steps := make(planflow.SubSteps, 7)
	for i := range steps {
		steps[i] = planflow.SubStep{ID: fmt.Sprintf("s%d", i), Position: pt(999, 999)}
	}

	out := geometry.AutoLayout(steps, cfg)

	require.Len(t, out, 7)
	for i, s := range out {
		want := planflow.Point{
			X: 50 + float64(i%3)*300,
			Y: 50 + float64(i/3)*250,
		}
		require.NotNil(t, s.Position)
		assert.Equal(t, want, *s.Position, "index %d", i)
	}
}

func TestAutoLayoutIsIdempotent(t *testing.T) {
	cfg := geometry.DefaultConfig()
	steps := planflow.SubSteps{
		{ID: "a", Position: pt(400, 12)},
		{ID: "b"},
		{ID: "c", Position: pt(0, 700)},
		{ID: "d"},
	}

	once := geometry.AutoLayout(steps, cfg)
	twice := geometry.AutoLayout(once, cfg)

	assert.Empty(t, cmp.Diff(once, twice))
}

func TestAutoLayoutLaysOutUnplacedSubSteps(t *testing.T) {
	cfg := geometry.DefaultConfig()
	out := geometry.AutoLayout(planflow.SubSteps{{ID: "a"}}, cfg)

	require.NotNil(t, out[0].Position)
	assert.Equal(t, planflow.Point{X: 50, Y: 50}, *out[0].Position)
}

func TestClamp(t *testing.T) {
	cfg := geometry.DefaultConfig() // 1200x800 canvas, 200x150 card

	tests := []struct {
		name string
		in   planflow.Point
		want planflow.Point
	}{
		{"inside", planflow.Point{X: 300, Y: 200}, planflow.Point{X: 300, Y: 200}},
		{"negative", planflow.Point{X: -40, Y: -5}, planflow.Point{X: 0, Y: 0}},
		{"beyond", planflow.Point{X: 5000, Y: 5000}, planflow.Point{X: 1000, Y: 650}},
		{"right edge", planflow.Point{X: 1000, Y: 650}, planflow.Point{X: 1000, Y: 650}},
		{"mixed", planflow.Point{X: -1, Y: 9999}, planflow.Point{X: 0, Y: 650}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Clamp(tt.in))
		})
	}
}

func TestClampRespectsCanvasOverride(t *testing.T) {
	cfg := geometry.DefaultConfig().WithCanvas(&planflow.Canvas{Width: 600, Height: 400})

	got := cfg.Clamp(planflow.Point{X: 5000, Y: 5000})
	assert.Equal(t, planflow.Point{X: 400, Y: 250}, got)
}

func TestGridSlotWrapsColumns(t *testing.T) {
	cfg := geometry.DefaultConfig()

	assert.Equal(t, planflow.Point{X: 50, Y: 50}, cfg.GridSlot(0))
	assert.Equal(t, planflow.Point{X: 650, Y: 50}, cfg.GridSlot(2))
	assert.Equal(t, planflow.Point{X: 50, Y: 300}, cfg.GridSlot(3))
}
