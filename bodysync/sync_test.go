package bodysync

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/debug"
	"github.com/milk9111/spritesync/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

type fakeSprite struct {
	body     *physics.Body
	x, y     float64
	rotation float64
	updates  int
	log      *[]string
	name     string
}

func (s *fakeSprite) Body() *physics.Body { return s.body }

func (s *fakeSprite) SetPosition(x, y float64) {
	s.x, s.y = x, y
	s.updates++
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
}

func (s *fakeSprite) SetRotation(r float64) { s.rotation = r }

func newWorld() *physics.World {
	return physics.NewWorld(physics.WithGravity(0, 0))
}

func circleAt(t *testing.T, x, y float64) *physics.Body {
	t.Helper()
	b, err := physics.Circle(x, y, 4)
	require.NoError(t, err)
	return b
}

func lShape(t *testing.T, x, y float64) *physics.Body {
	t.Helper()
	b, err := physics.BuildBody(x, y, []physics.Fixture{
		physics.VertexFixture("L",
			[]cp.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 20}, {X: 0, Y: 20}},
			[]cp.Vector{{X: 10, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 10, Y: 10}},
		),
	})
	require.NoError(t, err)
	return b
}

func TestTickFlipsYAxis(t *testing.T) {
	w := newWorld()
	reg := NewRegistry(w, nil)
	sprite := &fakeSprite{body: circleAt(t, 10, 20)}
	require.NoError(t, reg.Register(sprite))

	NewSynchronizer(reg, 600, nil).Tick()

	assert.InDelta(t, 10, sprite.x, eps)
	assert.InDelta(t, 580, sprite.y, eps)
	assert.InDelta(t, 0, sprite.rotation, eps)
}

func TestRenderTransformRotatesOffset(t *testing.T) {
	cases := []struct {
		name   string
		angle  float64
		offset cp.Vector
		wantX  float64
		wantY  float64
	}{
		{"no_rotation", 0, cp.Vector{X: 5, Y: 0}, 15, 580},
		{"quarter_turn", math.Pi / 2, cp.Vector{X: 5, Y: 0}, 10, 575},
		{"half_turn", math.Pi, cp.Vector{X: 5, Y: 0}, 5, 580},
		{"quarter_turn_both_axes", math.Pi / 2, cp.Vector{X: 2, Y: 3}, 7, 578},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := RenderTransform(cp.Vector{X: 10, Y: 20}, tc.angle, tc.offset, 600)
			// x' = x + ox*cos - oy*sin, y' = H - (y + ox*sin + oy*cos)
			assert.InDelta(t, tc.wantX, x, eps)
			assert.InDelta(t, tc.wantY, y, eps)
		})
	}
}

func TestTickAppliesCachedOffsetAtCurrentAngle(t *testing.T) {
	w := newWorld()
	reg := NewRegistry(w, nil)
	body := lShape(t, 100, 100)
	sprite := &fakeSprite{body: body}
	require.NoError(t, reg.Register(sprite))

	offset, ok := reg.Offset(body.ID())
	require.True(t, ok)
	assert.InDelta(t, 2.5, offset.X, eps)
	assert.InDelta(t, 2.5, offset.Y, eps)

	body.SetAngle(math.Pi / 2)
	NewSynchronizer(reg, 600, nil).Tick()

	assert.InDelta(t, 100-2.5, sprite.x, eps)
	assert.InDelta(t, 600-(100+2.5), sprite.y, eps)
	assert.InDelta(t, -math.Pi/2, sprite.rotation, eps)

	// the cached offset is not recomputed from the rotated bounds
	cached, _ := reg.Offset(body.ID())
	assert.Equal(t, offset, cached)
}

func TestRegisterAddsBodyToWorld(t *testing.T) {
	w := newWorld()
	reg := NewRegistry(w, nil)
	body := circleAt(t, 0, 0)
	require.False(t, w.Has(body.ID()))

	require.NoError(t, reg.Register(&fakeSprite{body: body}))
	assert.True(t, w.Has(body.ID()))

	// a body already in the world is left alone
	other := circleAt(t, 5, 5)
	w.AddBody(other)
	require.NoError(t, reg.Register(&fakeSprite{body: other}))
	assert.Len(t, w.Bodies(), 2)
	assert.Equal(t, 2, reg.Len())
}

func TestRegisterErrors(t *testing.T) {
	reg := NewRegistry(newWorld(), nil)
	require.ErrorIs(t, reg.Register(nil), ErrNilSprite)
	require.ErrorIs(t, reg.Register(&fakeSprite{}), ErrNoBody)
	assert.Zero(t, reg.Len())
}

func TestRegistryOrderAndOverwrite(t *testing.T) {
	w := newWorld()
	reg := NewRegistry(w, nil)
	var calls []string

	a := &fakeSprite{body: circleAt(t, 0, 0), log: &calls, name: "a"}
	b := &fakeSprite{body: circleAt(t, 10, 0), log: &calls, name: "b"}
	c := &fakeSprite{body: circleAt(t, 20, 0), log: &calls, name: "c"}
	for _, s := range []*fakeSprite{a, b, c} {
		require.NoError(t, reg.Register(s))
	}

	replacement := &fakeSprite{body: a.body, log: &calls, name: "a2"}
	require.NoError(t, reg.Register(replacement))
	assert.Equal(t, 3, reg.Len())

	got, ok := reg.Sprite(a.body.ID())
	require.True(t, ok)
	assert.Same(t, replacement, got)

	NewSynchronizer(reg, 100, nil).Tick()
	assert.Equal(t, []string{"a2", "b", "c"}, calls)
	assert.Zero(t, a.updates)
}

func TestRegistryEvictsRemovedBodies(t *testing.T) {
	w := newWorld()
	reg := NewRegistry(w, nil)
	keep := &fakeSprite{body: circleAt(t, 0, 0)}
	drop := &fakeSprite{body: circleAt(t, 10, 0)}
	require.NoError(t, reg.Register(keep))
	require.NoError(t, reg.Register(drop))

	require.True(t, w.RemoveBody(drop.body))
	assert.Equal(t, 1, reg.Len())
	_, ok := reg.Sprite(drop.body.ID())
	assert.False(t, ok)

	NewSynchronizer(reg, 100, nil).Tick()
	assert.Equal(t, 1, keep.updates)
	assert.Zero(t, drop.updates)

	assert.False(t, reg.Unregister(drop.body.ID()))
	assert.True(t, reg.Unregister(keep.body.ID()))
	assert.Zero(t, reg.Len())
}

func TestAttachRunsAfterEveryStep(t *testing.T) {
	w := physics.NewWorld(physics.WithGravity(0, 50))
	reg := NewRegistry(w, nil)
	sprite := &fakeSprite{body: circleAt(t, 10, 20)}
	require.NoError(t, reg.Register(sprite))

	palette := debug.DefaultPalette()
	syncer := NewSynchronizer(reg, 600, debug.NewColorizer(palette))
	syncer.Attach(w)

	w.Step(0.1)
	w.Step(0.1)

	assert.Equal(t, 2, sprite.updates)
	pos := sprite.body.Position()
	assert.Greater(t, pos.Y, 20.0)
	assert.InDelta(t, 600-pos.Y, sprite.y, eps)
	assert.Equal(t, palette.Dynamic, sprite.body.Style().Stroke)
	assert.Equal(t, palette.Dynamic, sprite.body.Parts()[0].Style().Stroke)
}

func TestEachFollowsRegistrationOrder(t *testing.T) {
	reg := NewRegistry(newWorld(), nil)
	var want []string
	for i := 0; i < 4; i++ {
		s := &fakeSprite{body: circleAt(t, float64(i*10), 0)}
		require.NoError(t, reg.Register(s))
		want = append(want, s.body.ID().String())
	}

	var got []string
	reg.Each(func(id string, _ Sprite) { got = append(got, id) })
	assert.Equal(t, want, got)
}
