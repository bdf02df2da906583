package shapes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sample = `{
  "generator_info": "made by hand",
  "wheel": {
    "label": "wheel",
    "density": 0.005,
    "collisionFilter": {"group": -3, "category": 2, "mask": 5},
    "fixtures": [
      {"label": "rim", "circle": {"x": 4, "y": -2, "radius": 10}}
    ]
  },
  "plank": {
    "isStatic": true,
    "friction": 0.9,
    "restitution": 0.25,
    "frictionAir": 0.02,
    "fixtures": [
      {"label": "top", "isSensor": true, "vertices": [[{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":2},{"x":0,"y":2}]]},
      {"label": "hex", "polygon": {"x": 1, "y": 2, "radius": 3, "sides": 6}}
    ]
  }
}`

func TestParseDropsGeneratorInfo(t *testing.T) {
	lib, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"plank", "wheel"}, lib.Names())
	assert.Equal(t, 2, lib.Len())
	_, ok := lib.Get(GeneratorInfoKey)
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"broken":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shapes: decode")

	_, err = Parse([]byte(`{"bad": {"fixtures": "nope"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)

	_, err = Parse([]byte(`[1, 2]`))
	require.Error(t, err)
}

func TestDefinitionFixtures(t *testing.T) {
	lib, err := Parse([]byte(sample))
	require.NoError(t, err)

	wheel, _ := lib.Get("wheel")
	fx := wheel.Fixtures()
	require.Len(t, fx, 1)
	assert.Equal(t, physics.KindCircle, fx[0].Kind())
	assert.Equal(t, &physics.CircleSpec{X: 4, Y: -2, Radius: 10}, fx[0].Circle)
	assert.Equal(t, "rim", fx[0].Label)

	plank, _ := lib.Get("plank")
	fx = plank.Fixtures()
	require.Len(t, fx, 2)
	assert.Equal(t, physics.KindVertices, fx[0].Kind())
	assert.True(t, fx[0].IsSensor)
	assert.Equal(t, [][]cp.Vector{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 2}, {X: 0, Y: 2}}}, fx[0].Vertices)
	assert.Equal(t, physics.KindPolygon, fx[1].Kind())
	assert.Equal(t, 6, fx[1].Polygon.Sides)

	var nilDef *Definition
	assert.Nil(t, nilDef.Fixtures())
}

func TestDefinitionMaterial(t *testing.T) {
	lib, err := Parse([]byte(sample))
	require.NoError(t, err)

	wheel, _ := lib.Get("wheel")
	m := wheel.Material()
	assert.Equal(t, 0.005, m.Density)
	assert.Equal(t, physics.DefaultFriction, m.Friction)
	assert.Equal(t, physics.Filter{Group: 3, Category: 2, Mask: 5}, m.Filter)
	assert.False(t, m.Static)

	plank, _ := lib.Get("plank")
	m = plank.Material()
	assert.Equal(t, physics.DefaultDensity, m.Density)
	assert.Equal(t, 0.9, m.Friction)
	assert.Equal(t, 0.25, m.Restitution)
	assert.Equal(t, 0.02, m.AirFriction)
	assert.Equal(t, physics.DefaultFilter(), m.Filter)
	assert.True(t, m.Static)
}

func TestPositiveGroupIsIgnored(t *testing.T) {
	lib, err := Parse([]byte(`{"a": {"collisionFilter": {"group": 4}, "fixtures": []}}`))
	require.NoError(t, err)
	def, _ := lib.Get("a")
	assert.Equal(t, physics.DefaultFilter(), def.Material().Filter)
}

func TestBuild(t *testing.T) {
	lib, err := Parse([]byte(sample))
	require.NoError(t, err)

	body, err := lib.Build("wheel", 100, 200)
	require.NoError(t, err)
	assert.Equal(t, "wheel", body.Label())
	assert.InDelta(t, 100, body.Position().X, 1e-9)
	assert.InDelta(t, 200, body.Position().Y, 1e-9)
	require.Len(t, body.Parts(), 1)
	assert.True(t, body.Parts()[0].IsCircle())
	assert.Equal(t, uint(3), body.Parts()[0].Shape().Filter().Group)

	_, err = lib.Build("missing", 0, 0)
	require.ErrorIs(t, err, ErrUnknownShape)
}

func TestBuildSkipsPolygonOnlyFixtures(t *testing.T) {
	lib, err := Parse([]byte(sample))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	body, err := lib.Build("plank", 0, 0, physics.WithLogger(zap.New(core)))
	require.NoError(t, err)

	// unlabelled definitions fall back to their key
	assert.Equal(t, "plank", body.Label())
	assert.True(t, body.IsStatic())
	assert.True(t, body.IsSensor())
	require.Len(t, body.Parts(), 1)
	assert.Equal(t, 1, logs.FilterField(zap.String("fixture", "hex")).Len())
}

func TestBuildVerticesWithPolygonInfo(t *testing.T) {
	lib, err := Parse([]byte(`{"tile": {"fixtures": [{
		"label": "tile",
		"polygon": {"x": 5, "y": 5, "radius": 7, "sides": 4},
		"vertices": [[{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10},{"x":0,"y":10}]]
	}]}}`))
	require.NoError(t, err)

	body, err := lib.Build("tile", 20, 30)
	require.NoError(t, err)
	require.Len(t, body.Parts(), 1)
	assert.False(t, body.Parts()[0].IsCircle())
}

func TestBuildWithoutUsableFixtures(t *testing.T) {
	lib, err := Parse([]byte(`{"ghost": {"fixtures": [{"polygon": {"radius": 2, "sides": 3}}]}}`))
	require.NoError(t, err)

	_, err = lib.Build("ghost", 0, 0)
	require.ErrorIs(t, err, physics.ErrNoFixtures)
}

func TestLoadEmbeddedDemo(t *testing.T) {
	lib, err := Load("demo.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"ball", "crate", "ell", "lollipop", "pad"}, lib.Names())

	for _, name := range lib.Names() {
		_, err := lib.Build(name, 50, 50)
		assert.NoError(t, err, name)
	}

	same, err := Load("shapes/data/demo.json")
	require.NoError(t, err)
	assert.Equal(t, lib.Names(), same.Names())

	_, err = Load("nope.json")
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	lib, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestNilLibrary(t *testing.T) {
	var lib *Library
	assert.Nil(t, lib.Names())
	assert.Zero(t, lib.Len())
	_, err := lib.Build("x", 0, 0)
	require.ErrorIs(t, err, ErrUnknownShape)
}

func TestWatcherReportsShapeFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "level.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherDrainIsNonBlocking(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	w.Events <- "a.json"
	w.Errors <- errors.New("watch failed")

	var (
		paths []string
		errs  []error
	)
	w.Drain(func(p string) { paths = append(paths, p) }, func(err error) { errs = append(errs, err) })

	assert.Equal(t, []string{"a.json"}, paths)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "watch failed")

	// nothing pending returns immediately
	w.Drain(func(string) { t.Fatal("unexpected path") }, nil)
}

func TestIsShapeFile(t *testing.T) {
	assert.True(t, IsShapeFile("a/b.json"))
	assert.True(t, IsShapeFile("B.JSON"))
	assert.False(t, IsShapeFile("b.yaml"))
	assert.False(t, IsShapeFile("json"))
}
