package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/spritesync/common"
	"github.com/milk9111/spritesync/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, debug.DefaultPalette(), cfg.Palette())
	assert.Equal(t, common.StepDT, cfg.Physics.Step)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
physics:
  gravity_y: 0
  sleep_threshold: 0.5
debug:
  fill_shapes: false
  opacity: 0.5
  overlay_opacity: 0.75
  colors:
    static: "#ff000080"
    dynamic: "00ff00"
logging:
  format: json
spawns:
  - shape: ball
    x: 10
    y: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, common.ViewportHeight, cfg.Window.Height)
	assert.Zero(t, cfg.Physics.GravityY)
	assert.Equal(t, 0.5, cfg.Physics.SleepThreshold)
	assert.Equal(t, uint(20), cfg.Physics.Iterations)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []Spawn{{Shape: "ball", X: 10, Y: 20}}, cfg.Spawns)

	p := cfg.Palette()
	assert.False(t, p.FillShapes)
	assert.Equal(t, 0.5, p.FillOpacity)
	assert.Equal(t, 0.75, p.Opacity)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, p.Static)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, p.Dynamic)
	assert.Equal(t, debug.DefaultPalette().Sensor, p.Sensor)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad_yaml", "window: [", "parse"},
		{"bad_color", "debug:\n  colors:\n    static: '#12'\n", "invalid color"},
		{"color_not_scalar", "debug:\n  colors:\n    static: [1, 2]\n", "must be a string"},
		{"zero_step", "physics:\n  step: 0\n", "step must be positive"},
		{"opacity", "debug:\n  opacity: 2\n", "opacity"},
		{"overlay_opacity", "debug:\n  overlay_opacity: -1\n", "opacity"},
		{"window", "window:\n  width: -1\n", "window size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestColorMarshalsAsHex(t *testing.T) {
	out, err := yaml.Marshal(PaletteColors{Static: Color{color.NRGBA{R: 0x13, G: 0x27, B: 0xe4, A: 0xff}}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "#1327e4")
}
