package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/bodysync"
	"github.com/milk9111/spritesync/config"
	"github.com/milk9111/spritesync/debug"
	"github.com/milk9111/spritesync/debug/overlay"
	"github.com/milk9111/spritesync/physics"
	"github.com/milk9111/spritesync/render"
	"github.com/milk9111/spritesync/shapes"
	"go.uber.org/zap"
)

var (
	background   = color.NRGBA{R: 0x1c, G: 0x1e, B: 0x26, A: 0xff}
	spriteColors = []color.NRGBA{
		{R: 0xe0, G: 0x7a, B: 0x5f, A: 0xff},
		{R: 0x81, G: 0xb2, B: 0x9a, A: 0xff},
		{R: 0xf2, G: 0xcc, B: 0x8f, A: 0xff},
		{R: 0x6d, G: 0x99, B: 0xd6, A: 0xff},
		{R: 0xc9, G: 0x8b, B: 0xdb, A: 0xff},
	}
)

type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	world     *physics.World
	registry  *bodysync.Registry
	sync      *bodysync.Synchronizer
	colorizer *debug.Colorizer
	overlay   *overlay.Overlay

	library *shapes.Library
	watcher *shapes.Watcher
	sprites []*render.Sprite

	frames    int
	nextShape int
	paused    bool
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)

	world := physics.NewWorld(
		physics.WithGravity(cfg.Physics.GravityX, cfg.Physics.GravityY),
		physics.WithIterations(cfg.Physics.Iterations),
		physics.WithDamping(cfg.Physics.Damping),
		physics.WithSleepThreshold(cfg.Physics.SleepThreshold),
		physics.WithWorldLogger(logger),
	)
	if cfg.Bounds.Enabled {
		if _, err := world.AddBounds(0, 0, width, height, cfg.Bounds.Thickness); err != nil {
			return nil, fmt.Errorf("add bounds: %w", err)
		}
	}

	library, err := loadLibrary(cfg.Shapes.File)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		logger:    logger,
		world:     world,
		registry:  bodysync.NewRegistry(world, logger),
		colorizer: debug.NewColorizer(cfg.Palette()),
		library:   library,
	}
	g.sync = bodysync.NewSynchronizer(g.registry, height, g.colorizer)
	g.sync.Attach(world)

	g.overlay = overlay.New(world, cfg.Window.Width, cfg.Window.Height, height, cfg.Debug.LineWidth)
	g.overlay.Visible = cfg.Debug.Enabled

	for _, s := range cfg.Spawns {
		if err := g.spawn(s.Shape, s.X, s.Y, s.Angle); err != nil {
			logger.Warn("spawn failed", zap.String("shape", s.Shape), zap.Error(err))
		}
	}
	// one tick so sprites are placed before the first step
	g.sync.Tick()

	if cfg.Shapes.Watch {
		g.watch()
	}
	logger.Info("world ready",
		zap.Int("bodies", len(world.Bodies())),
		zap.Int("sprites", g.registry.Len()),
		zap.Strings("shapes", library.Names()))
	return g, nil
}

func loadLibrary(file string) (*shapes.Library, error) {
	if file == "" {
		return shapes.Load("demo.json")
	}
	return shapes.LoadFile(file)
}

func (g *Game) watch() {
	dir := shapes.Dir
	if g.cfg.Shapes.File != "" {
		dir = filepath.Dir(g.cfg.Shapes.File)
	}
	if _, err := os.Stat(dir); err != nil {
		g.logger.Debug("shape watcher disabled", zap.String("dir", dir), zap.Error(err))
		return
	}
	w, err := shapes.NewWatcher(dir)
	if err != nil {
		g.logger.Warn("shape watcher failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	g.watcher = w
}

// spawn builds the named shape with its center of mass at (x, y), gives it
// a sprite and registers the pair. The body is registered unrotated so
// the cached offset and the sprite image share its local frame.
func (g *Game) spawn(name string, x, y, angle float64) error {
	body, err := g.library.Build(name, x, y, physics.WithLogger(g.logger))
	if err != nil {
		return err
	}
	sprite := render.NewShapeSprite(body, spriteColors[len(g.sprites)%len(spriteColors)])
	if err := g.registry.Register(sprite); err != nil {
		return err
	}
	if angle != 0 {
		body.SetAngle(angle)
	}
	g.sprites = append(g.sprites, sprite)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		g.watcher.Drain(g.reloadShapes, func(err error) {
			g.logger.Warn("shape watcher error", zap.Error(err))
		})
	}
	g.handleInput()

	if !g.paused {
		g.world.Step(g.cfg.Physics.Step)
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	mx, my := ebiten.CursorPosition()
	cursor := g.screenToWorld(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		names := g.library.Names()
		if len(names) > 0 {
			name := names[g.nextShape%len(names)]
			g.nextShape++
			if err := g.spawn(name, cursor.X, cursor.Y, 0); err != nil {
				g.logger.Warn("spawn failed", zap.String("shape", name), zap.Error(err))
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.removeAt(cursor)
	}
}

// screenToWorld undoes the render flip for a screen point.
func (g *Game) screenToWorld(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y - float64(g.cfg.Window.Height) + g.sync.WorldHeight()}
}

func (g *Game) removeAt(p cp.Vector) {
	hit := g.world.Space().PointQueryNearest(p, 0, cp.SHAPE_FILTER_ALL)
	if hit == nil || hit.Shape == nil {
		return
	}
	part, ok := physics.PartOf(hit.Shape)
	if !ok || part.Owner() == nil || part.Owner().IsStatic() {
		return
	}
	body := part.Owner()
	if !g.world.RemoveBody(body) {
		return
	}
	kept := g.sprites[:0]
	for _, s := range g.sprites {
		if s.Body() != body {
			kept = append(kept, s)
		}
	}
	g.sprites = kept
	g.logger.Debug("body removed", zap.Stringer("body", body.ID()), zap.String("label", body.Label()))
}

func (g *Game) reloadShapes(path string) {
	if g.cfg.Shapes.File != "" && filepath.Clean(path) != filepath.Clean(g.cfg.Shapes.File) {
		return
	}
	var (
		lib *shapes.Library
		err error
	)
	if g.cfg.Shapes.File != "" {
		lib, err = shapes.LoadFile(path)
	} else {
		lib, err = shapes.Load(filepath.Base(path))
	}
	if err != nil {
		g.logger.Warn("shape reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	g.library = lib
	g.logger.Info("shapes reloaded", zap.String("path", path), zap.Strings("shapes", lib.Names()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	viewHeight := float64(screen.Bounds().Dy())
	for _, s := range g.sprites {
		s.Draw(screen, viewHeight)
	}
	g.overlay.Draw(screen)

	status := ""
	if g.paused {
		status = "  [paused]"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  bodies: %d  sprites: %d%s\nclick: spawn  right click: remove  D: overlay  P: pause",
		ebiten.ActualFPS(), len(g.world.Bodies()), g.registry.Len(), status))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
