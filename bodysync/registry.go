package bodysync

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/common"
	"github.com/milk9111/spritesync/physics"
	"go.uber.org/zap"
)

var (
	ErrNilSprite = errors.New("bodysync: sprite is nil")
	ErrNoBody    = errors.New("bodysync: sprite has no body")
)

// Sprite is a visual whose transform follows a physics body.
type Sprite interface {
	Body() *physics.Body
	SetPosition(x, y float64)
	SetRotation(radians float64)
}

type entry struct {
	sprite Sprite
	body   *physics.Body
	offset cp.Vector
}

// Registry maps body ids to the sprites that follow them. It does not own
// bodies or sprites; entries are evicted when their body leaves the world.
type Registry struct {
	world   *physics.World
	logger  *zap.Logger
	entries map[string]*entry
	order   []string
}

func NewRegistry(world *physics.World, logger *zap.Logger) *Registry {
	r := &Registry{
		world:   world,
		logger:  common.OrNop(logger),
		entries: make(map[string]*entry),
	}
	world.OnRemove(func(b *physics.Body) {
		r.Unregister(b.ID())
	})
	return r
}

// Register caches the offset of the sprite's body, adds the body to the
// world if needed, and starts tracking the sprite. Registering a body id
// again replaces the previous sprite.
func (r *Registry) Register(s Sprite) error {
	if s == nil {
		return ErrNilSprite
	}
	body := s.Body()
	if body == nil {
		return ErrNoBody
	}

	offset := physics.ComputeOffset(body)
	r.world.AddBody(body)

	key := body.ID().String()
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	} else {
		r.logger.Debug("bodysync: sprite replaced", zap.String("body", key))
	}
	r.entries[key] = &entry{sprite: s, body: body, offset: offset}
	r.logger.Debug("bodysync: sprite registered",
		zap.String("body", key), zap.String("label", body.Label()),
		zap.Float64("offset_x", offset.X), zap.Float64("offset_y", offset.Y))
	return nil
}

// Unregister stops tracking the sprite for id.
func (r *Registry) Unregister(id physics.BodyID) bool {
	if r == nil {
		return false
	}
	key := id.String()
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("bodysync: sprite unregistered", zap.String("body", key))
	return true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Sprite returns the sprite registered for id.
func (r *Registry) Sprite(id physics.BodyID) (Sprite, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[id.String()]
	if !ok {
		return nil, false
	}
	return e.sprite, true
}

// Offset returns the cached offset for id.
func (r *Registry) Offset(id physics.BodyID) (cp.Vector, bool) {
	if r == nil {
		return cp.Vector{}, false
	}
	e, ok := r.entries[id.String()]
	if !ok {
		return cp.Vector{}, false
	}
	return e.offset, true
}

// each visits entries in registration order.
func (r *Registry) each(fn func(key string, e *entry)) {
	for _, key := range r.order {
		if e := r.entries[key]; e != nil {
			fn(key, e)
		}
	}
}

// Each visits registered sprites in registration order.
func (r *Registry) Each(fn func(id string, s Sprite)) {
	if r == nil {
		return
	}
	r.each(func(key string, e *entry) {
		fn(key, e.sprite)
	})
}
