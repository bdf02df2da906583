package shapes

import (
	"errors"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/milk9111/spritesync/physics"
)

// GeneratorInfoKey is the editor's metadata entry. It is not a shape.
const GeneratorInfoKey = "generator_info"

var (
	ErrUnknownShape = errors.New("shapes: unknown shape")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Library is a set of named shape definitions.
type Library struct {
	defs map[string]*Definition
}

// Parse decodes a shape file. The generator_info entry is dropped; every
// other top-level key names a definition.
func Parse(data []byte) (*Library, error) {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("shapes: decode: %w", err)
	}
	delete(raw, GeneratorInfoKey)

	lib := &Library{defs: make(map[string]*Definition, len(raw))}
	for name, msg := range raw {
		var def Definition
		if err := json.Unmarshal(msg, &def); err != nil {
			return nil, fmt.Errorf("shapes: decode %q: %w", name, err)
		}
		lib.defs[name] = &def
	}
	return lib, nil
}

// Names lists the definitions in lexical order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.defs))
	for name := range l.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.defs)
}

func (l *Library) Get(name string) (*Definition, bool) {
	if l == nil {
		return nil, false
	}
	def, ok := l.defs[name]
	return def, ok
}

// Build creates a body from the named definition with its center of mass
// at (x, y). opts are applied after the definition's own material and label.
func (l *Library) Build(name string, x, y float64, opts ...physics.BuildOption) (*physics.Body, error) {
	def, ok := l.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	label := def.Label
	if label == "" {
		label = name
	}
	base := []physics.BuildOption{physics.WithMaterial(def.Material()), physics.WithLabel(label)}
	body, err := physics.BuildBody(x, y, def.Fixtures(), append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("shapes: build %q: %w", name, err)
	}
	return body, nil
}
