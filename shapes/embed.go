package shapes

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/*.json
var DataFS embed.FS

// Dir is checked for a file before falling back to the embedded copy, so
// edited shapes are picked up without a rebuild.
var Dir = filepath.Join("shapes", "data")

// Read returns the named shape file, preferring the copy on disk.
func Read(name string) ([]byte, error) {
	clean := cleanDataPath(name)
	if data, err := os.ReadFile(diskDataPath(clean)); err == nil {
		return data, nil
	}
	return DataFS.ReadFile("data/" + clean)
}

// Load reads and parses the named shape file.
func Load(name string) (*Library, error) {
	data, err := Read(name)
	if err != nil {
		return nil, fmt.Errorf("shapes: load %s: %w", name, err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("shapes: load %s: %w", name, err)
	}
	return lib, nil
}

// LoadFile parses a shape file at an arbitrary path.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shapes: read %s: %w", path, err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("shapes: load %s: %w", path, err)
	}
	return lib, nil
}

func cleanDataPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "shapes/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "data/"); ok {
		s = after
	}
	return s
}

func diskDataPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
