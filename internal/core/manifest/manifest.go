// Package manifest reads the project's vcpkg.json so the setup sequence can
// report what it is about to install and fail early when no manifest exists.
// Dependency resolution itself is vcpkg's job; only the fields needed for
// reporting are decoded and unknown fields are ignored.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const FileName = "vcpkg.json"

// Manifest is a loosely decoded vcpkg.json.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Dependencies []Dependency `json:"dependencies"`
}

// Dependency is one entry of the "dependencies" array. vcpkg allows either
// a bare string or an object with a "name" field plus feature/platform
// qualifiers.
type Dependency struct {
	Name string
}

func (d *Dependency) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		d.Name = name
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("dependency entry is neither a string nor an object: %w", err)
	}
	d.Name = obj.Name
	return nil
}

// Load reads vcpkg.json from projectRoot. A missing file surfaces as an
// error wrapping os.ErrNotExist so callers can distinguish it.
func Load(projectRoot string) (*Manifest, error) {
	path := filepath.Join(projectRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &m, nil
}

// DependencyNames returns the declared dependency names in manifest order.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		names = append(names, d.Name)
	}
	return names
}
