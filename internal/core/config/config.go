// Package config loads the optional setup.toml file that tunes the setup
// sequence. A missing file is not an error; every field has a default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const FileName = "setup.toml"

// DefaultRepoURL is the upstream vcpkg repository cloned when setup.toml
// does not name another one.
const DefaultRepoURL = "https://github.com/microsoft/vcpkg.git"

// Settings is the decoded setup.toml.
type Settings struct {
	Vcpkg VcpkgSettings `toml:"vcpkg"`
	Tools ToolSettings  `toml:"tools"`
}

// VcpkgSettings controls how the vcpkg checkout is acquired and invoked.
type VcpkgSettings struct {
	// Repo is the clone URL for the vcpkg repository.
	Repo string `toml:"repo"`
	// Ref pins the checkout to a git ref after clone or update.
	Ref string `toml:"ref"`
	// Root points at an existing vcpkg installation, skipping bootstrap.
	// The --vcpkg-root flag takes precedence over it.
	Root string `toml:"root"`
	// Triplet overrides the computed triplet. The --triplet flag takes
	// precedence over it.
	Triplet string `toml:"triplet"`
}

// ToolSettings extends the required-tool list.
type ToolSettings struct {
	// Extra executables appended to the baseline requirement list.
	Extra []string `toml:"extra"`
	// Minimum maps tool names to semver version floors.
	Minimum map[string]string `toml:"minimum"`
}

// Default returns the settings used when no setup.toml exists.
func Default() *Settings {
	return &Settings{
		Vcpkg: VcpkgSettings{Repo: DefaultRepoURL},
	}
}

// Load reads setup.toml from projectRoot. A missing file yields Default();
// a malformed one is an error. Fields left empty in the file keep their
// defaults.
func Load(projectRoot string) (*Settings, error) {
	s := Default()

	path := filepath.Join(projectRoot, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if s.Vcpkg.Repo == "" {
		s.Vcpkg.Repo = DefaultRepoURL
	}
	return s, nil
}
