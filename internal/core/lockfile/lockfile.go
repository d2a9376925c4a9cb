// Package lockfile records the outcome of the last successful setup run in
// setup-lock.toml at the project root. The record is informational: it lets
// a later run (or a human) see which vcpkg commit and triplet produced the
// current vcpkg_installed tree.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const LockfileName = "setup-lock.toml"
const APIVersion = "1"

// VcpkgRecord describes the vcpkg checkout used for the run.
type VcpkgRecord struct {
	// Commit is the checkout's HEAD, empty when it could not be resolved
	// (for example an external root that is not a git checkout).
	Commit string `toml:"commit"`
	Root   string `toml:"root"`
}

// InstallRecord describes what was installed and where.
type InstallRecord struct {
	Triplet string `toml:"triplet"`
	Root    string `toml:"root"`
}

// Lockfile is the structure of setup-lock.toml.
type Lockfile struct {
	ApiVersion string        `toml:"api_version"`
	Vcpkg      VcpkgRecord   `toml:"vcpkg"`
	Install    InstallRecord `toml:"install"`
}

// New returns an empty lockfile at the current API version.
func New() *Lockfile {
	return &Lockfile{ApiVersion: APIVersion}
}

// Load reads setup-lock.toml from the project root. A missing file yields
// a fresh lockfile and no error.
func Load(projectRoot string) (*Lockfile, error) {
	path := filepath.Join(projectRoot, LockfileName)
	lf := New()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return lf, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat lockfile %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, lf); err != nil {
		return nil, fmt.Errorf("failed to decode lockfile %s: %w", path, err)
	}
	if lf.ApiVersion == "" {
		lf.ApiVersion = APIVersion
	}
	return lf, nil
}

// Save writes the lockfile to the project root, replacing any existing one.
func Save(projectRoot string, lf *Lockfile) error {
	path := filepath.Join(projectRoot, LockfileName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create lockfile %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := toml.NewEncoder(file).Encode(lf); err != nil {
		return fmt.Errorf("failed to encode lockfile %s: %w", path, err)
	}
	return nil
}
