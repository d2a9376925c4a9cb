// Package lockfile_test contains tests for the lockfile package.
package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/lockfile"
)

func TestNewLockfile(t *testing.T) {
	t.Parallel()
	lf := lockfile.New()
	assert.NotNil(t, lf, "New lockfile should not be nil")
	assert.Equal(t, lockfile.APIVersion, lf.ApiVersion, "API version mismatch")
	assert.Empty(t, lf.Vcpkg.Commit)
	assert.Empty(t, lf.Install.Triplet)
}

func TestLoadLockfile_NotFound(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	lf, err := lockfile.Load(tempDir)
	require.NoError(t, err, "Load should not return error if lockfile not found")
	assert.NotNil(t, lf, "Loaded lockfile should not be nil even if not found")
	assert.Equal(t, lockfile.APIVersion, lf.ApiVersion, "API version mismatch for new lockfile")
}

func TestLoadLockfile_Valid(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	lockfilePath := filepath.Join(tempDir, lockfile.LockfileName)

	content := `
api_version = "1"

[vcpkg]
  commit = "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"
  root = "/work/proj/vcpkg"

[install]
  triplet = "x64-linux"
  root = "/work/proj/vcpkg_installed"
`
	err := os.WriteFile(lockfilePath, []byte(content), 0600)
	require.NoError(t, err, "Failed to write mock lockfile")

	lf, err := lockfile.Load(tempDir)
	require.NoError(t, err, "Load returned an unexpected error for valid lockfile")
	assert.Equal(t, "1", lf.ApiVersion)
	assert.Equal(t, "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678", lf.Vcpkg.Commit)
	assert.Equal(t, "/work/proj/vcpkg", lf.Vcpkg.Root)
	assert.Equal(t, "x64-linux", lf.Install.Triplet)
	assert.Equal(t, "/work/proj/vcpkg_installed", lf.Install.Root)
}

func TestLoadLockfile_MissingAPIVersion(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	lockfilePath := filepath.Join(tempDir, lockfile.LockfileName)

	content := `
[install]
  triplet = "arm64-osx"
`
	require.NoError(t, os.WriteFile(lockfilePath, []byte(content), 0600))

	lf, err := lockfile.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, lockfile.APIVersion, lf.ApiVersion, "API version should be defaulted")
	assert.Equal(t, "arm64-osx", lf.Install.Triplet)
}

func TestLoadLockfile_InvalidToml(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	lockfilePath := filepath.Join(tempDir, lockfile.LockfileName)

	require.NoError(t, os.WriteFile(lockfilePath, []byte("api_version = [broken"), 0600))

	_, err := lockfile.Load(tempDir)
	require.Error(t, err, "Load should fail on malformed toml")
	assert.Contains(t, err.Error(), lockfile.LockfileName)
}

func TestSaveLockfile_Roundtrip(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	lf := lockfile.New()
	lf.Vcpkg = lockfile.VcpkgRecord{Commit: "deadbeef", Root: filepath.Join(tempDir, "vcpkg")}
	lf.Install = lockfile.InstallRecord{Triplet: "x64-mingw-static", Root: filepath.Join(tempDir, "vcpkg_installed")}

	require.NoError(t, lockfile.Save(tempDir, lf), "Save should succeed")

	loaded, err := lockfile.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, lf, loaded, "Roundtripped lockfile should match")
}

func TestSaveLockfile_OverwritesExisting(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	first := lockfile.New()
	first.Install.Triplet = "x64-linux"
	require.NoError(t, lockfile.Save(tempDir, first))

	second := lockfile.New()
	second.Install.Triplet = "arm64-osx"
	require.NoError(t, lockfile.Save(tempDir, second))

	loaded, err := lockfile.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "arm64-osx", loaded.Install.Triplet)
}
