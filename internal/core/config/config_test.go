package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	s, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRepoURL, s.Vcpkg.Repo)
	assert.Empty(t, s.Vcpkg.Ref)
	assert.Empty(t, s.Vcpkg.Root)
	assert.Empty(t, s.Vcpkg.Triplet)
	assert.Empty(t, s.Tools.Extra)
}

func TestLoad_FullFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `
[vcpkg]
repo = "https://example.com/fork/vcpkg.git"
ref = "2024.01.12"
root = "/opt/vcpkg"
triplet = "arm64-osx"

[tools]
extra = ["pkg-config"]

[tools.minimum]
cmake = "3.25.0"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644))

	s, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fork/vcpkg.git", s.Vcpkg.Repo)
	assert.Equal(t, "2024.01.12", s.Vcpkg.Ref)
	assert.Equal(t, "/opt/vcpkg", s.Vcpkg.Root)
	assert.Equal(t, "arm64-osx", s.Vcpkg.Triplet)
	assert.Equal(t, []string{"pkg-config"}, s.Tools.Extra)
	assert.Equal(t, "3.25.0", s.Tools.Minimum["cmake"])
}

func TestLoad_PartialFileKeepsRepoDefault(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `
[vcpkg]
triplet = "x64-linux"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644))

	s, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRepoURL, s.Vcpkg.Repo)
	assert.Equal(t, "x64-linux", s.Vcpkg.Triplet)
}

func TestLoad_InvalidToml(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("this is not = [toml"), 0644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.FileName)
}
