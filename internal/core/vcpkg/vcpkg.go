// Package vcpkg acquires, bootstraps, and invokes the vcpkg tool. All
// dependency resolution is delegated to vcpkg itself; this package only
// manages the checkout and constructs the invocations.
package vcpkg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/runner"
)

// DirName is the vcpkg checkout directory under the project root.
const DirName = "vcpkg"

// InstallDirName is the install root directory under the project root.
const InstallDirName = "vcpkg_installed"

// Dir returns the vcpkg checkout path for a project root.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, DirName)
}

// InstallRoot returns the install root path for a project root.
func InstallRoot(projectRoot string) string {
	return filepath.Join(projectRoot, InstallDirName)
}

// ExecutableName returns the platform-specific name of the vcpkg binary.
func ExecutableName(osName string) string {
	if osName == "windows" {
		return "vcpkg.exe"
	}
	return "vcpkg"
}

// Executable returns the expected path of the vcpkg binary inside dir.
func Executable(dir, osName string) string {
	return filepath.Join(dir, ExecutableName(osName))
}

// BootstrapCommand returns the invocation of vcpkg's own bootstrap script
// for the given checkout. Telemetry is always disabled.
func BootstrapCommand(dir, osName string) runner.Command {
	if osName == "windows" {
		return runner.Command{
			Name: filepath.Join(dir, "bootstrap-vcpkg.bat"),
			Args: []string{"-disableMetrics"},
			Dir:  dir,
		}
	}
	return runner.Command{
		Name: "sh",
		Args: []string{filepath.Join(dir, "bootstrap-vcpkg.sh"), "-disableMetrics"},
		Dir:  dir,
	}
}

// Bootstrap ensures a bootstrapped vcpkg checkout under projectRoot and
// returns its path. A missing checkout is cloned from repoURL; an existing
// one is updated. A non-empty ref pins the checkout to that git ref, in
// which case the update is a fetch rather than a pull (a pinned checkout
// sits on a detached HEAD that git pull would refuse). The bootstrap script
// runs on every call; vcpkg's own script is a no-op when already built.
func Bootstrap(ctx context.Context, projectRoot, repoURL, ref, osName string) (string, error) {
	dir := Dir(projectRoot)

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stdout, "Cloning vcpkg...")
		if err := runner.Run(ctx, runner.Command{Name: "git", Args: []string{"clone", repoURL, dir}}); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", dir, err)
	} else {
		fmt.Fprintln(os.Stdout, "Updating vcpkg...")
		if ref == "" {
			if err := runner.Run(ctx, runner.Command{Name: "git", Args: []string{"pull"}, Dir: dir}); err != nil {
				return "", err
			}
		} else {
			if err := runner.Run(ctx, runner.Command{Name: "git", Args: []string{"fetch", "--tags", "origin"}, Dir: dir}); err != nil {
				return "", err
			}
		}
	}

	if ref != "" {
		if err := runner.Run(ctx, runner.Command{Name: "git", Args: []string{"checkout", ref}, Dir: dir}); err != nil {
			return "", err
		}
	}

	if err := runner.Run(ctx, BootstrapCommand(dir, osName)); err != nil {
		return "", err
	}
	return dir, nil
}

// HeadCommit returns the HEAD commit of the checkout at dir.
func HeadCommit(ctx context.Context, dir string) (string, error) {
	return runner.Capture(ctx, runner.Command{Name: "git", Args: []string{"rev-parse", "HEAD"}, Dir: dir})
}

// InstallCommand returns the vcpkg install invocation for a project.
func InstallCommand(exe, projectRoot, triplet string, verbose bool) runner.Command {
	args := []string{
		"install",
		fmt.Sprintf("--triplet=%s", triplet),
		fmt.Sprintf("--x-manifest-root=%s", projectRoot),
		fmt.Sprintf("--x-install-root=%s", InstallRoot(projectRoot)),
	}
	if verbose {
		args = append(args, "--debug")
	}
	return runner.Command{Name: exe, Args: args, Dir: projectRoot}
}

// Install runs vcpkg install for the manifest at projectRoot using the
// bootstrapped checkout at dir. It fails before invoking anything when the
// vcpkg binary is not present on disk.
func Install(ctx context.Context, dir, projectRoot, triplet, osName string, verbose bool) error {
	exe := Executable(dir, osName)
	if _, err := os.Stat(exe); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("vcpkg executable not found at %s", exe)
	} else if err != nil {
		return fmt.Errorf("failed to stat %s: %w", exe, err)
	}

	fmt.Fprintf(os.Stdout, "Installing dependencies for triplet: %s\n", triplet)
	return runner.Run(ctx, InstallCommand(exe, projectRoot, triplet, verbose))
}
