// Package setup implements the full dependency setup sequence: tool check,
// triplet resolution, vcpkg bootstrap, and manifest install. It backs both
// the application's default action and the explicit "setup" command.
package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/config"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/lockfile"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/manifest"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/platform"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/toolcheck"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/vcpkg"
)

// Flags returns the flag set shared by the default action and the "setup"
// command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose output and pass --debug to vcpkg",
		},
		&cli.BoolFlag{
			Name:  "check",
			Usage: "Only check that required tools are available",
		},
		&cli.StringFlag{
			Name:  "triplet",
			Usage: "Override the computed vcpkg triplet",
		},
		&cli.StringFlag{
			Name:  "vcpkg-root",
			Usage: "Use an existing vcpkg installation instead of cloning one",
		},
		&cli.StringFlag{
			Name:  "project-root",
			Usage: "Project root containing vcpkg.json (defaults to the current directory)",
		},
	}
}

// Command returns the explicit "setup" command, equivalent to running the
// application with no command.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Bootstrap vcpkg and install the project's native dependencies",
		Flags:  Flags(),
		Action: Action,
	}
}

// Action runs the setup sequence. Steps run strictly in order and the first
// failure aborts the rest.
func Action(c *cli.Context) error {
	verbose := c.Bool("verbose")
	host := platform.Current()

	projectRoot, err := resolveProjectRoot(c.String("project-root"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error resolving project root: %v", err), 1)
	}

	fmt.Fprintf(os.Stdout, "Project root: %s\n", projectRoot)
	fmt.Fprintf(os.Stdout, "Platform: %s\n", host.OS)

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.FileName, err), 1)
	}

	reqs, err := toolcheck.Required(host.OS, cfg.Tools.Extra, cfg.Tools.Minimum)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error in %s: %v", config.FileName, err), 1)
	}
	res := toolcheck.Check(c.Context, reqs)
	if !res.OK() {
		toolcheck.ReportMissing(os.Stderr, res, host.OS)
		return cli.Exit("Required tools are missing.", 1)
	}

	if c.Bool("check") {
		okColor := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintln(os.Stdout, okColor("All required tools are available."))
		return nil
	}

	triplet := c.String("triplet")
	if triplet == "" {
		triplet = cfg.Vcpkg.Triplet
	}
	if triplet == "" {
		triplet = platform.Triplet(host)
	}
	fmt.Fprintf(os.Stdout, "Using triplet: %s\n", triplet)

	vcpkgDir, err := resolveVcpkgDir(c, cfg, projectRoot, host.OS)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	m, err := manifest.Load(projectRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cli.Exit(fmt.Sprintf("Error: no %s found in %s", manifest.FileName, projectRoot), 1)
		}
		return cli.Exit(fmt.Sprintf("Error loading %s: %v", manifest.FileName, err), 1)
	}
	if deps := m.DependencyNames(); len(deps) > 0 && verbose {
		fmt.Fprintf(os.Stdout, "Manifest declares %d dependencies: %s\n", len(deps), strings.Join(deps, ", "))
	}

	if err := vcpkg.Install(c.Context, vcpkgDir, projectRoot, triplet, host.OS, verbose); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	writeLockfile(c, projectRoot, vcpkgDir, triplet, verbose)

	doneColor := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(os.Stdout, "\n%s\n", doneColor("Setup complete!"))
	fmt.Fprintf(os.Stdout, "Dependencies installed to: %s\n", filepath.Join(vcpkg.InstallRoot(projectRoot), triplet))
	return nil
}

func resolveProjectRoot(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	return filepath.Abs(root)
}

// resolveVcpkgDir either validates an externally supplied vcpkg root or
// bootstraps a checkout under the project root. An explicit root that does
// not exist is fatal before any network or install work happens.
func resolveVcpkgDir(c *cli.Context, cfg *config.Settings, projectRoot, osName string) (string, error) {
	root := c.String("vcpkg-root")
	if root == "" {
		root = cfg.Vcpkg.Root
	}
	if root != "" {
		if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("specified vcpkg root does not exist: %s", root)
		} else if err != nil {
			return "", fmt.Errorf("failed to stat vcpkg root %s: %w", root, err)
		}
		return root, nil
	}
	return vcpkg.Bootstrap(c.Context, projectRoot, cfg.Vcpkg.Repo, cfg.Vcpkg.Ref, osName)
}

// writeLockfile records the run in setup-lock.toml. The record is
// informational, so problems here warn instead of failing the run.
func writeLockfile(c *cli.Context, projectRoot, vcpkgDir, triplet string, verbose bool) {
	lf := lockfile.New()
	lf.Vcpkg.Root = vcpkgDir
	lf.Install = lockfile.InstallRecord{Triplet: triplet, Root: vcpkg.InstallRoot(projectRoot)}

	// An external root may not be a git checkout; leave the commit empty then.
	if commit, err := vcpkg.HeadCommit(c.Context, vcpkgDir); err == nil {
		lf.Vcpkg.Commit = commit
	} else if verbose {
		fmt.Fprintf(os.Stdout, "Could not resolve vcpkg commit: %v\n", err)
	}

	if err := lockfile.Save(projectRoot, lf); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write %s: %v\n", lockfile.LockfileName, err)
	}
}
