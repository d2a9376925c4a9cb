// Package toolcheck verifies that the external build tools required by the
// setup sequence are present on the search path, optionally gating them on a
// minimum version.
package toolcheck

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/runner"
)

// DefaultMinimums holds version floors applied when setup.toml does not
// override them. vcpkg itself refuses to configure with older cmake.
var DefaultMinimums = map[string]string{
	"cmake": "3.15.0",
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Requirement names one executable that must be resolvable, with an
// optional minimum version.
type Requirement struct {
	Name    string
	Minimum *semver.Version
}

// Status is the outcome of checking a single requirement.
type Status struct {
	Name      string
	Path      string // resolved path, empty when not found
	Version   string // detected version, empty when not probed or unparseable
	Minimum   *semver.Version
	Satisfied bool
	Reason    string // set when unsatisfied
}

// Result aggregates the statuses for one check run.
type Result struct {
	Statuses []Status
}

// OK reports whether every requirement was satisfied.
func (r Result) OK() bool {
	for _, s := range r.Statuses {
		if !s.Satisfied {
			return false
		}
	}
	return true
}

// Missing returns the names of unsatisfied requirements, in check order.
func (r Result) Missing() []string {
	var names []string
	for _, s := range r.Statuses {
		if !s.Satisfied {
			names = append(names, s.Name)
		}
	}
	return names
}

// Required builds the ordered requirement list for the given OS: the
// baseline tools, the platform compiler, then any extras from setup.toml.
// Minimum versions come from DefaultMinimums overlaid with the minimums
// argument; an unparseable minimum is an error.
func Required(osName string, extra []string, minimums map[string]string) ([]Requirement, error) {
	names := []string{"git", "cmake", "ninja"}
	switch osName {
	case "windows", "darwin":
		names = append(names, "clang")
	default:
		names = append(names, "gcc")
	}
	names = append(names, extra...)

	floors := make(map[string]string, len(DefaultMinimums)+len(minimums))
	for tool, v := range DefaultMinimums {
		floors[tool] = v
	}
	for tool, v := range minimums {
		floors[tool] = v
	}

	reqs := make([]Requirement, 0, len(names))
	for _, name := range names {
		req := Requirement{Name: name}
		if floor, ok := floors[name]; ok {
			min, err := semver.NewVersion(floor)
			if err != nil {
				return nil, fmt.Errorf("invalid minimum version %q for tool %s: %w", floor, name, err)
			}
			req.Minimum = min
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Check resolves each requirement via the search path and, where a minimum
// version is set, probes the tool with `--version`. A tool whose version
// output cannot be parsed passes the check; only a parsed version below the
// floor fails it.
func Check(ctx context.Context, reqs []Requirement) Result {
	var res Result
	for _, req := range reqs {
		st := Status{Name: req.Name, Minimum: req.Minimum}

		path, err := exec.LookPath(req.Name)
		if err != nil {
			st.Reason = "not found on PATH"
			res.Statuses = append(res.Statuses, st)
			continue
		}
		st.Path = path
		st.Satisfied = true

		if req.Minimum != nil {
			out, err := runner.Capture(ctx, runner.Command{Name: req.Name, Args: []string{"--version"}})
			if err == nil {
				if v := parseVersion(out); v != nil {
					st.Version = v.String()
					if v.LessThan(req.Minimum) {
						st.Satisfied = false
						st.Reason = fmt.Sprintf("version %s is below the required %s", v, req.Minimum)
					}
				}
			}
		}
		res.Statuses = append(res.Statuses, st)
	}
	return res
}

func parseVersion(out string) *semver.Version {
	line := out
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		line = out[:i]
	}
	m := versionPattern.FindString(line)
	if m == "" {
		return nil
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil
	}
	return v
}

// Hint returns the platform-specific install command suggested when tools
// are missing.
func Hint(osName string) string {
	switch osName {
	case "linux":
		return "sudo apt-get install build-essential cmake ninja-build git"
	case "darwin":
		return "brew install cmake ninja git"
	default:
		return "choco install cmake ninja git llvm"
	}
}

// ReportMissing prints the unsatisfied requirements followed by the
// remediation hint for the OS.
func ReportMissing(w io.Writer, res Result, osName string) {
	missing := res.Missing()
	if len(missing) == 0 {
		return
	}

	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "Missing required tools: %s\n", red(strings.Join(missing, ", ")))
	for _, s := range res.Statuses {
		if !s.Satisfied && s.Reason != "" && s.Path != "" {
			fmt.Fprintf(w, "  %s: %s\n", s.Name, s.Reason)
		}
	}
	fmt.Fprintln(w, "\nPlease install the missing tools:")
	fmt.Fprintf(w, "  %s\n", Hint(osName))
}
