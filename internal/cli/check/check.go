// Package check implements the "check" command: verify the required build
// tools without touching vcpkg or the install tree.
package check

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/config"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/platform"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/core/toolcheck"
)

// Command returns the "check" command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify that required build tools are installed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "project-root",
				Usage: "Project root containing setup.toml (defaults to the current directory)",
			},
		},
		Action: action,
	}
}

func action(c *cli.Context) error {
	host := platform.Current()

	projectRoot := c.String("project-root")
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error resolving project root: %v", err), 1)
		}
		projectRoot = wd
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.FileName, err), 1)
	}

	reqs, err := toolcheck.Required(host.OS, cfg.Tools.Extra, cfg.Tools.Minimum)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error in %s: %v", config.FileName, err), 1)
	}
	res := toolcheck.Check(c.Context, reqs)

	okColor := color.New(color.FgGreen).SprintFunc()
	badColor := color.New(color.FgRed).SprintFunc()
	pathColor := color.New(color.FgHiBlack).SprintFunc()

	for _, s := range res.Statuses {
		switch {
		case s.Satisfied && s.Version != "":
			fmt.Fprintf(os.Stdout, "  %s %s %s %s\n", okColor("ok"), s.Name, s.Version, pathColor(s.Path))
		case s.Satisfied:
			fmt.Fprintf(os.Stdout, "  %s %s %s\n", okColor("ok"), s.Name, pathColor(s.Path))
		default:
			fmt.Fprintf(os.Stdout, "  %s %s (%s)\n", badColor("missing"), s.Name, s.Reason)
		}
	}

	if !res.OK() {
		fmt.Fprintln(os.Stdout, "\nPlease install the missing tools:")
		fmt.Fprintf(os.Stdout, "  %s\n", toolcheck.Hint(host.OS))
		return cli.Exit("Required tools are missing.", 1)
	}

	fmt.Fprintln(os.Stdout, okColor("\nAll required tools are available."))
	return nil
}
