package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/cli/check"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/cli/self"
	"github.com/SindarinSDK/sindarin-pkg-libs-v2/internal/cli/setup"
)

// version is overridden at release time via -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	app := &cli.App{
		Name:    "setup-deps",
		Usage:   "Bootstrap vcpkg and install sindarin-libs native dependencies",
		Version: version,
		Flags:   setup.Flags(),
		// Running with no command performs the full setup sequence.
		Action: setup.Action,
		Commands: []*cli.Command{
			setup.Command(),
			check.Command(),
			self.NewSelfCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
