// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru/image-service-deploy/internal/converge"
	"github.com/poruru/image-service-deploy/internal/manifest"
	"github.com/poruru/image-service-deploy/internal/ui"
	"github.com/poruru/image-service-deploy/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. The structure enables swapping implementations in tests.
type Dependencies struct {
	Out io.Writer

	// LoadManifest reads and validates the deployment manifest.
	LoadManifest func(path string) (manifest.ServiceSpec, error)

	// ResolveEndpoint resolves the control-plane endpoint.
	ResolveEndpoint func(ctx context.Context) string

	// NewClients builds the control-plane adapters.
	NewClients func(ctx context.Context, opts converge.FactoryOptions) (converge.Clients, error)

	// Region overrides AWS_REGION resolution when non-empty (tests only).
	Region string

	// Sleep overrides the readiness backoff clock (tests only).
	Sleep func(time.Duration)

	// ReadCode overrides code package loading (tests only).
	ReadCode func(path string) ([]byte, error)
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Manifest string     `short:"m" default:"imgbox.yml" help:"Path to deployment manifest"`
	EnvFile  string     `name:"env-file" help:"Path to .env file"`
	Deploy   DeployCmd  `cmd:"" help:"Converge the image service resource graph"`
	Status   StatusCmd  `cmd:"" help:"Probe resource state without mutating"`
	Version  VersionCmd `cmd:"" help:"Show version information"`
}

type (
	DeployCmd  struct{}
	StatusCmd  struct{}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution. It parses arguments,
// loads the environment file, and dispatches. Returns 0 on success, 1 on any
// fatal step.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	console := ui.New(out)

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(console, err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		console.Error(err.Error())
		return 1
	}

	loadEnvFile(cli.EnvFile, console)

	switch kctx.Command() {
	case "deploy":
		return runDeploy(cli, deps, console)
	case "status":
		return runStatus(cli, deps, console)
	case "version":
		fmt.Fprintln(out, version.GetVersion())
		return 0
	}

	console.Error("unknown command")
	return 1
}

// loadEnvFile loads an explicit env file, or .env in the current directory
// when present. Load failures are advisory.
func loadEnvFile(path string, console *ui.Console) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			console.Warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			console.Warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}

// exitWithError prints an error message and returns exit code 1.
func exitWithError(console *ui.Console, err error) int {
	console.Error(err.Error())
	return 1
}
