// Where: cmd/imgbox/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/poruru/image-service-deploy/internal/app"
	"github.com/poruru/image-service-deploy/internal/config"
	"github.com/poruru/image-service-deploy/internal/converge"
	"github.com/poruru/image-service-deploy/internal/endpoint"
)

var newDockerClient = endpoint.NewDockerClient

// buildDependencies constructs the runtime dependencies required by the CLI.
// Docker is optional: without it, endpoint discovery falls back to the
// environment and the conventional default.
func buildDependencies() (app.Dependencies, io.Closer) {
	resolver := endpoint.Resolver{}
	var closer io.Closer
	if client, err := newDockerClient(); err == nil {
		resolver.Docker = client
		closer = client
	}

	deps := app.Dependencies{
		Out:             os.Stdout,
		LoadManifest:    config.LoadManifest,
		ResolveEndpoint: resolver.Resolve,
		NewClients:      converge.NewClients,
	}
	return deps, closer
}
