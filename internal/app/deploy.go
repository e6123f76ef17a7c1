// Where: internal/app/deploy.go
// What: Deploy command implementation.
// Why: Wire manifest, clients, and converger into one convergence run.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poruru/image-service-deploy/internal/constants"
	"github.com/poruru/image-service-deploy/internal/converge"
	"github.com/poruru/image-service-deploy/internal/ui"
)

// runDeploy executes the 'deploy' command: full convergence of the graph.
func runDeploy(cli CLI, deps Dependencies, console *ui.Console) int {
	spec, err := deps.LoadManifest(cli.Manifest)
	if err != nil {
		return exitWithError(console, err)
	}

	ctx := context.Background()
	conv, endpoint, err := buildConverger(ctx, deps, console)
	if err != nil {
		return exitWithError(console, err)
	}

	summary, err := conv.Apply(ctx, spec)
	if err != nil {
		return exitWithError(console, err)
	}

	console.Blank()
	console.Header("📦", "Converged "+spec.Service)
	console.Item("API id", summary.APIID)
	console.Item("Invoke URL", invokeURL(endpoint, summary.APIID, spec.Stage))
	console.Item("Queue URL", summary.QueueURL)
	console.Item("Created", summary.Created)
	return 0
}

// buildConverger assembles a Converger against the resolved endpoint.
func buildConverger(ctx context.Context, deps Dependencies, console *ui.Console) (*converge.Converger, string, error) {
	if deps.ResolveEndpoint == nil || deps.NewClients == nil {
		return nil, "", fmt.Errorf("control-plane dependencies not configured")
	}

	endpoint := deps.ResolveEndpoint(ctx)
	region := deps.Region
	if region == "" {
		region = strings.TrimSpace(os.Getenv(constants.EnvAWSRegion))
	}
	if region == "" {
		region = constants.DefaultRegion
	}

	clients, err := deps.NewClients(ctx, converge.FactoryOptions{
		Endpoint: endpoint,
		Region:   region,
	})
	if err != nil {
		return nil, "", err
	}

	conv := converge.New(clients, console, region)
	conv.Endpoint = endpoint
	if deps.Sleep != nil {
		conv.Sleep = deps.Sleep
	}
	if deps.ReadCode != nil {
		conv.ReadCode = deps.ReadCode
	}
	return conv, endpoint, nil
}

// invokeURL is the LocalStack-style invoke URL for a deployed stage.
func invokeURL(endpoint, apiID, stage string) string {
	return fmt.Sprintf("%s/restapis/%s/%s/_user_request_/", strings.TrimRight(endpoint, "/"), apiID, stage)
}
