// Where: internal/endpoint/resolver.go
// What: Control-plane endpoint resolution.
// Why: Discover the LocalStack edge port when the environment does not name it.
package endpoint

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docker/docker/api/types/container"

	"github.com/poruru/image-service-deploy/internal/constants"
)

const (
	localstackEdgePort = 4566
	defaultEndpoint    = "http://localhost:4566"
)

// DockerAPI is the subset of the Docker client the resolver needs.
type DockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// Resolver resolves the control-plane endpoint: LOCALSTACK_ENDPOINT wins,
// then a running LocalStack container's published edge port, then the
// conventional default.
type Resolver struct {
	Docker DockerAPI
}

// Resolve returns the endpoint URL. Discovery failures fall back to the
// default rather than erroring: a wrong endpoint surfaces on the first probe.
func (r Resolver) Resolve(ctx context.Context) string {
	if value := strings.TrimSpace(os.Getenv(constants.EnvLocalstackEndpoint)); value != "" {
		return value
	}

	if r.Docker != nil {
		if port, ok := r.discoverEdgePort(ctx); ok {
			return fmt.Sprintf("http://localhost:%d", port)
		}
	}
	return defaultEndpoint
}

func (r Resolver) discoverEdgePort(ctx context.Context) (int, bool) {
	containers, err := r.Docker.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return 0, false
	}

	for _, ctr := range containers {
		if !strings.Contains(strings.ToLower(ctr.Image), "localstack") {
			continue
		}
		for _, port := range ctr.Ports {
			if int(port.PrivatePort) != localstackEdgePort {
				continue
			}
			if port.PublicPort > 0 {
				return int(port.PublicPort), true
			}
		}
	}
	return 0, false
}
