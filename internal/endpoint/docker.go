// Where: internal/endpoint/docker.go
// What: Docker client constructor.
// Why: Centralize Docker SDK initialization for endpoint discovery.
package endpoint

import "github.com/docker/docker/client"

// NewDockerClient constructs a Docker SDK client using environment defaults.
// Callers tolerate a nil client; discovery then falls back to defaults.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}
