// Where: internal/converge/orchestrator.go
// What: Convergence run sequencing.
// Why: Steps execute strictly in dependency order; identities are threaded
//      forward explicitly, never through ambient state.
package converge

import (
	"context"

	"github.com/poruru/image-service-deploy/internal/constants"
	"github.com/poruru/image-service-deploy/internal/manifest"
)

// Summary reports the identities a completed run converged to.
type Summary struct {
	APIID    string
	QueueURL string
	Created  int
}

// Apply converges the whole resource graph. Any failure other than a
// recognized not-found/already-exists sentinel aborts the run; resources
// created so far stay in place and re-running is the recovery path.
func (c *Converger) Apply(ctx context.Context, spec manifest.ServiceSpec) (Summary, error) {
	c.creations = 0

	c.Console.Header("🚀", "Converging "+spec.Service)

	if err := c.EnsureBucket(ctx, spec.Bucket); err != nil {
		return Summary{}, err
	}
	if err := c.EnsureTable(ctx, spec.Table); err != nil {
		return Summary{}, err
	}

	api, err := c.EnsureRestAPI(ctx, spec.API)
	if err != nil {
		return Summary{}, err
	}

	env := NewEnvironmentBuilder(c.baseEnvironment(spec), functionOverrides(spec))

	// Deploy every function before wiring the queue: the listener must exist
	// when its event source mapping is created.
	identities := make(map[string]FunctionIdentity, len(spec.Functions))
	for _, name := range spec.FunctionNames() {
		identity, err := c.EnsureFunction(ctx, name, spec.Functions[name], env)
		if err != nil {
			return Summary{}, err
		}
		identities[name] = identity
	}

	for _, name := range spec.RouteFunctions() {
		fn := spec.Functions[name]
		if _, err := c.EnsureRoute(ctx, api, fn.Route, fn.Method, identities[name]); err != nil {
			return Summary{}, err
		}
		if err := c.EnsurePermission(ctx, api.ID, fn.Method, fn.Route, identities[name]); err != nil {
			return Summary{}, err
		}
	}

	queue, err := c.EnsureQueue(ctx, spec.Queue)
	if err != nil {
		return Summary{}, err
	}
	if err := c.EnsureQueuePolicy(ctx, queue, spec.Bucket); err != nil {
		return Summary{}, err
	}
	if err := c.EnsureNotification(ctx, spec.Bucket, queue); err != nil {
		return Summary{}, err
	}
	if listener := spec.ListenerFunction(); listener != "" {
		if err := c.EnsureMapping(ctx, listener, queue); err != nil {
			return Summary{}, err
		}
	}

	if err := c.PublishDeployment(ctx, api.ID, spec.Stage); err != nil {
		return Summary{}, err
	}

	return Summary{APIID: api.ID, QueueURL: queue.URL, Created: c.creations}, nil
}

// baseEnvironment is the deployment-wide variable set shared by every
// function, extended by the manifest's shared variables.
func (c *Converger) baseEnvironment(spec manifest.ServiceSpec) map[string]string {
	base := map[string]string{
		constants.EnvBucketName: spec.Bucket,
		constants.EnvTableName:  spec.Table.Name,
		constants.EnvAWSRegion:  c.Region,
	}
	if c.Endpoint != "" {
		base[constants.EnvLocalstackEndpoint] = c.Endpoint
	}
	for key, value := range spec.Environment {
		base[key] = value
	}
	return base
}

func functionOverrides(spec manifest.ServiceSpec) map[string]map[string]string {
	overrides := make(map[string]map[string]string)
	for name, fn := range spec.Functions {
		if len(fn.Environment) > 0 {
			overrides[name] = fn.Environment
		}
	}
	return overrides
}
