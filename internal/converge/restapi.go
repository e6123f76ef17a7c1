// Where: internal/converge/restapi.go
// What: REST API shell convergence, readiness gate, and deployment publish.
// Why: The API id gates every downstream route step; publishing is
//      unconditional so the stage always reflects the latest graph.
package converge

import (
	"context"
	"fmt"
	"sort"
)

// EnsureRestAPI adopts the API matching the configured name or creates one.
// The control plane does not enforce name uniqueness; when several APIs share
// the name the lexicographically lowest id wins so the tie-break is
// deterministic across runs.
func (c *Converger) EnsureRestAPI(ctx context.Context, name string) (APIIdentity, error) {
	ids, err := c.Clients.Gateway.FindRestAPIs(ctx, name)
	if err != nil {
		return APIIdentity{}, stepError("probe api", name, err)
	}

	var apiID string
	if len(ids) > 0 {
		sort.Strings(ids)
		apiID = ids[0]
		if len(ids) > 1 {
			c.Console.Warn(fmt.Sprintf(
				"%d APIs named '%s'; adopting lowest id %s", len(ids), name, apiID,
			))
		} else {
			c.Console.Skip(fmt.Sprintf("API '%s' (id %s)", name, apiID))
		}
	} else {
		apiID, err = c.Clients.Gateway.CreateRestAPI(ctx, name)
		if err != nil {
			return APIIdentity{}, stepError("create api", name, err)
		}
		c.created()
		c.Console.Success(fmt.Sprintf("Created API: %s (id %s)", name, apiID))
	}

	rootID, err := c.awaitAPIReady(ctx, apiID)
	if err != nil {
		return APIIdentity{}, err
	}
	return APIIdentity{ID: apiID, RootResourceID: rootID}, nil
}

// awaitAPIReady polls the API's resource tree until it is queryable, with a
// fixed bounded backoff. Exhausting the budget is fatal for the run.
func (c *Converger) awaitAPIReady(ctx context.Context, apiID string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= readinessAttempts; attempt++ {
		resources, err := c.Clients.Gateway.GetResources(ctx, apiID)
		if err == nil {
			for _, res := range resources {
				if res.Path == "/" {
					return res.ID, nil
				}
			}
			lastErr = fmt.Errorf("root resource not present")
		} else {
			lastErr = err
		}
		if attempt < readinessAttempts {
			c.sleep(readinessBackoff)
		}
	}
	return "", stepError("await api ready", apiID,
		fmt.Errorf("%w: %v", ErrReadinessTimeout, lastErr))
}

// PublishDeployment creates a new stage deployment. It runs unconditionally
// on every pass: publishing is cheap and must reflect the latest
// method/integration graph.
func (c *Converger) PublishDeployment(ctx context.Context, apiID, stage string) error {
	if err := c.Clients.Gateway.CreateDeployment(ctx, apiID, stage); err != nil {
		return stepError("publish deployment", stage, err)
	}
	c.Console.Success(fmt.Sprintf("Published stage: %s", stage))
	return nil
}
