// Where: internal/converge/status.go
// What: Probe-only inspection of the resource graph.
// Why: Let operators see convergence state without mutating anything.
package converge

import (
	"context"
	"fmt"
	"sort"

	"github.com/poruru/image-service-deploy/internal/manifest"
)

// ResourceStatus describes one node of the graph as currently observed.
type ResourceStatus struct {
	Kind   string
	Name   string
	Exists bool
	Detail string
}

// Inspect probes every resource the manifest declares. It never creates or
// mutates; probe failures propagate.
func (c *Converger) Inspect(ctx context.Context, spec manifest.ServiceSpec) ([]ResourceStatus, error) {
	var statuses []ResourceStatus

	bucketExists, err := c.Clients.S3.BucketExists(ctx, spec.Bucket)
	if err != nil {
		return nil, stepError("probe bucket", spec.Bucket, err)
	}
	statuses = append(statuses, ResourceStatus{Kind: "bucket", Name: spec.Bucket, Exists: bucketExists})

	tableExists, err := c.Clients.Dynamo.TableExists(ctx, spec.Table.Name)
	if err != nil {
		return nil, stepError("probe table", spec.Table.Name, err)
	}
	statuses = append(statuses, ResourceStatus{Kind: "table", Name: spec.Table.Name, Exists: tableExists})

	ids, err := c.Clients.Gateway.FindRestAPIs(ctx, spec.API)
	if err != nil {
		return nil, stepError("probe api", spec.API, err)
	}
	apiStatus := ResourceStatus{Kind: "api", Name: spec.API, Exists: len(ids) > 0}
	if len(ids) > 0 {
		sort.Strings(ids)
		apiStatus.Detail = "id " + ids[0]
		if len(ids) > 1 {
			apiStatus.Detail = fmt.Sprintf("%d ids, lowest %s", len(ids), ids[0])
		}
	}
	statuses = append(statuses, apiStatus)

	for _, name := range spec.FunctionNames() {
		identity, found, err := c.Clients.Lambda.GetFunction(ctx, name)
		if err != nil {
			return nil, stepError("probe function", name, err)
		}
		status := ResourceStatus{Kind: "function", Name: name, Exists: found}
		if found {
			status.Detail = identity.ARN
		}
		statuses = append(statuses, status)
	}

	queueURL, queueExists, err := c.Clients.SQS.GetQueueURL(ctx, spec.Queue)
	if err != nil {
		return nil, stepError("probe queue", spec.Queue, err)
	}
	queueStatus := ResourceStatus{Kind: "queue", Name: spec.Queue, Exists: queueExists}
	if queueExists {
		queueStatus.Detail = queueURL
	}
	statuses = append(statuses, queueStatus)

	if listener := spec.ListenerFunction(); listener != "" && queueExists {
		attrs, err := c.Clients.SQS.GetQueueAttributes(ctx, queueURL)
		if err != nil {
			return nil, stepError("read queue attributes", spec.Queue, err)
		}
		mapped, err := c.Clients.Lambda.MappingExists(ctx, listener, attrs.ARN)
		if err != nil {
			return nil, stepError("probe event source mapping", listener, err)
		}
		statuses = append(statuses, ResourceStatus{
			Kind:   "mapping",
			Name:   listener + " <- " + spec.Queue,
			Exists: mapped,
		})
	}

	return statuses, nil
}
