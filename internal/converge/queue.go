// Where: internal/converge/queue.go
// What: Queue and queue access policy convergence.
// Why: URL and ARN are derived by the control plane; the policy check is
//      structured comparison with a substring fast path.
package converge

import (
	"context"
	"errors"
	"fmt"
)

// EnsureQueue converges the event queue and returns its derived identity.
func (c *Converger) EnsureQueue(ctx context.Context, name string) (QueueIdentity, error) {
	queueURL, found, err := c.Clients.SQS.GetQueueURL(ctx, name)
	if err != nil {
		return QueueIdentity{}, stepError("probe queue", name, err)
	}
	if found {
		c.Console.Skip(fmt.Sprintf("Queue '%s'", name))
	} else {
		queueURL, err = c.Clients.SQS.CreateQueue(ctx, name)
		if err != nil {
			if !errors.Is(err, ErrAlreadyExists) {
				return QueueIdentity{}, stepError("create queue", name, err)
			}
			queueURL, _, err = c.Clients.SQS.GetQueueURL(ctx, name)
			if err != nil {
				return QueueIdentity{}, stepError("adopt queue", name, err)
			}
		} else {
			c.created()
			c.Console.Success(fmt.Sprintf("Created queue: %s", name))
		}
	}

	attrs, err := c.Clients.SQS.GetQueueAttributes(ctx, queueURL)
	if err != nil {
		return QueueIdentity{}, stepError("read queue attributes", name, err)
	}
	return QueueIdentity{Name: name, URL: queueURL, ARN: attrs.ARN}, nil
}

// EnsureQueuePolicy allows the bucket to deliver events to the queue. When
// the current policy already references the bucket ARN the step is skipped;
// reapplying unconditionally would mean comparing whole policy documents for
// no gain.
func (c *Converger) EnsureQueuePolicy(ctx context.Context, queue QueueIdentity, bucket string) error {
	attrs, err := c.Clients.SQS.GetQueueAttributes(ctx, queue.URL)
	if err != nil {
		return stepError("read queue policy", queue.Name, err)
	}

	sourceARN := bucketARN(bucket)
	if policyAllowsSource(attrs.Policy, sourceARN) {
		c.Console.Skip(fmt.Sprintf("Queue policy for '%s'", bucket))
		return nil
	}

	policy, err := queueSendPolicy(queue.ARN, sourceARN)
	if err != nil {
		return stepError("build queue policy", queue.Name, err)
	}
	if err := c.Clients.SQS.SetQueuePolicy(ctx, queue.URL, policy); err != nil {
		return stepError("apply queue policy", queue.Name, err)
	}
	c.Console.Success(fmt.Sprintf("Applied queue policy: %s <- %s", queue.Name, bucket))
	return nil
}
