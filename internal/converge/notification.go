// Where: internal/converge/notification.go
// What: Bucket notification convergence.
// Why: The notification configuration has whole-document overwrite semantics;
//      check before applying, and warn when an overwrite will drop targets.
package converge

import (
	"context"
	"fmt"
)

// EnsureNotification wires the bucket's object-created events to the queue.
// Applying the configuration replaces any existing one for the bucket. That
// is intentional for this single-queue deployment model, but worth a warning
// when other targets are about to be dropped.
func (c *Converger) EnsureNotification(ctx context.Context, bucket string, queue QueueIdentity) error {
	existing, err := c.Clients.S3.NotificationQueueARNs(ctx, bucket)
	if err != nil {
		return stepError("probe bucket notification", bucket, err)
	}
	for _, arn := range existing {
		if arn == queue.ARN {
			c.Console.Skip(fmt.Sprintf("Notification '%s' -> '%s'", bucket, queue.Name))
			return nil
		}
	}
	if len(existing) > 0 {
		c.Console.Warn(fmt.Sprintf(
			"replacing %d existing notification target(s) on bucket '%s'",
			len(existing), bucket,
		))
	}

	if err := c.Clients.S3.PutQueueNotification(ctx, bucket, queue.ARN); err != nil {
		return stepError("apply bucket notification", bucket, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Wired notification: %s -> %s", bucket, queue.Name))
	return nil
}
