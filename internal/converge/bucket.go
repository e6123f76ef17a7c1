// Where: internal/converge/bucket.go
// What: Bucket convergence.
// Why: Bucket existence is boolean; adopt or create, never mutate.
package converge

import (
	"context"
	"errors"
	"fmt"
)

// EnsureBucket converges the root object bucket.
func (c *Converger) EnsureBucket(ctx context.Context, name string) error {
	exists, err := c.Clients.S3.BucketExists(ctx, name)
	if err != nil {
		return stepError("probe bucket", name, err)
	}
	if exists {
		c.Console.Skip(fmt.Sprintf("Bucket '%s'", name))
		return nil
	}

	if err := c.Clients.S3.CreateBucket(ctx, name); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Bucket '%s'", name))
			return nil
		}
		return stepError("create bucket", name, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created bucket: %s", name))
	return nil
}
