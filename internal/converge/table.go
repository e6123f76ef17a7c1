// Where: internal/converge/table.go
// What: Metadata table convergence.
// Why: Table schema is immutable after creation; convergence only checks presence.
package converge

import (
	"context"
	"errors"
	"fmt"

	"github.com/poruru/image-service-deploy/internal/manifest"
)

// EnsureTable converges the image metadata table.
func (c *Converger) EnsureTable(ctx context.Context, spec manifest.TableSpec) error {
	exists, err := c.Clients.Dynamo.TableExists(ctx, spec.Name)
	if err != nil {
		return stepError("probe table", spec.Name, err)
	}
	if exists {
		c.Console.Skip(fmt.Sprintf("Table '%s'", spec.Name))
		return nil
	}

	input := TableCreateInput{
		TableName:   spec.Name,
		HashKey:     spec.HashKey,
		RangeKey:    spec.RangeKey,
		BillingMode: spec.BillingMode,
	}
	if err := c.Clients.Dynamo.CreateTable(ctx, input); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Table '%s'", spec.Name))
			return nil
		}
		return stepError("create table", spec.Name, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created table: %s", spec.Name))
	return nil
}
