// Where: internal/converge/mapping.go
// What: Event source mapping convergence.
// Why: At most one mapping per (function, source ARN) pair.
package converge

import (
	"context"
	"errors"
	"fmt"
)

// EnsureMapping binds the queue to the listener function. New mappings start
// from the latest position so historical backlog is not replayed.
func (c *Converger) EnsureMapping(ctx context.Context, functionName string, queue QueueIdentity) error {
	key := functionName + " <- " + queue.Name
	exists, err := c.Clients.Lambda.MappingExists(ctx, functionName, queue.ARN)
	if err != nil {
		return stepError("probe event source mapping", key, err)
	}
	if exists {
		c.Console.Skip(fmt.Sprintf("Mapping '%s'", key))
		return nil
	}

	input := MappingInput{
		FunctionName:     functionName,
		SourceARN:        queue.ARN,
		BatchSize:        mappingBatchSize,
		StartingPosition: startPositionLatest,
	}
	if err := c.Clients.Lambda.CreateMapping(ctx, input); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Mapping '%s'", key))
			return nil
		}
		return stepError("create event source mapping", key, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created event source mapping: %s", key))
	return nil
}
