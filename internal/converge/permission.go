// Where: internal/converge/permission.go
// What: Invoke permission convergence.
// Why: Re-adding an existing statement id is an error on the control plane;
//      detect it first, and treat a lost race as benign.
package converge

import (
	"context"
	"errors"
	"fmt"
)

// EnsurePermission grants the gateway principal invoke access on the
// function, keyed by a per-function statement id.
func (c *Converger) EnsurePermission(
	ctx context.Context,
	apiID, method, route string,
	fn FunctionIdentity,
) error {
	sid := invokeStatementID(fn.Name)

	policy, found, err := c.Clients.Lambda.GetPolicy(ctx, fn.Name)
	if err != nil {
		return stepError("probe permission", sid, err)
	}
	if found && policyHasStatementID(policy, sid) {
		c.Console.Skip(fmt.Sprintf("Permission '%s'", sid))
		return nil
	}

	input := PermissionInput{
		FunctionName: fn.Name,
		StatementID:  sid,
		Action:       invokeAction,
		Principal:    gatewayPrincipal,
		SourceARN:    methodSourceARN(c.Region, c.AccountID, apiID, method, route),
	}
	if err := c.Clients.Lambda.AddPermission(ctx, input); err != nil {
		// A prior run may have won the race between probe and grant; that
		// conflict is tolerable. Anything else surfaces.
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Permission '%s'", sid))
			return nil
		}
		return stepError("grant permission", sid, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Granted invoke permission: %s", sid))
	return nil
}
