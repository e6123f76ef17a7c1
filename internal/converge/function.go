// Where: internal/converge/function.go
// What: Function deployment convergence.
// Why: Existence gates update-vs-create; code and configuration are reapplied
//      unconditionally on every run.
package converge

import (
	"context"
	"errors"
	"fmt"

	"github.com/poruru/image-service-deploy/internal/manifest"
)

// EnsureFunction deploys one function. The environment is built before any
// control-plane call, so a malformed merge never leaves a half-deployed
// function behind.
func (c *Converger) EnsureFunction(
	ctx context.Context,
	name string,
	spec manifest.FunctionSpec,
	env *EnvironmentBuilder,
) (FunctionIdentity, error) {
	variables, err := env.Build(name)
	if err != nil {
		return FunctionIdentity{}, stepError("build environment", name, err)
	}

	zipFile, err := c.ReadCode(spec.CodeURI)
	if err != nil {
		return FunctionIdentity{}, stepError("load code package", name, err)
	}

	identity, found, err := c.Clients.Lambda.GetFunction(ctx, name)
	if err != nil {
		return FunctionIdentity{}, stepError("probe function", name, err)
	}

	if !found {
		identity, err = c.Clients.Lambda.CreateFunction(ctx, FunctionCreateInput{
			Name:        name,
			Runtime:     spec.Runtime,
			Handler:     spec.Handler,
			Role:        executionRoleARN(c.AccountID),
			Timeout:     spec.Timeout,
			Environment: variables,
			ZipFile:     zipFile,
		})
		if err != nil {
			if !errors.Is(err, ErrAlreadyExists) {
				return FunctionIdentity{}, stepError("create function", name, err)
			}
			// Created by a concurrent run between probe and create; adopt it
			// and fall through to the unconditional update path.
			identity, _, err = c.Clients.Lambda.GetFunction(ctx, name)
			if err != nil {
				return FunctionIdentity{}, stepError("adopt function", name, err)
			}
		} else {
			c.created()
			c.Console.Success(fmt.Sprintf("Created function: %s", name))
			return identity, nil
		}
	}

	// Code content is not hashed or diffed; re-upload every run.
	if err := c.Clients.Lambda.UpdateFunctionCode(ctx, name, zipFile); err != nil {
		return FunctionIdentity{}, stepError("update function code", name, err)
	}
	config := FunctionConfigInput{
		Name:        name,
		Handler:     spec.Handler,
		Timeout:     spec.Timeout,
		Environment: variables,
	}
	if err := c.Clients.Lambda.UpdateFunctionConfiguration(ctx, config); err != nil {
		return FunctionIdentity{}, stepError("update function config", name, err)
	}
	c.Console.Success(fmt.Sprintf("Updated function: %s", name))
	return identity, nil
}
