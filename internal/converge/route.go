// Where: internal/converge/route.go
// What: Gateway resource, method, and integration convergence.
// Why: A resource can exist without a method, and a method without an
//      integration; each is probed and created independently.
package converge

import (
	"context"
	"errors"
	"fmt"
)

// EnsureRoute converges one path → function binding: the gateway resource for
// the path segment, the HTTP method on it, and the proxy integration behind
// the method. Returns the adopted resource identity for the permission step.
func (c *Converger) EnsureRoute(
	ctx context.Context,
	api APIIdentity,
	route, method string,
	fn FunctionIdentity,
) (ResourceIdentity, error) {
	resource, err := c.ensureResource(ctx, api, route)
	if err != nil {
		return ResourceIdentity{}, err
	}
	if err := c.ensureMethod(ctx, api.ID, resource, method); err != nil {
		return ResourceIdentity{}, err
	}
	if err := c.ensureIntegration(ctx, api.ID, resource, method, fn); err != nil {
		return ResourceIdentity{}, err
	}
	return resource, nil
}

func (c *Converger) ensureResource(ctx context.Context, api APIIdentity, route string) (ResourceIdentity, error) {
	path := "/" + route
	resources, err := c.Clients.Gateway.GetResources(ctx, api.ID)
	if err != nil {
		return ResourceIdentity{}, stepError("probe resource", path, err)
	}
	for _, res := range resources {
		if res.Path == path {
			c.Console.Skip(fmt.Sprintf("Resource '%s'", path))
			return res, nil
		}
	}

	resource, err := c.Clients.Gateway.CreateResource(ctx, api.ID, api.RootResourceID, route)
	if err != nil {
		return ResourceIdentity{}, stepError("create resource", path, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created resource: %s", path))
	return resource, nil
}

func (c *Converger) ensureMethod(ctx context.Context, apiID string, resource ResourceIdentity, method string) error {
	key := method + " " + resource.Path
	exists, err := c.Clients.Gateway.MethodExists(ctx, apiID, resource.ID, method)
	if err != nil {
		return stepError("probe method", key, err)
	}
	if exists {
		c.Console.Skip(fmt.Sprintf("Method '%s'", key))
		return nil
	}

	if err := c.Clients.Gateway.PutMethod(ctx, apiID, resource.ID, method); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Method '%s'", key))
			return nil
		}
		return stepError("create method", key, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created method: %s", key))
	return nil
}

func (c *Converger) ensureIntegration(
	ctx context.Context,
	apiID string,
	resource ResourceIdentity,
	method string,
	fn FunctionIdentity,
) error {
	key := method + " " + resource.Path
	exists, err := c.Clients.Gateway.IntegrationExists(ctx, apiID, resource.ID, method)
	if err != nil {
		return stepError("probe integration", key, err)
	}
	if exists {
		c.Console.Skip(fmt.Sprintf("Integration '%s'", key))
		return nil
	}

	uri := invocationARN(c.Region, fn.ARN)
	if err := c.Clients.Gateway.PutIntegration(ctx, apiID, resource.ID, method, uri); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.Console.Skip(fmt.Sprintf("Integration '%s'", key))
			return nil
		}
		return stepError("create integration", key, err)
	}
	c.created()
	c.Console.Success(fmt.Sprintf("Created integration: %s -> %s", key, fn.Name))
	return nil
}
