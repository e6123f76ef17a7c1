// Where: internal/converge/aws_gateway.go
// What: API Gateway adapter for the GatewayAPI interface.
// Why: Map internal converger types to SDK types.
package converge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
)

type awsGatewayClient struct {
	client *apigateway.Client
}

func (c awsGatewayClient) FindRestAPIs(ctx context.Context, name string) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("apigateway client is nil")
	}

	var ids []string
	var position *string
	for {
		resp, err := c.client.GetRestApis(ctx, &apigateway.GetRestApisInput{
			Position: position,
		})
		if err != nil {
			return nil, err
		}
		for _, api := range resp.Items {
			if api.Name != nil && *api.Name == name && api.Id != nil {
				ids = append(ids, *api.Id)
			}
		}
		if resp.Position == nil || len(resp.Items) == 0 {
			break
		}
		position = resp.Position
	}
	return ids, nil
}

func (c awsGatewayClient) CreateRestAPI(ctx context.Context, name string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("apigateway client is nil")
	}
	resp, err := c.client.CreateRestApi(ctx, &apigateway.CreateRestApiInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", asConflict(err)
	}
	return aws.ToString(resp.Id), nil
}

func (c awsGatewayClient) GetResources(ctx context.Context, apiID string) ([]ResourceIdentity, error) {
	if c.client == nil {
		return nil, fmt.Errorf("apigateway client is nil")
	}

	var out []ResourceIdentity
	var position *string
	for {
		resp, err := c.client.GetResources(ctx, &apigateway.GetResourcesInput{
			RestApiId: aws.String(apiID),
			Position:  position,
		})
		if err != nil {
			return nil, err
		}
		for _, res := range resp.Items {
			out = append(out, ResourceIdentity{
				ID:       aws.ToString(res.Id),
				Path:     aws.ToString(res.Path),
				ParentID: aws.ToString(res.ParentId),
			})
		}
		if resp.Position == nil || len(resp.Items) == 0 {
			break
		}
		position = resp.Position
	}
	return out, nil
}

func (c awsGatewayClient) CreateResource(ctx context.Context, apiID, parentID, pathPart string) (ResourceIdentity, error) {
	if c.client == nil {
		return ResourceIdentity{}, fmt.Errorf("apigateway client is nil")
	}
	resp, err := c.client.CreateResource(ctx, &apigateway.CreateResourceInput{
		RestApiId: aws.String(apiID),
		ParentId:  aws.String(parentID),
		PathPart:  aws.String(pathPart),
	})
	if err != nil {
		return ResourceIdentity{}, asConflict(err)
	}
	return ResourceIdentity{
		ID:       aws.ToString(resp.Id),
		Path:     aws.ToString(resp.Path),
		ParentID: aws.ToString(resp.ParentId),
	}, nil
}

func (c awsGatewayClient) MethodExists(ctx context.Context, apiID, resourceID, method string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("apigateway client is nil")
	}
	_, err := c.client.GetMethod(ctx, &apigateway.GetMethodInput{
		RestApiId:  aws.String(apiID),
		ResourceId: aws.String(resourceID),
		HttpMethod: aws.String(method),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c awsGatewayClient) PutMethod(ctx context.Context, apiID, resourceID, method string) error {
	if c.client == nil {
		return fmt.Errorf("apigateway client is nil")
	}
	_, err := c.client.PutMethod(ctx, &apigateway.PutMethodInput{
		RestApiId:         aws.String(apiID),
		ResourceId:        aws.String(resourceID),
		HttpMethod:        aws.String(method),
		AuthorizationType: aws.String(authorizationNone),
	})
	return asConflict(err)
}

func (c awsGatewayClient) IntegrationExists(ctx context.Context, apiID, resourceID, method string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("apigateway client is nil")
	}
	_, err := c.client.GetIntegration(ctx, &apigateway.GetIntegrationInput{
		RestApiId:  aws.String(apiID),
		ResourceId: aws.String(resourceID),
		HttpMethod: aws.String(method),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c awsGatewayClient) PutIntegration(ctx context.Context, apiID, resourceID, method, invocationARN string) error {
	if c.client == nil {
		return fmt.Errorf("apigateway client is nil")
	}
	_, err := c.client.PutIntegration(ctx, &apigateway.PutIntegrationInput{
		RestApiId:             aws.String(apiID),
		ResourceId:            aws.String(resourceID),
		HttpMethod:            aws.String(method),
		Type:                  types.IntegrationTypeAwsProxy,
		IntegrationHttpMethod: aws.String(integrationHTTPProxy),
		Uri:                   aws.String(invocationARN),
	})
	return asConflict(err)
}

func (c awsGatewayClient) CreateDeployment(ctx context.Context, apiID, stage string) error {
	if c.client == nil {
		return fmt.Errorf("apigateway client is nil")
	}
	_, err := c.client.CreateDeployment(ctx, &apigateway.CreateDeploymentInput{
		RestApiId: aws.String(apiID),
		StageName: aws.String(stage),
	})
	return err
}
