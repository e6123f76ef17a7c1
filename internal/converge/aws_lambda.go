// Where: internal/converge/aws_lambda.go
// What: Lambda adapter for the LambdaAPI interface.
// Why: Map internal converger types to SDK types.
package converge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

type awsLambdaClient struct {
	client *lambda.Client
}

func (c awsLambdaClient) GetFunction(ctx context.Context, name string) (FunctionIdentity, bool, error) {
	if c.client == nil {
		return FunctionIdentity{}, false, fmt.Errorf("lambda client is nil")
	}
	resp, err := c.client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return FunctionIdentity{}, false, nil
		}
		return FunctionIdentity{}, false, err
	}
	identity := FunctionIdentity{Name: name}
	if resp.Configuration != nil {
		identity.ARN = aws.ToString(resp.Configuration.FunctionArn)
	}
	return identity, true, nil
}

func (c awsLambdaClient) CreateFunction(ctx context.Context, input FunctionCreateInput) (FunctionIdentity, error) {
	if c.client == nil {
		return FunctionIdentity{}, fmt.Errorf("lambda client is nil")
	}
	resp, err := c.client.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(input.Name),
		Runtime:      types.Runtime(input.Runtime),
		Handler:      aws.String(input.Handler),
		Role:         aws.String(input.Role),
		Timeout:      aws.Int32(input.Timeout),
		Code:         &types.FunctionCode{ZipFile: input.ZipFile},
		Environment:  &types.Environment{Variables: input.Environment},
	})
	if err != nil {
		return FunctionIdentity{}, asConflict(err)
	}
	return FunctionIdentity{Name: input.Name, ARN: aws.ToString(resp.FunctionArn)}, nil
}

func (c awsLambdaClient) UpdateFunctionCode(ctx context.Context, name string, zipFile []byte) error {
	if c.client == nil {
		return fmt.Errorf("lambda client is nil")
	}
	_, err := c.client.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		ZipFile:      zipFile,
	})
	return err
}

func (c awsLambdaClient) UpdateFunctionConfiguration(ctx context.Context, input FunctionConfigInput) error {
	if c.client == nil {
		return fmt.Errorf("lambda client is nil")
	}
	_, err := c.client.UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(input.Name),
		Handler:      aws.String(input.Handler),
		Timeout:      aws.Int32(input.Timeout),
		Environment:  &types.Environment{Variables: input.Environment},
	})
	return err
}

func (c awsLambdaClient) GetPolicy(ctx context.Context, name string) (string, bool, error) {
	if c.client == nil {
		return "", false, fmt.Errorf("lambda client is nil")
	}
	resp, err := c.client.GetPolicy(ctx, &lambda.GetPolicyInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return aws.ToString(resp.Policy), true, nil
}

func (c awsLambdaClient) AddPermission(ctx context.Context, input PermissionInput) error {
	if c.client == nil {
		return fmt.Errorf("lambda client is nil")
	}
	_, err := c.client.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: aws.String(input.FunctionName),
		StatementId:  aws.String(input.StatementID),
		Action:       aws.String(input.Action),
		Principal:    aws.String(input.Principal),
		SourceArn:    aws.String(input.SourceARN),
	})
	return asConflict(err)
}

func (c awsLambdaClient) MappingExists(ctx context.Context, functionName, sourceARN string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("lambda client is nil")
	}
	resp, err := c.client.ListEventSourceMappings(ctx, &lambda.ListEventSourceMappingsInput{
		FunctionName:   aws.String(functionName),
		EventSourceArn: aws.String(sourceARN),
	})
	if err != nil {
		return false, err
	}
	return len(resp.EventSourceMappings) > 0, nil
}

func (c awsLambdaClient) CreateMapping(ctx context.Context, input MappingInput) error {
	if c.client == nil {
		return fmt.Errorf("lambda client is nil")
	}
	_, err := c.client.CreateEventSourceMapping(ctx, &lambda.CreateEventSourceMappingInput{
		FunctionName:     aws.String(input.FunctionName),
		EventSourceArn:   aws.String(input.SourceARN),
		BatchSize:        aws.Int32(input.BatchSize),
		StartingPosition: types.EventSourcePosition(input.StartingPosition),
		Enabled:          aws.Bool(true),
	})
	return asConflict(err)
}
