// Where: internal/converge/aws_dynamo.go
// What: DynamoDB adapter for the DynamoDBAPI interface.
// Why: Map internal converger types to SDK types.
package converge

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) TableExists(ctx context.Context, name string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c awsDynamoClient) CreateTable(ctx context.Context, input TableCreateInput) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	awsInput, err := buildCreateTableInput(input)
	if err != nil {
		return err
	}
	_, err = c.client.CreateTable(ctx, awsInput)
	return asConflict(err)
}

func buildCreateTableInput(input TableCreateInput) (*dynamodb.CreateTableInput, error) {
	if input.HashKey == "" {
		return nil, fmt.Errorf("hash key is required")
	}
	billingMode, err := mapBillingMode(input.BillingMode)
	if err != nil {
		return nil, err
	}

	keySchema := []types.KeySchemaElement{
		{AttributeName: aws.String(input.HashKey), KeyType: types.KeyTypeHash},
	}
	attrDefs := []types.AttributeDefinition{
		{AttributeName: aws.String(input.HashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	if input.RangeKey != "" {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(input.RangeKey),
			KeyType:       types.KeyTypeRange,
		})
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(input.RangeKey),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}

	out := &dynamodb.CreateTableInput{
		TableName:            aws.String(input.TableName),
		KeySchema:            keySchema,
		AttributeDefinitions: attrDefs,
		BillingMode:          billingMode,
	}
	if billingMode == types.BillingModeProvisioned {
		out.ProvisionedThroughput = &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		}
	}
	return out, nil
}

func mapBillingMode(value string) (types.BillingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PAY_PER_REQUEST", "":
		return types.BillingModePayPerRequest, nil
	case "PROVISIONED":
		return types.BillingModeProvisioned, nil
	default:
		return "", fmt.Errorf("unsupported billing mode: %s", value)
	}
}
