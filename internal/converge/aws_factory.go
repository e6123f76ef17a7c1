// Where: internal/converge/aws_factory.go
// What: AWS client construction for the converger.
// Why: Encapsulate SDK configuration for local control-plane endpoints.
package converge

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/poruru/image-service-deploy/internal/constants"
)

// FactoryOptions configure control-plane client construction.
type FactoryOptions struct {
	Endpoint string
	Region   string
}

// NewClients builds the five adapters backed by real SDK clients pointed at
// the configured endpoint.
func NewClients(ctx context.Context, opts FactoryOptions) (Clients, error) {
	if opts.Endpoint == "" {
		return Clients{}, fmt.Errorf("control-plane endpoint is required")
	}
	if opts.Region == "" {
		opts.Region = constants.DefaultRegion
	}

	cfg, err := loadAWSConfig(ctx, opts.Region)
	if err != nil {
		return Clients{}, err
	}

	endpoint := aws.String(opts.Endpoint)
	return Clients{
		S3: awsS3Client{client: s3.NewFromConfig(cfg, func(options *s3.Options) {
			options.BaseEndpoint = endpoint
			options.UsePathStyle = true
		})},
		Dynamo: awsDynamoClient{client: dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
			options.BaseEndpoint = endpoint
		})},
		Gateway: awsGatewayClient{client: apigateway.NewFromConfig(cfg, func(options *apigateway.Options) {
			options.BaseEndpoint = endpoint
		})},
		Lambda: awsLambdaClient{client: lambda.NewFromConfig(cfg, func(options *lambda.Options) {
			options.BaseEndpoint = endpoint
		})},
		SQS: awsSQSClient{client: sqs.NewFromConfig(cfg, func(options *sqs.Options) {
			options.BaseEndpoint = endpoint
		})},
	}, nil
}

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKey(), secretKey(), "")
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func accessKey() string {
	if value := os.Getenv(constants.EnvAWSAccessKeyID); value != "" {
		return value
	}
	return constants.DefaultCredential
}

func secretKey() string {
	if value := os.Getenv(constants.EnvAWSSecretAccessKey); value != "" {
		return value
	}
	return constants.DefaultCredential
}
