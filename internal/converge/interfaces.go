// Where: internal/converge/interfaces.go
// What: Narrow control-plane interfaces consumed by the converger.
// Why: Keep the convergence logic testable against fakes and free of SDK types.
package converge

import "context"

// Probes return a found flag instead of an error for absence: the control
// plane's "not found" response is an expected branch, never a failure.
// Transport or auth failures still propagate as errors.

// S3API covers bucket existence, creation, and notification wiring.
type S3API interface {
	BucketExists(ctx context.Context, name string) (bool, error)
	CreateBucket(ctx context.Context, name string) error
	NotificationQueueARNs(ctx context.Context, bucket string) ([]string, error)
	PutQueueNotification(ctx context.Context, bucket, queueARN string) error
}

// DynamoDBAPI covers table existence and creation.
type DynamoDBAPI interface {
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, input TableCreateInput) error
}

// GatewayAPI covers the REST API shell, its resource tree, and deployments.
type GatewayAPI interface {
	FindRestAPIs(ctx context.Context, name string) ([]string, error)
	CreateRestAPI(ctx context.Context, name string) (string, error)
	GetResources(ctx context.Context, apiID string) ([]ResourceIdentity, error)
	CreateResource(ctx context.Context, apiID, parentID, pathPart string) (ResourceIdentity, error)
	MethodExists(ctx context.Context, apiID, resourceID, method string) (bool, error)
	PutMethod(ctx context.Context, apiID, resourceID, method string) error
	IntegrationExists(ctx context.Context, apiID, resourceID, method string) (bool, error)
	PutIntegration(ctx context.Context, apiID, resourceID, method, invocationARN string) error
	CreateDeployment(ctx context.Context, apiID, stage string) error
}

// LambdaAPI covers function deployment, permissions, and event wiring.
type LambdaAPI interface {
	GetFunction(ctx context.Context, name string) (FunctionIdentity, bool, error)
	CreateFunction(ctx context.Context, input FunctionCreateInput) (FunctionIdentity, error)
	UpdateFunctionCode(ctx context.Context, name string, zipFile []byte) error
	UpdateFunctionConfiguration(ctx context.Context, input FunctionConfigInput) error
	GetPolicy(ctx context.Context, name string) (string, bool, error)
	AddPermission(ctx context.Context, input PermissionInput) error
	MappingExists(ctx context.Context, functionName, sourceARN string) (bool, error)
	CreateMapping(ctx context.Context, input MappingInput) error
}

// SQSAPI covers queue creation and access policy management.
type SQSAPI interface {
	GetQueueURL(ctx context.Context, name string) (string, bool, error)
	CreateQueue(ctx context.Context, name string) (string, error)
	GetQueueAttributes(ctx context.Context, queueURL string) (QueueAttributes, error)
	SetQueuePolicy(ctx context.Context, queueURL, policy string) error
}

// Clients bundles the five service interfaces a convergence run needs.
type Clients struct {
	S3      S3API
	Dynamo  DynamoDBAPI
	Gateway GatewayAPI
	Lambda  LambdaAPI
	SQS     SQSAPI
}
