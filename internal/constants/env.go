// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Control plane configuration
	EnvLocalstackEndpoint = "LOCALSTACK_ENDPOINT"
	EnvAWSRegion          = "AWS_REGION"
	EnvAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"

	// Variables the Lambda handlers read
	EnvBucketName = "BUCKET_NAME"
	EnvTableName  = "TABLE_NAME"
)

const (
	// DefaultRegion matches the region the Lambda handlers fall back to.
	DefaultRegion = "us-east-1"

	// DefaultCredential is the static credential accepted by LocalStack.
	DefaultCredential = "test"
)
