// Where: internal/converge/arn.go
// What: ARN construction helpers.
// Why: Keep resource naming rules in one place.
package converge

import "fmt"

func bucketARN(name string) string {
	return "arn:aws:s3:::" + name
}

func invocationARN(region, functionARN string) string {
	return fmt.Sprintf(
		"arn:aws:apigateway:%s:lambda:path/2015-03-31/functions/%s/invocations",
		region, functionARN,
	)
}

func methodSourceARN(region, accountID, apiID, method, route string) string {
	return fmt.Sprintf(
		"arn:aws:execute-api:%s:%s:%s/*/%s/%s",
		region, accountID, apiID, method, route,
	)
}

func executionRoleARN(accountID string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/lambda-execution-role", accountID)
}

// invokeStatementID is the per-function statement key inside the function's
// access policy. Re-adding it is the conflict the permission step tolerates.
func invokeStatementID(functionName string) string {
	return functionName + "-apigateway-invoke"
}
