// Where: internal/converge/policy.go
// What: IAM/SQS policy document inspection and construction.
// Why: Idempotency checks must survive formatting differences, so the
//      authoritative check parses the document; substring match is only a
//      fast path.
package converge

import (
	"encoding/json"
	"strings"
)

type policyDocument struct {
	Version   string
	Statement []policyStatement
}

type policyStatement struct {
	Sid       string
	Effect    string
	Principal any
	Action    any
	Resource  any
	Condition map[string]map[string]any
}

// UnmarshalJSON accepts both the single-object and array forms of the
// Statement field.
func (d *policyDocument) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version   string
		Statement json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Version = raw.Version
	if len(raw.Statement) == 0 {
		return nil
	}

	var list []policyStatement
	if err := json.Unmarshal(raw.Statement, &list); err == nil {
		d.Statement = list
		return nil
	}

	var single policyStatement
	if err := json.Unmarshal(raw.Statement, &single); err != nil {
		return err
	}
	d.Statement = []policyStatement{single}
	return nil
}

// policyHasStatementID reports whether the policy document contains a
// statement with the given Sid.
func policyHasStatementID(document, sid string) bool {
	if document == "" || sid == "" {
		return false
	}
	if !strings.Contains(document, sid) {
		return false
	}

	var doc policyDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		// Unparseable documents fall back to the substring result, matching
		// the tolerance of the original deployment flow.
		return true
	}
	for _, stmt := range doc.Statement {
		if stmt.Sid == sid {
			return true
		}
	}
	return false
}

// policyAllowsSource reports whether any statement in the document references
// the given source ARN, either as a resource, in an ArnEquals/ArnLike
// condition, or inside a string-valued field.
func policyAllowsSource(document, sourceARN string) bool {
	if document == "" || sourceARN == "" {
		return false
	}
	if !strings.Contains(document, sourceARN) {
		return false
	}

	var doc policyDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return true
	}
	for _, stmt := range doc.Statement {
		if valueContains(stmt.Resource, sourceARN) {
			return true
		}
		for _, cond := range stmt.Condition {
			for _, value := range cond {
				if valueContains(value, sourceARN) {
					return true
				}
			}
		}
	}
	return false
}

func valueContains(value any, target string) bool {
	switch v := value.(type) {
	case string:
		return strings.Contains(v, target)
	case []any:
		for _, item := range v {
			if valueContains(item, target) {
				return true
			}
		}
	}
	return false
}

// queueSendPolicy builds the access policy allowing the bucket to deliver
// object-created events to the queue.
func queueSendPolicy(queueARN, bucketARN string) (string, error) {
	doc := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Sid":       "AllowBucketNotifications",
				"Effect":    "Allow",
				"Principal": map[string]any{"Service": "s3.amazonaws.com"},
				"Action":    "sqs:SendMessage",
				"Resource":  queueARN,
				"Condition": map[string]any{
					"ArnEquals": map[string]any{"aws:SourceArn": bucketARN},
				},
			},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
