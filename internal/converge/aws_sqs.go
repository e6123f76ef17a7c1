// Where: internal/converge/aws_sqs.go
// What: SQS adapter for the SQSAPI interface.
// Why: Map internal converger types to SDK types.
package converge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type awsSQSClient struct {
	client *sqs.Client
}

func (c awsSQSClient) GetQueueURL(ctx context.Context, name string) (string, bool, error) {
	if c.client == nil {
		return "", false, fmt.Errorf("sqs client is nil")
	}
	resp, err := c.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return aws.ToString(resp.QueueUrl), true, nil
}

func (c awsSQSClient) CreateQueue(ctx context.Context, name string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("sqs client is nil")
	}
	resp, err := c.client.CreateQueue(ctx, &sqs.CreateQueueInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		return "", asConflict(err)
	}
	return aws.ToString(resp.QueueUrl), nil
}

func (c awsSQSClient) GetQueueAttributes(ctx context.Context, queueURL string) (QueueAttributes, error) {
	if c.client == nil {
		return QueueAttributes{}, fmt.Errorf("sqs client is nil")
	}
	resp, err := c.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl: aws.String(queueURL),
		AttributeNames: []types.QueueAttributeName{
			types.QueueAttributeNameQueueArn,
			types.QueueAttributeNamePolicy,
		},
	})
	if err != nil {
		return QueueAttributes{}, err
	}
	return QueueAttributes{
		ARN:    resp.Attributes[string(types.QueueAttributeNameQueueArn)],
		Policy: resp.Attributes[string(types.QueueAttributeNamePolicy)],
	}, nil
}

func (c awsSQSClient) SetQueuePolicy(ctx context.Context, queueURL, policy string) error {
	if c.client == nil {
		return fmt.Errorf("sqs client is nil")
	}
	_, err := c.client.SetQueueAttributes(ctx, &sqs.SetQueueAttributesInput{
		QueueUrl: aws.String(queueURL),
		Attributes: map[string]string{
			string(types.QueueAttributeNamePolicy): policy,
		},
	})
	return err
}
