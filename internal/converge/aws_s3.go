// Where: internal/converge/aws_s3.go
// What: S3 adapter for the S3API interface.
// Why: Map internal converger types to SDK types.
package converge

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type awsS3Client struct {
	client *s3.Client
}

func (c awsS3Client) BucketExists(ctx context.Context, name string) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c awsS3Client) CreateBucket(ctx context.Context, name string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	return asConflict(err)
}

func (c awsS3Client) NotificationQueueARNs(ctx context.Context, bucket string) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	resp, err := c.client.GetBucketNotificationConfiguration(ctx,
		&s3.GetBucketNotificationConfigurationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return nil, err
	}
	arns := make([]string, 0, len(resp.QueueConfigurations))
	for _, qc := range resp.QueueConfigurations {
		if qc.QueueArn != nil {
			arns = append(arns, *qc.QueueArn)
		}
	}
	return arns, nil
}

func (c awsS3Client) PutQueueNotification(ctx context.Context, bucket, queueARN string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.PutBucketNotificationConfiguration(ctx,
		&s3.PutBucketNotificationConfigurationInput{
			Bucket: aws.String(bucket),
			NotificationConfiguration: &s3types.NotificationConfiguration{
				QueueConfigurations: []s3types.QueueConfiguration{
					{
						QueueArn: aws.String(queueARN),
						Events:   []s3types.Event{objectCreatedEvents},
					},
				},
			},
		})
	return err
}
