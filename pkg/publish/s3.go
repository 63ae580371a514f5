package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/df07/go-tiny-raycaster/pkg/output"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 60 * time.Second

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
}

// NewS3Publisher creates a publisher writing to bucket
func NewS3Publisher(client s3iface.S3API, bucket string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket}
}

// NewS3Client creates a client from the default credential chain
func NewS3Client(region string) (s3iface.S3API, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// Publish uploads the file at path under key and returns its s3:// URI.
// The content type follows the file extension.
func (p *S3Publisher) Publish(ctx context.Context, key, path string) (string, error) {
	format, err := output.FormatFromPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(format.ContentType()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}
