package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3LinkIssuer produces presigned GET URLs for objects in a fixed
// bucket. URLs expire after the configured TTL.
type S3LinkIssuer struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

func NewS3LinkIssuer(ctx context.Context, bucket, region string, ttl time.Duration) (*S3LinkIssuer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3LinkIssuer{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		ttl:       ttl,
	}, nil
}

func (i *S3LinkIssuer) SignedURL(ctx context.Context, key string) (string, error) {
	req, err := i.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(i.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(i.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %q: %w", key, err)
	}
	return req.URL, nil
}
