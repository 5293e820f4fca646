package aws

import (
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client creates a new S3 client from AWS config. Path-style addressing
// is used when a custom endpoint is configured, since LocalStack does not
// serve virtual-hosted buckets.
func NewS3Client(cfg sdkaws.Config) *s3.Client {
	pathStyle := firstEnv("AWS_DYNAMODB_ENDPOINT", "AWS_SNS_ENDPOINT", "AWS_ENDPOINT") != "" ||
		os.Getenv("AWS_S3_FORCE_PATH_STYLE") == "true"
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
	})
}
