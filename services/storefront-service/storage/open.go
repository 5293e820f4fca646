package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendDynamo = "dynamodb"
	BackendS3     = "s3"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Dir         string
	RedisURL    string
	RedisTTL    time.Duration
	DynamoTable string
	Dynamo      *dynamodb.Client
	S3Bucket    string
	S3Prefix    string
	S3          *s3.Client
}

// Open builds the backend named by opts.Backend. The returned close func
// releases any connection the backend holds.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendFile:
		fs, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	case BackendRedis:
		client, err := NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, opts.RedisTTL), client.Close, nil
	case BackendDynamo:
		if opts.Dynamo == nil || opts.DynamoTable == "" {
			return nil, nil, fmt.Errorf("dynamodb backend needs a client and a table name")
		}
		return NewDynamoStore(opts.Dynamo, opts.DynamoTable), noop, nil
	case BackendS3:
		if opts.S3 == nil || opts.S3Bucket == "" {
			return nil, nil, fmt.Errorf("s3 backend needs a client and a bucket name")
		}
		return NewS3Store(opts.S3, opts.S3Bucket, opts.S3Prefix), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
