// Command migrate-liststore copies shopper list data (wishlist, compare,
// inventory alerts, pending gift card, cart id) from one storage backend to
// another, for example when moving from the file store to DynamoDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/logger"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var src, dst storage.Options
	var prefix string
	var dryRun bool
	flag.StringVar(&src.Backend, "from", os.Getenv("STORAGE_BACKEND"), "source backend (file, redis, dynamodb, s3)")
	flag.StringVar(&src.Dir, "from-dir", os.Getenv("STORAGE_DIR"), "source directory for the file backend")
	flag.StringVar(&src.RedisURL, "from-redis", os.Getenv("REDIS_URL"), "source Redis URL")
	flag.StringVar(&src.DynamoTable, "from-table", os.Getenv("DYNAMODB_TABLE"), "source DynamoDB table")
	flag.StringVar(&src.S3Bucket, "from-bucket", os.Getenv("STORAGE_S3_BUCKET"), "source S3 bucket")
	flag.StringVar(&src.S3Prefix, "from-s3-prefix", os.Getenv("STORAGE_S3_PREFIX"), "source S3 key prefix")
	flag.StringVar(&dst.Backend, "to", "", "destination backend")
	flag.StringVar(&dst.Dir, "to-dir", "", "destination directory for the file backend")
	flag.StringVar(&dst.RedisURL, "to-redis", "", "destination Redis URL")
	flag.StringVar(&dst.DynamoTable, "to-table", "", "destination DynamoDB table")
	flag.StringVar(&dst.S3Bucket, "to-bucket", "", "destination S3 bucket")
	flag.StringVar(&dst.S3Prefix, "to-s3-prefix", "liststore", "destination S3 key prefix")
	flag.StringVar(&prefix, "prefix", "", "only copy keys with this prefix (e.g. a shopper id)")
	flag.BoolVar(&dryRun, "dry-run", false, "list keys without writing")
	flag.Parse()

	if src.Backend == "" || dst.Backend == "" {
		log.Fatal("-from and -to must be set")
	}
	if src == dst {
		log.Fatal("source and destination are the same backend")
	}

	zl, err := logger.New(os.Getenv("APP_ENV"), nil)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if needsAWS(src.Backend) || needsAWS(dst.Backend) {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			zl.Fatal("aws config", zap.Error(err))
		}
		ddb := awspkg.NewDynamoDBClient(awsCfg)
		s3c := awspkg.NewS3Client(awsCfg)
		src.Dynamo, dst.Dynamo = ddb, ddb
		src.S3, dst.S3 = s3c, s3c
	}

	from, closeFrom, err := storage.Open(ctx, src)
	if err != nil {
		zl.Fatal("open source", zap.String("backend", src.Backend), zap.Error(err))
	}
	defer closeFrom()
	to, closeTo, err := storage.Open(ctx, dst)
	if err != nil {
		zl.Fatal("open destination", zap.String("backend", dst.Backend), zap.Error(err))
	}
	defer closeTo()

	copied, err := migrate(ctx, from, to, prefix, dryRun, zl)
	if err != nil {
		zl.Fatal("migration failed", zap.Int("copied", copied), zap.Error(err))
	}
	zl.Info("Migration complete",
		zap.String("from", src.Backend),
		zap.String("to", dst.Backend),
		zap.Int("copied", copied),
		zap.Bool("dry_run", dryRun),
	)
}

func needsAWS(backend string) bool {
	return backend == storage.BackendDynamo || backend == storage.BackendS3
}

// migrate copies every key under prefix from src to dst and returns how many
// values were written. Values that vanish between listing and reading are
// skipped.
func migrate(ctx context.Context, src, dst storage.Store, prefix string, dryRun bool, zl *zap.Logger) (int, error) {
	lister, ok := src.(storage.Lister)
	if !ok {
		return 0, storage.ErrNotListable
	}
	keys, err := lister.Keys(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}

	copied := 0
	for _, key := range keys {
		value, found, err := src.Get(ctx, key)
		if err != nil {
			return copied, fmt.Errorf("read %s: %w", key, err)
		}
		if !found {
			continue
		}
		if dryRun {
			zl.Info("Would copy", zap.String("key", key), zap.Int("bytes", len(value)))
			continue
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return copied, fmt.Errorf("write %s: %w", key, err)
		}
		copied++
	}
	return copied, nil
}
