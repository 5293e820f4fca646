package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps each key as one JSON object under a prefix in a bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	root   string
}

// NewS3Store stores objects at "<prefix>/<escaped key>.json". An empty prefix
// puts them at the bucket root.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	root := strings.Trim(prefix, "/")
	if root != "" {
		root += "/"
	}
	return &S3Store{client: client, bucket: bucket, root: root}
}

func (s *S3Store) objectKey(key string) string {
	return s.root + url.PathEscape(key) + ".json"
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	objKey := s.objectKey(key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &objKey})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("s3 GetObject failed: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read object %s: %w", objKey, err)
	}
	return body, true, nil
}

func (s *S3Store) Set(ctx context.Context, key string, value []byte) error {
	objKey := s.objectKey(key)
	contentType := "application/json"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &objKey,
		Body:        bytes.NewReader(value),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 PutObject failed: %w", err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	objKey := s.objectKey(key)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &objKey}); err != nil {
		return fmt.Errorf("s3 DeleteObject failed: %w", err)
	}
	return nil
}

// Keys lists the stored keys starting with prefix.
func (s *S3Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	listPrefix := s.root + url.PathEscape(prefix)

	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{Bucket: &s.bucket, Prefix: &listPrefix})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 ListObjectsV2 failed: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || !strings.HasSuffix(*obj.Key, ".json") {
				continue
			}
			key, err := url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(*obj.Key, s.root), ".json"))
			if err != nil {
				continue
			}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
