package storage_test

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves the handful of path-style object calls S3Store makes.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string][]byte
}

type listResult struct {
	XMLName     xml.Name `xml:"ListBucketResult"`
	Name        string   `xml:"Name"`
	Prefix      string   `xml:"Prefix"`
	KeyCount    int      `xml:"KeyCount"`
	MaxKeys     int      `xml:"MaxKeys"`
	IsTruncated bool     `xml:"IsTruncated"`
	Contents    []struct {
		Key string `xml:"Key"`
	} `xml:"Contents"`
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	root := "/" + f.bucket
	if r.URL.Path == root || r.URL.Path == root+"/" {
		prefix := r.URL.Query().Get("prefix")
		res := listResult{Name: f.bucket, Prefix: prefix, MaxKeys: 1000}
		var names []string
		for k := range f.objects {
			if strings.HasPrefix(k, prefix) {
				names = append(names, k)
			}
		}
		sort.Strings(names)
		for _, k := range names {
			res.Contents = append(res.Contents, struct {
				Key string `xml:"Key"`
			}{Key: k})
		}
		res.KeyCount = len(names)
		w.Header().Set("Content-Type", "application/xml")
		_ = xml.NewEncoder(w).Encode(res)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, root+"/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newS3Store(t *testing.T) (*storage.S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{bucket: "storefront", objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:                     "ap-southeast-2",
		BaseEndpoint:               sdkaws.String(srv.URL),
		UsePathStyle:               true,
		Credentials:                sdkaws.AnonymousCredentials{},
		RequestChecksumCalculation: sdkaws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: sdkaws.ResponseChecksumValidationWhenRequired,
	})
	return storage.NewS3Store(client, "storefront", "/lists/"), fake
}

func TestS3Store_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, fake := newS3Store(t)

	_, found, err := s.Get(ctx, "cus_1:3dbyte-wishlist")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "cus_1:3dbyte-wishlist", []byte(`[{"id":"prod_1"}]`)))
	assert.Contains(t, fake.objects, "lists/cus_1:3dbyte-wishlist.json")

	got, found, err := s.Get(ctx, "cus_1:3dbyte-wishlist")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"id":"prod_1"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "cus_1:3dbyte-wishlist"))
	_, found, err = s.Get(ctx, "cus_1:3dbyte-wishlist")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestS3Store_Keys(t *testing.T) {
	ctx := context.Background()
	s, _ := newS3Store(t)

	for _, k := range []string{"cus_2:3dbyte-compare", "cus_1:inventory_alerts", "cus_1:3dbyte-wishlist"} {
		require.NoError(t, s.Set(ctx, k, []byte(`[]`)))
	}

	keys, err := s.Keys(ctx, "cus_1:")
	require.NoError(t, err)
	assert.Equal(t, []string{"cus_1:3dbyte-wishlist", "cus_1:inventory_alerts"}, keys)

	var _ storage.Lister = s
}

func TestOpen_S3RequiresClientAndBucket(t *testing.T) {
	_, _, err := storage.Open(context.Background(), storage.Options{Backend: storage.BackendS3, S3Bucket: "b"})
	assert.Error(t, err)
}
