package aws_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"github.com/stretchr/testify/assert"
)

func TestRecordCountAsync_DoesNotWaitForCloudWatch(t *testing.T) {
	got := make(chan struct{}, 8)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- struct{}{}
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(release)

	t.Setenv("CLOUDWATCH_ENABLED", "true")
	m := awspkg.NewMetricsClient(sdkaws.Config{
		Region:       "ap-southeast-2",
		Credentials:  sdkaws.AnonymousCredentials{},
		BaseEndpoint: sdkaws.String(srv.URL),
	})

	start := time.Now()
	m.RecordCountAsync(awspkg.MetricContentCacheHits, map[string]string{"Service": "storefront-service"})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("metric was never sent")
	}
}

func TestRecordCountAsync_DisabledOrNil(t *testing.T) {
	var nilClient *awspkg.MetricsClient
	assert.NotPanics(t, func() { nilClient.RecordCountAsync(awspkg.MetricContentCacheMisses, nil) })

	t.Setenv("CLOUDWATCH_ENABLED", "false")
	m := awspkg.NewMetricsClient(sdkaws.Config{Region: "ap-southeast-2"})
	assert.False(t, m.IsEnabled())
	assert.NotPanics(t, func() { m.RecordCountAsync(awspkg.MetricContentCacheMisses, nil) })
}
