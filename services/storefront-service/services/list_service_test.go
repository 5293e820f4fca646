package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	apperrors "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/errors"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock SNS Publisher ---

type mockSNSPublisher struct {
	mu        sync.Mutex
	topics    []string
	messages  [][]byte
	returnErr error
}

func (m *mockSNSPublisher) Publish(_ context.Context, topicArn string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, topicArn)
	m.messages = append(m.messages, message)
	return m.returnErr
}

func newListService(sns *mockSNSPublisher) (*services.ListService, *storage.MemoryStore) {
	backend := storage.NewMemoryStore()
	if sns == nil {
		return services.NewListService(backend, nil, "", nil, zap.NewNop()), backend
	}
	return services.NewListService(backend, sns, "arn:aws:sns:ap-southeast-2:000000000000:inventory-alerts", nil, zap.NewNop()), backend
}

func TestListService_WishlistIsPerShopper(t *testing.T) {
	ctx := context.Background()
	svc, backend := newListService(nil)

	items, added, err := svc.AddToWishlist(ctx, "cus_1", models.WishlistItem{ID: "prod_1", Handle: "benchy", Title: "Benchy"})
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, items, 1)

	_, added, err = svc.AddToWishlist(ctx, "cus_1", models.WishlistItem{ID: "prod_1"})
	require.NoError(t, err)
	assert.False(t, added)

	assert.Empty(t, svc.Wishlist(ctx, "cus_2"))
	assert.True(t, svc.IsInWishlist(ctx, "cus_1", "prod_1"))

	_, ok, _ := backend.Get(ctx, "cus_1:"+storage.KeyWishlist)
	assert.True(t, ok)

	items, err = svc.RemoveFromWishlist(ctx, "cus_1", "prod_1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListService_CompareConcurrentAddsRespectCap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(nil)

	var wg sync.WaitGroup
	for n := 0; n < 10; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, _ = svc.AddToCompare(ctx, "cus_1", models.CompareItem{ID: fmt.Sprintf("prod_%d", n)})
		}(n)
	}
	wg.Wait()

	assert.Len(t, svc.Compare(ctx, "cus_1"), 4)
}

func TestListService_ToggleCompare(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(nil)

	items, in, err := svc.ToggleCompare(ctx, "cus_1", models.CompareItem{ID: "prod_1"})
	require.NoError(t, err)
	assert.True(t, in)
	assert.Len(t, items, 1)

	items, in, err = svc.ToggleCompare(ctx, "cus_1", models.CompareItem{ID: "prod_1"})
	require.NoError(t, err)
	assert.False(t, in)
	assert.Empty(t, items)
}

func TestListService_CreateAlertPublishesEvent(t *testing.T) {
	ctx := context.Background()
	sns := &mockSNSPublisher{}
	svc, _ := newListService(sns)

	alert, err := svc.CreateAlert(ctx, "cus_1", models.NewAlertRequest{
		ProductID: "prod_1", ProductHandle: "pla", ProductTitle: "PLA", VariantID: "var_1", Email: "a@b.co",
	})
	require.NoError(t, err)
	assert.True(t, svc.HasAlert(ctx, "cus_1", "prod_1", "var_1"))

	require.Len(t, sns.messages, 1)
	var event models.AlertCreatedEvent
	require.NoError(t, json.Unmarshal(sns.messages[0], &event))
	assert.Equal(t, services.EventAlertCreated, event.EventType)
	assert.Equal(t, "cus_1", event.UserID)
	assert.Equal(t, alert.ID, event.Alert.ID)
}

func TestListService_CreateAlertSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	sns := &mockSNSPublisher{returnErr: errors.New("throttled")}
	svc, _ := newListService(sns)

	_, err := svc.CreateAlert(ctx, "cus_1", models.NewAlertRequest{ProductID: "p", VariantID: "v", Email: "a@b.co"})
	require.NoError(t, err)
	assert.Len(t, svc.Alerts(ctx, "cus_1"), 1)
}

func TestListService_AlertRemovalAndNotify(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(nil)
	a, _ := svc.CreateAlert(ctx, "cus_1", models.NewAlertRequest{ProductID: "p1", VariantID: "v1"})
	_, _ = svc.CreateAlert(ctx, "cus_1", models.NewAlertRequest{ProductID: "p2", VariantID: "v2"})

	require.NoError(t, svc.MarkAlertNotified(ctx, "cus_1", a.ID))
	err := svc.MarkAlertNotified(ctx, "cus_1", "alert_nope")
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	items, err := svc.RemoveAlertFor(ctx, "cus_1", "p2", "v2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Notified)

	items, err = svc.RemoveAlert(ctx, "cus_1", a.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListService_GiftCard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newListService(nil)

	_, err := svc.PendingGiftCard(ctx, "cus_1")
	assert.ErrorIs(t, err, apperrors.ErrNoPendingGiftCard)

	card := models.PendingGiftCard{VariantID: "var_gc", Amount: 25, CurrencyCode: "aud", RecipientName: "R", RecipientEmail: "r@x.io"}
	require.NoError(t, svc.StageGiftCard(ctx, "cus_1", card))
	got, err := svc.PendingGiftCard(ctx, "cus_1")
	require.NoError(t, err)
	assert.Equal(t, card, *got)

	require.NoError(t, svc.ClearGiftCard(ctx, "cus_1"))
	_, err = svc.PendingGiftCard(ctx, "cus_1")
	assert.Error(t, err)
}

// flakyStore fails the next failGets reads.
type flakyStore struct {
	*storage.MemoryStore
	mu       sync.Mutex
	failGets int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGets > 0
	if fail {
		f.failGets--
	}
	f.mu.Unlock()
	if fail {
		return nil, false, errors.New("i/o timeout")
	}
	return f.MemoryStore.Get(ctx, key)
}

func TestListService_ReadErrorLeavesStoredListIntact(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	svc := services.NewListService(backend, nil, "", nil, zap.NewNop())
	for _, id := range []string{"p1", "p2", "p3"} {
		_, _, err := svc.AddToWishlist(ctx, "cus_1", models.WishlistItem{ID: id})
		require.NoError(t, err)
	}

	backend.failGets = 1
	_, added, err := svc.AddToWishlist(ctx, "cus_1", models.WishlistItem{ID: "p4"})
	require.Error(t, err)
	assert.False(t, added)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)

	raw, ok, err := backend.MemoryStore.Get(ctx, "cus_1:"+storage.KeyWishlist)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []models.WishlistItem
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 3)
	assert.Equal(t, "p1", stored[0].ID)
	assert.Equal(t, "p3", stored[2].ID)
}
