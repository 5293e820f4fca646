package services

import (
	"context"
	"hash/fnv"
	"sync"

	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	apperrors "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/errors"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/liststore"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

const (
	EventAlertCreated = "inventory_alert.created"
	shopperLockShards = 64
)

// ListService exposes each shopper's wishlist, compare list, inventory alerts
// and staged gift card. Every call loads the shopper's list, applies one
// mutation and writes it back; calls for the same shopper are serialised.
type ListService struct {
	backend     storage.Store
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	metrics     *awspkg.MetricsClient
	logger      *zap.Logger
	locks       [shopperLockShards]sync.Mutex
}

func NewListService(backend storage.Store, snsClient awspkg.SNSPublisher, snsTopicArn string, metrics *awspkg.MetricsClient, logger *zap.Logger) *ListService {
	return &ListService{
		backend:     backend,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *ListService) shard(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%shopperLockShards]
}

func (s *ListService) lock(userID string) func() {
	m := s.shard(userID)
	m.Lock()
	return m.Unlock
}

func (s *ListService) scoped(userID string) storage.Store {
	return storage.Scoped(s.backend, userID)
}

func persistErr(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrStorageFailure, err)
}

func (s *ListService) Wishlist(ctx context.Context, userID string) []models.WishlistItem {
	return liststore.NewWishlist(ctx, s.scoped(userID), s.logger).Items()
}

func (s *ListService) IsInWishlist(ctx context.Context, userID, productID string) bool {
	return liststore.NewWishlist(ctx, s.scoped(userID), s.logger).IsInWishlist(productID)
}

func (s *ListService) AddToWishlist(ctx context.Context, userID string, item models.WishlistItem) ([]models.WishlistItem, bool, error) {
	defer s.lock(userID)()
	w := liststore.NewWishlist(ctx, s.scoped(userID), s.logger)
	added, err := w.Add(ctx, item)
	return w.Items(), added, persistErr(err)
}

func (s *ListService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]models.WishlistItem, error) {
	defer s.lock(userID)()
	w := liststore.NewWishlist(ctx, s.scoped(userID), s.logger)
	_, err := w.Remove(ctx, productID)
	return w.Items(), persistErr(err)
}

func (s *ListService) ClearWishlist(ctx context.Context, userID string) error {
	defer s.lock(userID)()
	return persistErr(liststore.NewWishlist(ctx, s.scoped(userID), s.logger).Clear(ctx))
}

func (s *ListService) Compare(ctx context.Context, userID string) []models.CompareItem {
	return liststore.NewCompare(ctx, s.scoped(userID), s.logger).Items()
}

// AddToCompare ignores the item when the list is already full; added tells
// the caller whether it went in.
func (s *ListService) AddToCompare(ctx context.Context, userID string, item models.CompareItem) ([]models.CompareItem, bool, error) {
	defer s.lock(userID)()
	c := liststore.NewCompare(ctx, s.scoped(userID), s.logger)
	added, err := c.Add(ctx, item)
	return c.Items(), added, persistErr(err)
}

func (s *ListService) ToggleCompare(ctx context.Context, userID string, item models.CompareItem) ([]models.CompareItem, bool, error) {
	defer s.lock(userID)()
	c := liststore.NewCompare(ctx, s.scoped(userID), s.logger)
	in, err := c.Toggle(ctx, item)
	return c.Items(), in, persistErr(err)
}

func (s *ListService) RemoveFromCompare(ctx context.Context, userID, productID string) ([]models.CompareItem, error) {
	defer s.lock(userID)()
	c := liststore.NewCompare(ctx, s.scoped(userID), s.logger)
	_, err := c.Remove(ctx, productID)
	return c.Items(), persistErr(err)
}

func (s *ListService) ClearCompare(ctx context.Context, userID string) error {
	defer s.lock(userID)()
	return persistErr(liststore.NewCompare(ctx, s.scoped(userID), s.logger).Clear(ctx))
}

func (s *ListService) Alerts(ctx context.Context, userID string) []models.InventoryAlert {
	return liststore.NewAlerts(ctx, s.scoped(userID), s.logger).Items()
}

// AlertsForEmail narrows the shopper's alerts to one notification address.
func (s *ListService) AlertsForEmail(ctx context.Context, userID, email string) []models.InventoryAlert {
	return liststore.NewAlerts(ctx, s.scoped(userID), s.logger).AlertsForEmail(email)
}

func (s *ListService) HasAlert(ctx context.Context, userID, productID, variantID string) bool {
	return liststore.NewAlerts(ctx, s.scoped(userID), s.logger).HasAlert(productID, variantID)
}

// CreateAlert stores a restock alert and announces it on SNS. Publishing is
// best effort: a failed publish is logged and the alert is kept.
func (s *ListService) CreateAlert(ctx context.Context, userID string, req models.NewAlertRequest) (models.InventoryAlert, error) {
	unlock := s.lock(userID)
	a := liststore.NewAlerts(ctx, s.scoped(userID), s.logger)
	alert, err := a.AddAlert(ctx, req)
	unlock()
	if err != nil {
		return alert, persistErr(err)
	}

	_ = s.metrics.RecordCount(ctx, awspkg.MetricAlertsCreated, nil)
	if s.snsClient != nil && s.snsTopicArn != "" {
		event := models.AlertCreatedEvent{EventType: EventAlertCreated, UserID: userID, Alert: alert}
		if err := awspkg.PublishJSON(ctx, s.snsClient, s.snsTopicArn, event); err != nil {
			s.logger.Error("Failed to publish inventory alert event", zap.String("alert_id", alert.ID), zap.Error(err))
		}
	}
	s.logger.Info("Inventory alert created",
		zap.String("alert_id", alert.ID),
		zap.String("product_id", alert.ProductID),
		zap.String("variant_id", alert.VariantID))
	return alert, nil
}

func (s *ListService) RemoveAlert(ctx context.Context, userID, alertID string) ([]models.InventoryAlert, error) {
	defer s.lock(userID)()
	a := liststore.NewAlerts(ctx, s.scoped(userID), s.logger)
	removed, err := a.RemoveAlert(ctx, alertID)
	if err == nil && !removed {
		return a.Items(), apperrors.New(apperrors.ErrNotFound.Code, "Alert not found", nil)
	}
	return a.Items(), persistErr(err)
}

func (s *ListService) RemoveAlertFor(ctx context.Context, userID, productID, variantID string) ([]models.InventoryAlert, error) {
	defer s.lock(userID)()
	a := liststore.NewAlerts(ctx, s.scoped(userID), s.logger)
	_, err := a.RemoveAlertFor(ctx, productID, variantID)
	return a.Items(), persistErr(err)
}

func (s *ListService) MarkAlertNotified(ctx context.Context, userID, alertID string) error {
	defer s.lock(userID)()
	a := liststore.NewAlerts(ctx, s.scoped(userID), s.logger)
	found, err := a.MarkNotified(ctx, alertID)
	if err == nil && !found {
		return apperrors.New(apperrors.ErrNotFound.Code, "Alert not found", nil)
	}
	return persistErr(err)
}

func (s *ListService) ClearAlerts(ctx context.Context, userID string) error {
	defer s.lock(userID)()
	return persistErr(liststore.NewAlerts(ctx, s.scoped(userID), s.logger).Clear(ctx))
}

func (s *ListService) StageGiftCard(ctx context.Context, userID string, card models.PendingGiftCard) error {
	return persistErr(liststore.NewGiftCardStage(s.scoped(userID), s.logger).Stage(ctx, card))
}

func (s *ListService) PendingGiftCard(ctx context.Context, userID string) (*models.PendingGiftCard, error) {
	card := liststore.NewGiftCardStage(s.scoped(userID), s.logger).Pending(ctx)
	if card == nil {
		return nil, apperrors.ErrNoPendingGiftCard
	}
	return card, nil
}

func (s *ListService) ClearGiftCard(ctx context.Context, userID string) error {
	return persistErr(liststore.NewGiftCardStage(s.scoped(userID), s.logger).Clear(ctx))
}

// Cart returns the shopper's cart context. Its operations share the
// shopper's lock, so two requests cannot both create a first cart.
func (s *ListService) Cart(api CartAPI, userID, defaultRegion string) *CartContext {
	return NewCartContext(api, s.scoped(userID), defaultRegion, s.logger).WithShopperLock(s.shard(userID))
}
