package liststore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

// GiftCardStage holds at most one configured gift card waiting to be added
// to the cart.
type GiftCardStage struct {
	backend storage.Store
	log     *zap.Logger
}

func NewGiftCardStage(backend storage.Store, log *zap.Logger) *GiftCardStage {
	if log == nil {
		log = zap.NewNop()
	}
	return &GiftCardStage{backend: backend, log: log}
}

func (g *GiftCardStage) Stage(ctx context.Context, card models.PendingGiftCard) error {
	raw, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode pending gift card: %w", err)
	}
	if err := g.backend.Set(ctx, storage.KeyPendingGiftCard, raw); err != nil {
		g.log.Error("failed to stage gift card", zap.Error(err))
		return fmt.Errorf("stage gift card: %w", err)
	}
	return nil
}

// Pending returns the staged card, or nil when nothing usable is stored.
func (g *GiftCardStage) Pending(ctx context.Context) *models.PendingGiftCard {
	raw, ok, err := g.backend.Get(ctx, storage.KeyPendingGiftCard)
	if err != nil {
		g.log.Error("failed to read pending gift card", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var card models.PendingGiftCard
	if err := json.Unmarshal(raw, &card); err != nil {
		g.log.Error("failed to parse pending gift card", zap.Error(err))
		return nil
	}
	return &card
}

func (g *GiftCardStage) Clear(ctx context.Context) error {
	return g.backend.Delete(ctx, storage.KeyPendingGiftCard)
}
