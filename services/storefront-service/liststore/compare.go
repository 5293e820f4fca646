package liststore

import (
	"context"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

// MaxCompareItems is how many products can sit side by side.
const MaxCompareItems = 4

// Compare silently ignores additions once MaxCompareItems is reached.
type Compare struct {
	*Store[models.CompareItem]
}

func NewCompare(ctx context.Context, backend storage.Store, log *zap.Logger) *Compare {
	return &Compare{New(ctx, backend, storage.KeyCompare, func(i models.CompareItem) string { return i.ID }, MaxCompareItems, log)}
}

func (c *Compare) IsInCompare(productID string) bool {
	return c.Contains(productID)
}

func (c *Compare) CanAdd() bool {
	return !c.Full()
}
