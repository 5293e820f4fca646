package liststore

import (
	"context"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

type Wishlist struct {
	*Store[models.WishlistItem]
}

func NewWishlist(ctx context.Context, backend storage.Store, log *zap.Logger) *Wishlist {
	return &Wishlist{New(ctx, backend, storage.KeyWishlist, func(i models.WishlistItem) string { return i.ID }, 0, log)}
}

func (w *Wishlist) IsInWishlist(productID string) bool {
	return w.Contains(productID)
}
