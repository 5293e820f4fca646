package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	apperrors "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/errors"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

// CartAPI is the subset of the Medusa store API the cart context calls.
type CartAPI interface {
	CreateCart(ctx context.Context, regionID string) (*medusa.Cart, error)
	GetCart(ctx context.Context, cartID string) (*medusa.Cart, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*medusa.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*medusa.Cart, error)
	DeleteLineItem(ctx context.Context, cartID, lineID string) (*medusa.Cart, error)
}

// CartContext holds one shopper's server cart. The server is authoritative:
// every successful call replaces the whole cart with the response, failed
// calls leave the last good cart in place.
type CartContext struct {
	api           CartAPI
	store         storage.Store
	defaultRegion string
	logger        *zap.Logger
	shopper       sync.Locker

	mu      sync.Mutex
	cart    *medusa.Cart
	loading atomic.Bool
}

func NewCartContext(api CartAPI, store storage.Store, defaultRegion string, logger *zap.Logger) *CartContext {
	return &CartContext{api: api, store: store, defaultRegion: defaultRegion, logger: logger}
}

// WithShopperLock makes every cart operation hold l as well, so contexts
// built for the same shopper on different requests do not interleave.
func (c *CartContext) WithShopperLock(l sync.Locker) *CartContext {
	c.shopper = l
	return c
}

func (c *CartContext) IsLoading() bool {
	return c.loading.Load()
}

// Cart returns the last cart received from the server, or nil.
func (c *CartContext) Cart() *medusa.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart
}

func (c *CartContext) cartID(ctx context.Context) (string, error) {
	raw, ok, err := c.store.Get(ctx, storage.KeyCartID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return string(raw), nil
}

func (c *CartContext) forget(ctx context.Context, cartID string) {
	c.logger.Warn("Cart no longer exists upstream, forgetting it", zap.String("cart_id", cartID))
	if err := c.store.Delete(ctx, storage.KeyCartID); err != nil {
		c.logger.Error("Failed to forget cart id", zap.Error(err))
	}
	c.cart = nil
}

// cartGone tells a missing cart apart from a missing line item or variant.
func (c *CartContext) cartGone(ctx context.Context, cartID string) bool {
	_, err := c.api.GetCart(ctx, cartID)
	return medusa.IsNotFound(err)
}

// run brackets an operation with the loading flag and the cart lock.
func (c *CartContext) run(op string, fn func() (*medusa.Cart, error)) (*medusa.Cart, error) {
	if c.shopper != nil {
		c.shopper.Lock()
		defer c.shopper.Unlock()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading.Store(true)
	defer c.loading.Store(false)

	cart, err := fn()
	if err != nil {
		c.logger.Error("Cart operation failed", zap.String("operation", op), zap.Error(err))
		return c.cart, err
	}
	if cart != nil {
		c.cart = cart
	}
	return c.cart, nil
}

func upstreamErr(err error) error {
	if _, ok := err.(*apperrors.Error); ok {
		return err
	}
	return apperrors.Wrap(apperrors.ErrBadGateway, err)
}

// Refresh fetches the shopper's cart. A shopper without a cart gets nil.
func (c *CartContext) Refresh(ctx context.Context) (*medusa.Cart, error) {
	return c.run("refresh", func() (*medusa.Cart, error) {
		id, err := c.cartID(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		if id == "" {
			return nil, nil
		}
		cart, err := c.api.GetCart(ctx, id)
		if medusa.IsNotFound(err) {
			c.forget(ctx, id)
			return nil, nil
		}
		if err != nil {
			return nil, upstreamErr(err)
		}
		return cart, nil
	})
}

// AddItem adds a variant, creating a cart first when the shopper has none.
func (c *CartContext) AddItem(ctx context.Context, variantID string, quantity int, regionID string) (*medusa.Cart, error) {
	if quantity < 1 {
		return c.Cart(), apperrors.ErrInvalidQuantity
	}
	return c.run("add_item", func() (*medusa.Cart, error) {
		id, err := c.cartID(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		if id != "" {
			cart, err := c.api.AddLineItem(ctx, id, variantID, quantity)
			if err == nil {
				return cart, nil
			}
			if !medusa.IsNotFound(err) || !c.cartGone(ctx, id) {
				return nil, upstreamErr(err)
			}
			c.forget(ctx, id)
		}

		if regionID == "" {
			regionID = c.defaultRegion
		}
		created, err := c.api.CreateCart(ctx, regionID)
		if err != nil {
			return nil, upstreamErr(err)
		}
		if err := c.store.Set(ctx, storage.KeyCartID, []byte(created.ID)); err != nil {
			c.logger.Error("Failed to store cart id", zap.String("cart_id", created.ID), zap.Error(err))
		}
		cart, err := c.api.AddLineItem(ctx, created.ID, variantID, quantity)
		if err != nil {
			c.cart = created
			return nil, upstreamErr(err)
		}
		return cart, nil
	})
}

// UpdateQuantity sets a line item's quantity. Quantities below one are
// rejected without calling the server.
func (c *CartContext) UpdateQuantity(ctx context.Context, lineID string, quantity int) (*medusa.Cart, error) {
	if quantity < 1 {
		return c.Cart(), apperrors.ErrInvalidQuantity
	}
	return c.withCart(ctx, "update_quantity", func(id string) (*medusa.Cart, error) {
		return c.api.UpdateLineItem(ctx, id, lineID, quantity)
	})
}

func (c *CartContext) RemoveItem(ctx context.Context, lineID string) (*medusa.Cart, error) {
	return c.withCart(ctx, "remove_item", func(id string) (*medusa.Cart, error) {
		return c.api.DeleteLineItem(ctx, id, lineID)
	})
}

func (c *CartContext) withCart(ctx context.Context, op string, call func(cartID string) (*medusa.Cart, error)) (*medusa.Cart, error) {
	return c.run(op, func() (*medusa.Cart, error) {
		id, err := c.cartID(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		if id == "" {
			return nil, apperrors.New(apperrors.ErrNotFound.Code, "No active cart", nil)
		}
		cart, err := call(id)
		if medusa.IsNotFound(err) {
			if c.cartGone(ctx, id) {
				c.forget(ctx, id)
				return nil, apperrors.New(apperrors.ErrNotFound.Code, "Cart not found", err)
			}
			return nil, apperrors.New(apperrors.ErrNotFound.Code, "Line item not found", err)
		}
		if err != nil {
			return nil, upstreamErr(err)
		}
		return cart, nil
	})
}
