package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
)

// CartController proxies the shopper's cart to Medusa.
type CartController struct {
	lists         *services.ListService
	api           services.CartAPI
	defaultRegion string
}

func NewCartController(lists *services.ListService, api services.CartAPI, defaultRegion string) *CartController {
	return &CartController{lists: lists, api: api, defaultRegion: defaultRegion}
}

func (cc *CartController) cartFor(ctx *gin.Context) (*services.CartContext, bool) {
	userID, ok := shopper(ctx)
	if !ok {
		return nil, false
	}
	return cc.lists.Cart(cc.api, userID, cc.defaultRegion), true
}

func cartBody(cart *services.CartContext) models.CartResponse {
	c := cart.Cart()
	return models.CartResponse{Cart: c, ItemCount: c.ItemCount()}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	cart, ok := cc.cartFor(ctx)
	if !ok {
		return
	}
	if _, err := cart.Refresh(ctx.Request.Context()); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cartBody(cart))
}

// AddLineItem handles POST /cart/line-items.
func (cc *CartController) AddLineItem(ctx *gin.Context) {
	cart, ok := cc.cartFor(ctx)
	if !ok {
		return
	}
	var req models.AddLineItemRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if _, err := cart.AddItem(ctx.Request.Context(), req.VariantID, req.Quantity, req.RegionID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cartBody(cart))
}

// UpdateLineItem handles POST /cart/line-items/:line_id.
func (cc *CartController) UpdateLineItem(ctx *gin.Context) {
	cart, ok := cc.cartFor(ctx)
	if !ok {
		return
	}
	var req models.UpdateLineItemRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if _, err := cart.UpdateQuantity(ctx.Request.Context(), ctx.Param("line_id"), req.Quantity); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cartBody(cart))
}

// RemoveLineItem handles DELETE /cart/line-items/:line_id.
func (cc *CartController) RemoveLineItem(ctx *gin.Context) {
	cart, ok := cc.cartFor(ctx)
	if !ok {
		return
	}
	if _, err := cart.RemoveItem(ctx.Request.Context(), ctx.Param("line_id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cartBody(cart))
}
