package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/liststore"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
)

// ListController serves the shopper's wishlist, compare list, inventory
// alerts and pending gift card.
type ListController struct {
	lists *services.ListService
}

func NewListController(lists *services.ListService) *ListController {
	return &ListController{lists: lists}
}

// GetWishlist handles GET /wishlist.
func (lc *ListController) GetWishlist(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	items := lc.lists.Wishlist(ctx.Request.Context(), userID)
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// InWishlist handles GET /wishlist/:product_id.
func (lc *ListController) InWishlist(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	in := lc.lists.IsInWishlist(ctx.Request.Context(), userID, ctx.Param("product_id"))
	ctx.JSON(http.StatusOK, gin.H{"in_wishlist": in})
}

// AddToWishlist handles POST /wishlist.
func (lc *ListController) AddToWishlist(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var item models.WishlistItem
	if !bindJSON(ctx, &item) {
		return
	}
	items, added, err := lc.lists.AddToWishlist(ctx.Request.Context(), userID, item)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items), "added": added})
}

// RemoveFromWishlist handles DELETE /wishlist/:product_id.
func (lc *ListController) RemoveFromWishlist(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	items, err := lc.lists.RemoveFromWishlist(ctx.Request.Context(), userID, ctx.Param("product_id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// ClearWishlist handles DELETE /wishlist.
func (lc *ListController) ClearWishlist(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	if err := lc.lists.ClearWishlist(ctx.Request.Context(), userID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": []models.WishlistItem{}, "count": 0})
}

func compareBody(items []models.CompareItem) gin.H {
	return gin.H{
		"items":   items,
		"count":   len(items),
		"max":     liststore.MaxCompareItems,
		"can_add": len(items) < liststore.MaxCompareItems,
	}
}

// GetCompare handles GET /compare.
func (lc *ListController) GetCompare(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, compareBody(lc.lists.Compare(ctx.Request.Context(), userID)))
}

// AddToCompare handles POST /compare. A full list is not an error; the
// response reports added=false.
func (lc *ListController) AddToCompare(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var item models.CompareItem
	if !bindJSON(ctx, &item) {
		return
	}
	items, added, err := lc.lists.AddToCompare(ctx.Request.Context(), userID, item)
	if err != nil {
		fail(ctx, err)
		return
	}
	body := compareBody(items)
	body["added"] = added
	ctx.JSON(http.StatusOK, body)
}

// ToggleCompare handles POST /compare/toggle.
func (lc *ListController) ToggleCompare(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var item models.CompareItem
	if !bindJSON(ctx, &item) {
		return
	}
	items, in, err := lc.lists.ToggleCompare(ctx.Request.Context(), userID, item)
	if err != nil {
		fail(ctx, err)
		return
	}
	body := compareBody(items)
	body["in_compare"] = in
	ctx.JSON(http.StatusOK, body)
}

// RemoveFromCompare handles DELETE /compare/:product_id.
func (lc *ListController) RemoveFromCompare(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	items, err := lc.lists.RemoveFromCompare(ctx.Request.Context(), userID, ctx.Param("product_id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, compareBody(items))
}

// ClearCompare handles DELETE /compare.
func (lc *ListController) ClearCompare(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	if err := lc.lists.ClearCompare(ctx.Request.Context(), userID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, compareBody([]models.CompareItem{}))
}

// GetAlerts handles GET /alerts, optionally narrowed with ?email=.
func (lc *ListController) GetAlerts(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var alerts []models.InventoryAlert
	if email := ctx.Query("email"); email != "" {
		alerts = lc.lists.AlertsForEmail(ctx.Request.Context(), userID, email)
	} else {
		alerts = lc.lists.Alerts(ctx.Request.Context(), userID)
	}
	if alerts == nil {
		alerts = []models.InventoryAlert{}
	}
	ctx.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// HasAlert handles GET /alerts/check?product_id=&variant_id=.
func (lc *ListController) HasAlert(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	productID, variantID := ctx.Query("product_id"), ctx.Query("variant_id")
	if productID == "" || variantID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "product_id and variant_id are required"})
		return
	}
	has := lc.lists.HasAlert(ctx.Request.Context(), userID, productID, variantID)
	ctx.JSON(http.StatusOK, gin.H{"has_alert": has})
}

// CreateAlert handles POST /alerts.
func (lc *ListController) CreateAlert(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var req models.NewAlertRequest
	if !bindJSON(ctx, &req) {
		return
	}
	alert, err := lc.lists.CreateAlert(ctx.Request.Context(), userID, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"alert": alert})
}

// MarkAlertNotified handles POST /alerts/:id/notified.
func (lc *ListController) MarkAlertNotified(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	if err := lc.lists.MarkAlertNotified(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Alert marked as notified"})
}

// RemoveAlert handles DELETE /alerts/:id.
func (lc *ListController) RemoveAlert(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	alerts, err := lc.lists.RemoveAlert(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// ClearAlerts handles DELETE /alerts. With product_id and variant_id it only
// drops the alerts for that pair.
func (lc *ListController) ClearAlerts(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	productID, variantID := ctx.Query("product_id"), ctx.Query("variant_id")
	if productID != "" && variantID != "" {
		alerts, err := lc.lists.RemoveAlertFor(ctx.Request.Context(), userID, productID, variantID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
		return
	}
	if err := lc.lists.ClearAlerts(ctx.Request.Context(), userID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"alerts": []models.InventoryAlert{}, "count": 0})
}

// StageGiftCard handles PUT /gift-card/pending.
func (lc *ListController) StageGiftCard(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	var card models.PendingGiftCard
	if !bindJSON(ctx, &card) {
		return
	}
	if err := lc.lists.StageGiftCard(ctx.Request.Context(), userID, card); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"gift_card": card})
}

// GetPendingGiftCard handles GET /gift-card/pending.
func (lc *ListController) GetPendingGiftCard(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	card, err := lc.lists.PendingGiftCard(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"gift_card": card})
}

// ClearGiftCard handles DELETE /gift-card/pending.
func (lc *ListController) ClearGiftCard(ctx *gin.Context) {
	userID, ok := shopper(ctx)
	if !ok {
		return
	}
	if err := lc.lists.ClearGiftCard(ctx.Request.Context(), userID); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
