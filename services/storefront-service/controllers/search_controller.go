package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
)

// ProductSearcher runs shop listing queries.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, q models.ShopQuery) *models.ShopResponse
	SearchBrandProducts(ctx context.Context, brandID string, q models.ShopQuery) *models.ShopResponse
}

type SearchController struct {
	search ProductSearcher
}

func NewSearchController(search ProductSearcher) *SearchController {
	return &SearchController{search: search}
}

// ListProducts handles GET /shop/products.
func (sc *SearchController) ListProducts(ctx *gin.Context) {
	q := services.ParseShopQuery(ctx.Request.URL.Query())
	ctx.JSON(http.StatusOK, sc.search.SearchProducts(ctx.Request.Context(), q))
}

// ListBrandProducts handles GET /shop/brands/:brand_id/products.
func (sc *SearchController) ListBrandProducts(ctx *gin.Context) {
	q := services.ParseShopQuery(ctx.Request.URL.Query())
	ctx.JSON(http.StatusOK, sc.search.SearchBrandProducts(ctx.Request.Context(), ctx.Param("brand_id"), q))
}
