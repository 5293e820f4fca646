package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
	commonmw "github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/middleware"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/controllers"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/middleware"
)

// Controllers bundles everything the storefront router serves.
type Controllers struct {
	Lists   *controllers.ListController
	Cart    *controllers.CartController
	Content *controllers.ContentController
	Search  *controllers.SearchController
}

// RegisterRoutes sets up the public and shopper-scoped storefront routes.
func RegisterRoutes(r *gin.Engine, c Controllers, parser *auth.TokenParser) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "service": "storefront-service"})
	})

	content := r.Group("/content")
	content.GET("/blog", c.Content.ListBlogPosts)
	content.GET("/blog/search", c.Content.SearchBlogPosts)
	content.GET("/blog/:slug", c.Content.GetBlogPost)
	content.GET("/pages/:slug", c.Content.GetLandingPage)
	content.GET("/faqs", c.Content.GetFAQs)
	content.GET("/brands/:handle", c.Content.GetBrandContent)
	content.GET("/products/:handle", c.Content.GetProductContent)
	content.POST("/cache/clear", commonmw.RequireRole(parser, "admin"), c.Content.ClearCache)

	shop := r.Group("/shop")
	shop.GET("/products", c.Search.ListProducts)
	shop.GET("/brands/:brand_id/products", c.Search.ListBrandProducts)

	shopper := r.Group("")
	shopper.Use(middleware.ShopperAuth(parser))

	wishlist := shopper.Group("/wishlist")
	wishlist.GET("", c.Lists.GetWishlist)
	wishlist.POST("", c.Lists.AddToWishlist)
	wishlist.DELETE("", c.Lists.ClearWishlist)
	wishlist.GET("/:product_id", c.Lists.InWishlist)
	wishlist.DELETE("/:product_id", c.Lists.RemoveFromWishlist)

	compare := shopper.Group("/compare")
	compare.GET("", c.Lists.GetCompare)
	compare.POST("", c.Lists.AddToCompare)
	compare.POST("/toggle", c.Lists.ToggleCompare)
	compare.DELETE("", c.Lists.ClearCompare)
	compare.DELETE("/:product_id", c.Lists.RemoveFromCompare)

	alerts := shopper.Group("/alerts")
	alerts.GET("", c.Lists.GetAlerts)
	alerts.GET("/check", c.Lists.HasAlert)
	alerts.POST("", c.Lists.CreateAlert)
	alerts.POST("/:id/notified", c.Lists.MarkAlertNotified)
	alerts.DELETE("", c.Lists.ClearAlerts)
	alerts.DELETE("/:id", c.Lists.RemoveAlert)

	giftCard := shopper.Group("/gift-card/pending")
	giftCard.GET("", c.Lists.GetPendingGiftCard)
	giftCard.PUT("", c.Lists.StageGiftCard)
	giftCard.DELETE("", c.Lists.ClearGiftCard)

	cart := shopper.Group("/cart")
	cart.GET("", c.Cart.GetCart)
	cart.POST("/line-items", c.Cart.AddLineItem)
	cart.POST("/line-items/:line_id", c.Cart.UpdateLineItem)
	cart.DELETE("/line-items/:line_id", c.Cart.RemoveLineItem)
}
