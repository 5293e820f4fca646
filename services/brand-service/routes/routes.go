package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/controllers"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/auth"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/common/middleware"
)

// RegisterBrandRoutes sets up the storefront and admin brand routes.
func RegisterBrandRoutes(r *gin.Engine, bc *controllers.BrandController, parser *auth.TokenParser) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := r.Group("/store/brands")
	store.GET("", bc.ListBrands)
	store.GET("/:handle", bc.GetBrandByHandle)

	admin := r.Group("/admin/brands")
	admin.Use(middleware.RequireRole(parser, "admin"))
	admin.GET("", bc.ListBrands)
	admin.POST("", bc.CreateBrand)
	admin.GET("/:id", bc.GetBrand)
	admin.POST("/:id", bc.UpdateBrand)
	admin.DELETE("/:id", bc.DeleteBrand)
	admin.POST("/:id/products", bc.LinkProducts)
}
