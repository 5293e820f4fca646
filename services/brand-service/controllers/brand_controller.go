package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/services"
)

// BrandController handles HTTP requests for brand operations. Bodies follow
// the commerce backend's conventions so its clients can consume them directly.
type BrandController struct {
	brandService services.BrandService
}

// NewBrandController creates a new BrandController.
func NewBrandController(brandService services.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

// ListBrands handles GET /admin/brands and GET /store/brands.
func (bc *BrandController) ListBrands(ctx *gin.Context) {
	limit, offset := parsePaginationParams(ctx)

	resp, svcErr := bc.brandService.ListBrands(ctx.Request.Context(), ctx.Query("q"), limit, offset)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateBrand handles POST /admin/brands.
func (bc *BrandController) CreateBrand(ctx *gin.Context) {
	var req models.CreateBrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	brand, svcErr := bc.brandService.CreateBrand(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brand})
}

// GetBrand handles GET /admin/brands/:id.
func (bc *BrandController) GetBrand(ctx *gin.Context) {
	brand, svcErr := bc.brandService.GetBrand(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brand})
}

// GetBrandByHandle handles GET /store/brands/:handle.
func (bc *BrandController) GetBrandByHandle(ctx *gin.Context) {
	brand, svcErr := bc.brandService.GetBrandByHandle(ctx.Request.Context(), ctx.Param("handle"))
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brand})
}

// UpdateBrand handles POST /admin/brands/:id.
func (bc *BrandController) UpdateBrand(ctx *gin.Context) {
	var req models.UpdateBrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	brand, svcErr := bc.brandService.UpdateBrand(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brand})
}

// DeleteBrand handles DELETE /admin/brands/:id.
func (bc *BrandController) DeleteBrand(ctx *gin.Context) {
	id := ctx.Param("id")
	if svcErr := bc.brandService.DeleteBrand(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id, "object": "brand", "deleted": true})
}

// LinkProducts handles POST /admin/brands/:id/products.
func (bc *BrandController) LinkProducts(ctx *gin.Context) {
	var req models.LinkProductsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	brand, svcErr := bc.brandService.LinkProducts(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brand})
}

// respondError writes the {type, message} error body the commerce clients parse.
func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"type": errorType(status), "message": message})
}

func errorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_data"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "not_allowed"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "duplicate_error"
	default:
		return "unexpected_state"
	}
}

// parsePaginationParams extracts limit and offset. Invalid values fall back
// to the defaults; the service clamps the limit.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const DefaultLimit = 20

	limitInt := DefaultLimit
	offsetInt := 0

	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "20")); err == nil && l > 0 {
		limitInt = l
	}
	if o, err := strconv.Atoi(ctx.DefaultQuery("offset", "0")); err == nil && o > 0 {
		offsetInt = o
	}
	return limitInt, offsetInt
}
