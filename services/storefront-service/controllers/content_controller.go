package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/strapi"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
)

// ContentReader is the CMS facade the content endpoints read from.
type ContentReader interface {
	GetBlogPosts(ctx context.Context, page, pageSize int) *strapi.ListResponse[models.BlogPost]
	GetBlogPost(ctx context.Context, slug string) *models.BlogPost
	SearchBlogPosts(ctx context.Context, term string) []models.BlogPost
	GetLandingPage(ctx context.Context, slug string) *models.LandingPage
	GetFAQs(ctx context.Context, category string) []models.FAQ
	GetBrandContent(ctx context.Context, handle string) *models.EditorialContent
	GetProductContent(ctx context.Context, handle string) *models.EditorialContent
	ClearCache()
}

type ContentController struct {
	content ContentReader
}

func NewContentController(content ContentReader) *ContentController {
	return &ContentController{content: content}
}

// ListBlogPosts handles GET /content/blog?page=&pageSize=.
func (cc *ContentController) ListBlogPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if pageSize > 100 {
		pageSize = 100
	}
	ctx.JSON(http.StatusOK, cc.content.GetBlogPosts(ctx.Request.Context(), page, pageSize))
}

// SearchBlogPosts handles GET /content/blog/search?q=.
func (cc *ContentController) SearchBlogPosts(ctx *gin.Context) {
	posts := cc.content.SearchBlogPosts(ctx.Request.Context(), ctx.Query("q"))
	ctx.JSON(http.StatusOK, gin.H{"data": posts})
}

// GetBlogPost handles GET /content/blog/:slug.
func (cc *ContentController) GetBlogPost(ctx *gin.Context) {
	post := cc.content.GetBlogPost(ctx.Request.Context(), ctx.Param("slug"))
	if post == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Failed to fetch blog post"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": post})
}

// GetLandingPage handles GET /content/pages/:slug.
func (cc *ContentController) GetLandingPage(ctx *gin.Context) {
	page := cc.content.GetLandingPage(ctx.Request.Context(), ctx.Param("slug"))
	if page == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Failed to fetch landing page"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": page})
}

// GetFAQs handles GET /content/faqs?category=.
func (cc *ContentController) GetFAQs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"data": cc.content.GetFAQs(ctx.Request.Context(), ctx.Query("category"))})
}

// GetBrandContent handles GET /content/brands/:handle.
func (cc *ContentController) GetBrandContent(ctx *gin.Context) {
	content := cc.content.GetBrandContent(ctx.Request.Context(), ctx.Param("handle"))
	if content == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Failed to fetch brand content"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": content})
}

// GetProductContent handles GET /content/products/:handle.
func (cc *ContentController) GetProductContent(ctx *gin.Context) {
	content := cc.content.GetProductContent(ctx.Request.Context(), ctx.Param("handle"))
	if content == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Failed to fetch product content"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": content})
}

// ClearCache handles POST /content/cache/clear (admin only).
func (cc *ContentController) ClearCache(ctx *gin.Context) {
	cc.content.ClearCache()
	ctx.JSON(http.StatusOK, gin.H{"message": "Content cache cleared"})
}
