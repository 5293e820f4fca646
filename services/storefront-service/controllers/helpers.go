package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/middleware"
)

// shopper returns the authenticated shopper id or aborts with 401.
func shopper(ctx *gin.Context) (string, bool) {
	id, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

func bindJSON(ctx *gin.Context, dst any) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}

// fail hands err to the error middleware, which renders it.
func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}
