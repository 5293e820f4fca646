package models

import "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"

type AddLineItemRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	RegionID  string `json:"region_id"`
}

type UpdateLineItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartResponse is what the cart endpoints return.
type CartResponse struct {
	Cart      *medusa.Cart `json:"cart"`
	ItemCount int          `json:"item_count"`
}
