package models

// WishlistItem is persisted verbatim under the 3dbyte-wishlist key.
type WishlistItem struct {
	ID        string  `json:"id" binding:"required"`
	Handle    string  `json:"handle" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Thumbnail string  `json:"thumbnail"`
	Price     float64 `json:"price" binding:"gte=0"`
	VariantID string  `json:"variantId,omitempty"`
}

// ProductSpec is one row of the comparison table.
type ProductSpec struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value"`
}

// CompareItem is a wishlist-shaped product plus its comparable specs.
type CompareItem struct {
	ID        string        `json:"id" binding:"required"`
	Handle    string        `json:"handle" binding:"required"`
	Title     string        `json:"title" binding:"required"`
	Thumbnail string        `json:"thumbnail"`
	Price     float64       `json:"price" binding:"gte=0"`
	VariantID string        `json:"variantId,omitempty"`
	Specs     []ProductSpec `json:"specs" binding:"dive"`
}
