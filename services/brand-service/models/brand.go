package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDPrefix marks brand ids the way the commerce backend prefixes its own.
const IDPrefix = "brand_"

// Brand is a product brand stored in Postgres. Handles are unique among
// brands that have not been deleted.
type Brand struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Handle    string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_brands_handle,where:deleted_at IS NULL" json:"handle"`
	Products  []BrandProduct `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a prefixed id when none is set.
func (b *Brand) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = IDPrefix + uuid.NewString()
	}
	return nil
}

// BrandProduct links a commerce product to its brand. A product has at most
// one brand.
type BrandProduct struct {
	ProductID string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	BrandID   string    `gorm:"type:varchar(64);not null;index" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (BrandProduct) TableName() string {
	return "brand_products"
}

// CreateBrandRequest is the payload for creating a brand. The handle is
// derived from the name when omitted.
type CreateBrandRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Handle string `json:"handle" binding:"omitempty,max=255,handle"`
}

// UpdateBrandRequest changes only the fields that are set.
type UpdateBrandRequest struct {
	Name   string `json:"name" binding:"omitempty,max=255"`
	Handle string `json:"handle" binding:"omitempty,max=255,handle"`
}

// LinkProductsRequest adds and removes product links in one call.
type LinkProductsRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// BrandListResponse mirrors the commerce backend's list envelope.
type BrandListResponse struct {
	Brands []Brand `json:"brands"`
	Count  int64   `json:"count"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// BrandEvent is published to SNS when a brand changes.
type BrandEvent struct {
	EventType string    `json:"event_type"`
	BrandID   string    `json:"brand_id"`
	Handle    string    `json:"handle,omitempty"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
