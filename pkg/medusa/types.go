package medusa

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type LineItem struct {
	ID            string  `json:"id"`
	CartID        string  `json:"cart_id,omitempty"`
	Title         string  `json:"title"`
	Subtitle      string  `json:"subtitle,omitempty"`
	Thumbnail     string  `json:"thumbnail,omitempty"`
	VariantID     string  `json:"variant_id"`
	VariantTitle  string  `json:"variant_title,omitempty"`
	ProductID     string  `json:"product_id,omitempty"`
	ProductHandle string  `json:"product_handle,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Subtotal      float64 `json:"subtotal,omitempty"`
	Total         float64 `json:"total,omitempty"`
}

type Cart struct {
	ID            string     `json:"id"`
	RegionID      string     `json:"region_id,omitempty"`
	CustomerID    string     `json:"customer_id,omitempty"`
	Email         string     `json:"email,omitempty"`
	CurrencyCode  string     `json:"currency_code,omitempty"`
	Items         []LineItem `json:"items"`
	ItemTotal     float64    `json:"item_total"`
	Subtotal      float64    `json:"subtotal"`
	DiscountTotal float64    `json:"discount_total"`
	ShippingTotal float64    `json:"shipping_total"`
	TaxTotal      float64    `json:"tax_total"`
	Total         float64    `json:"total"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ItemCount sums the quantities of all line items.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

type ProductCategory struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Handle           string  `json:"handle"`
	ParentCategoryID *string `json:"parent_category_id,omitempty"`
}

type ProductCollection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// BrandProduct is the product summary embedded in a brand.
type BrandProduct struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Handle string `json:"handle,omitempty"`
}

type Brand struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Handle    string         `json:"handle"`
	Products  []BrandProduct `json:"products,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// BrandInput is the create/update payload for a brand.
type BrandInput struct {
	Name   string `json:"name,omitempty"`
	Handle string `json:"handle,omitempty"`
}

type BrandList struct {
	Brands []Brand `json:"brands"`
	Count  int     `json:"count"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type ListParams struct {
	Limit  int
	Offset int
	Q      string
}

// APIError is the error body Medusa sends with non-2xx responses.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("medusa: %d %s: %s", e.Status, e.Type, e.Message)
}

// IsNotFound reports whether err is a Medusa 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
