package models

// ShopQuery is the parsed shop listing query string.
type ShopQuery struct {
	Page        int                 `json:"page"`
	Sort        string              `json:"sort,omitempty"`
	Query       string              `json:"q,omitempty"`
	Categories  []string            `json:"category,omitempty"`
	Collections []string            `json:"collection,omitempty"`
	Brands      []string            `json:"brand,omitempty"`
	MinPrice    *float64            `json:"minPrice,omitempty"`
	MaxPrice    *float64            `json:"maxPrice,omitempty"`
	OnSale      bool                `json:"onSale,omitempty"`
	InStock     bool                `json:"inStock,omitempty"`
	Options     map[string][]string `json:"options,omitempty"`
}

// ProductHit is one product document from the search index.
type ProductHit struct {
	ID            string   `json:"id"`
	Handle        string   `json:"handle"`
	Title         string   `json:"title"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price,omitempty"`
	OnSale        bool     `json:"on_sale"`
	InStock       bool     `json:"in_stock"`
	CategoryIDs   []string `json:"category_ids,omitempty"`
	BrandID       string   `json:"brand_id,omitempty"`
	CollectionID  string   `json:"collection_id,omitempty"`
}

// FacetDistribution is attribute -> value -> count, as returned by the index.
type FacetDistribution map[string]map[string]int64

// SearchQuery is what the search service asks of the product index.
type SearchQuery struct {
	Query       string
	Filter      []string
	Sort        []string
	Facets      []string
	Page        int
	HitsPerPage int
}

// SearchResult is the index answer in index-neutral form.
type SearchResult struct {
	Hits              []ProductHit
	TotalHits         int64
	TotalPages        int64
	Page              int64
	FacetDistribution FacetDistribution
}

type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BooleanFacet is the raw true/false count pair for a flag attribute.
type BooleanFacet struct {
	True  int64 `json:"true"`
	False int64 `json:"false"`
}

// ShopFacets is the display-ready filter panel.
type ShopFacets struct {
	Categories  []FacetOption            `json:"categories"`
	Brands      []FacetOption            `json:"brands"`
	Collections []FacetOption            `json:"collections"`
	PriceRange  *PriceRange              `json:"priceRange,omitempty"`
	OnSale      BooleanFacet             `json:"onSale"`
	InStock     BooleanFacet             `json:"inStock"`
	Options     map[string][]FacetOption `json:"options"`
}

// CatalogLabels maps catalog ids to display names.
type CatalogLabels struct {
	Categories  map[string]string
	Brands      map[string]string
	Collections map[string]string
}

type ShopResponse struct {
	Products   []ProductHit `json:"products"`
	Total      int64        `json:"total"`
	Page       int64        `json:"page"`
	TotalPages int64        `json:"totalPages"`
	Facets     ShopFacets   `json:"facets"`
	Query      ShopQuery    `json:"query"`
}
