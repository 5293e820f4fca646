package services_test

import (
	"net/url"
	"testing"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShopFacets(t *testing.T) {
	dist := models.FacetDistribution{
		"category_ids":  {"pcat_fil": 12, "pcat_res": 3, "pcat_unknown": 1},
		"brand_id":      {"brand_b": 4, "brand_a": 7},
		"collection_id": {"pcol_new": 2},
		"price":         {"19.99": 3, "5": 1, "120.5": 2, "n/a": 1},
		"on_sale":       {"true": 4, "false": 11},
		"in_stock":      {"true": 14},
		"options_color": {"Red": 3, "Blue": 0, "Black": 5},
	}
	labels := models.CatalogLabels{
		Categories:  map[string]string{"pcat_fil": "filament", "pcat_res": "Resin"},
		Brands:      map[string]string{"brand_a": "Prusa", "brand_b": "bambu Lab"},
		Collections: map[string]string{},
	}

	f := services.BuildShopFacets(dist, labels)

	assert.Equal(t, []models.FacetOption{
		{Value: "pcat_fil", Label: "filament", Count: 12},
		{Value: "pcat_unknown", Label: "pcat_unknown", Count: 1},
		{Value: "pcat_res", Label: "Resin", Count: 3},
	}, f.Categories)
	assert.Equal(t, []models.FacetOption{
		{Value: "brand_b", Label: "bambu Lab", Count: 4},
		{Value: "brand_a", Label: "Prusa", Count: 7},
	}, f.Brands)
	assert.Equal(t, []models.FacetOption{{Value: "pcol_new", Label: "pcol_new", Count: 2}}, f.Collections)

	require.NotNil(t, f.PriceRange)
	assert.Equal(t, models.PriceRange{Min: 5, Max: 120.5}, *f.PriceRange)
	assert.Equal(t, models.BooleanFacet{True: 4, False: 11}, f.OnSale)
	assert.Equal(t, models.BooleanFacet{True: 14}, f.InStock)

	assert.Equal(t, []models.FacetOption{
		{Value: "Black", Label: "Black", Count: 5},
		{Value: "Red", Label: "Red", Count: 3},
	}, f.Options["options_color"])
}

func TestBuildShopFacets_Empty(t *testing.T) {
	f := services.BuildShopFacets(nil, models.CatalogLabels{})
	assert.Empty(t, f.Categories)
	assert.Nil(t, f.PriceRange)
	assert.Equal(t, models.BooleanFacet{}, f.OnSale)
	assert.Empty(t, f.Options)
}

func TestBuildShopFacets_LabelTieBreaksOnValue(t *testing.T) {
	dist := models.FacetDistribution{"brand_id": {"b2": 1, "b1": 1}}
	labels := models.CatalogLabels{Brands: map[string]string{"b1": "Same", "b2": "same"}}

	f := services.BuildShopFacets(dist, labels)
	require.Len(t, f.Brands, 2)
	assert.Equal(t, "b1", f.Brands[0].Value)
	assert.Equal(t, "b2", f.Brands[1].Value)
}

func TestParseShopQuery(t *testing.T) {
	v := url.Values{
		"page":          {"3"},
		"sort":          {"price_desc"},
		"q":             {"  pla  "},
		"category":      {"pcat_1,pcat_2"},
		"brand":         {"brand_a", "brand_b"},
		"minPrice":      {"10"},
		"maxPrice":      {"abc"},
		"onSale":        {"true"},
		"inStock":       {"1"},
		"options_color": {"Red,Blue"},
		"options_":      {"x"},
	}

	q := services.ParseShopQuery(v)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, "price_desc", q.Sort)
	assert.Equal(t, "pla", q.Query)
	assert.Equal(t, []string{"pcat_1", "pcat_2"}, q.Categories)
	assert.Equal(t, []string{"brand_a", "brand_b"}, q.Brands)
	require.NotNil(t, q.MinPrice)
	assert.Equal(t, 10.0, *q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.True(t, q.OnSale)
	assert.False(t, q.InStock)
	assert.Equal(t, map[string][]string{"options_color": {"Red", "Blue"}}, q.Options)
}

func TestParseShopQuery_Defaults(t *testing.T) {
	q := services.ParseShopQuery(url.Values{"page": {"-2"}})
	assert.Equal(t, 1, q.Page)
	assert.Nil(t, q.Options)
	assert.Empty(t, services.BuildFilter(q))
}

func TestBuildFilter(t *testing.T) {
	minP, maxP := 10.0, 49.5
	q := models.ShopQuery{
		Categories:  []string{"pcat_1"},
		Brands:      []string{"brand_a", `odd"id`},
		Collections: []string{"pcol_1"},
		MinPrice:    &minP,
		MaxPrice:    &maxP,
		OnSale:      true,
		InStock:     true,
		Options: map[string][]string{
			"options_size":  {"0.4mm"},
			"options_color": {"Red", "Blue"},
		},
	}

	assert.Equal(t, []string{
		`category_ids IN ["pcat_1"]`,
		`brand_id IN ["brand_a","odd\"id"]`,
		`collection_id IN ["pcol_1"]`,
		`price >= 10`,
		`price <= 49.5`,
		`on_sale = true`,
		`in_stock = true`,
		`options_color IN ["Red","Blue"]`,
		`options_size IN ["0.4mm"]`,
	}, services.BuildFilter(q))
}

func TestBuildFilter_SkipsInvalidOptionAttributes(t *testing.T) {
	q := models.ShopQuery{
		Brands: []string{"brand_a"},
		Options: map[string][]string{
			`options_a IN ["x"] OR price >= 0 OR options_b`: {"y"},
			"options_nozzle_size":                           {"0.6mm"},
			"options_":                                      {"z"},
		},
	}

	assert.Equal(t, []string{
		`brand_id IN ["brand_a"]`,
		`options_nozzle_size IN ["0.6mm"]`,
	}, services.BuildFilter(q))
}

func TestSortFor(t *testing.T) {
	assert.Equal(t, []string{"price:asc"}, services.SortFor("price_asc"))
	assert.Equal(t, []string{"price:desc"}, services.SortFor("price_desc"))
	assert.Equal(t, []string{"created_at:desc"}, services.SortFor("newest"))
	assert.Equal(t, []string{"title:asc"}, services.SortFor("title_asc"))
	assert.Equal(t, []string{"title:desc"}, services.SortFor("title_desc"))
	assert.Nil(t, services.SortFor("relevance"))
	assert.Nil(t, services.SortFor(""))
}
