package services_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/cache"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockIndex struct {
	last   models.SearchQuery
	result *models.SearchResult
	err    error
}

func (m *mockIndex) Search(_ context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	m.last = q
	return m.result, m.err
}

type mockCatalog struct {
	categoryCalls int
	brandErr      error
}

func (m *mockCatalog) ListProductCategories(context.Context) ([]medusa.ProductCategory, error) {
	m.categoryCalls++
	return []medusa.ProductCategory{{ID: "pcat_1", Name: "Filament"}}, nil
}

func (m *mockCatalog) ListCollections(context.Context) ([]medusa.ProductCollection, error) {
	return []medusa.ProductCollection{{ID: "pcol_1", Title: "New Arrivals"}}, nil
}

func (m *mockCatalog) ListStoreBrands(context.Context) ([]medusa.Brand, error) {
	if m.brandErr != nil {
		return nil, m.brandErr
	}
	return []medusa.Brand{{ID: "brand_1", Name: "Prusa"}}, nil
}

func TestSearchProducts(t *testing.T) {
	idx := &mockIndex{result: &models.SearchResult{
		Hits:       []models.ProductHit{{ID: "prod_1", Title: "PLA"}},
		TotalHits:  25,
		TotalPages: 3,
		Page:       2,
		FacetDistribution: models.FacetDistribution{
			"category_ids":  {"pcat_1": 25},
			"brand_id":      {"brand_1": 20, "brand_x": 5},
			"collection_id": {"pcol_1": 1},
		},
	}}
	cat := &mockCatalog{}
	svc := services.NewSearchService(idx, cat, cat, cache.NewTTLCache(cache.DefaultTTL), []string{"options_color"}, zap.NewNop())

	q := models.ShopQuery{Page: 2, Sort: "newest", Query: "pla", OnSale: true}
	resp := svc.SearchProducts(context.Background(), q)

	assert.Equal(t, "pla", idx.last.Query)
	assert.Equal(t, 2, idx.last.Page)
	assert.Equal(t, services.ShopPageSize, idx.last.HitsPerPage)
	assert.Equal(t, []string{"created_at:desc"}, idx.last.Sort)
	assert.Equal(t, []string{"on_sale = true"}, idx.last.Filter)
	assert.Contains(t, idx.last.Facets, "options_color")
	assert.Contains(t, idx.last.Facets, "price")

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, int64(3), resp.TotalPages)
	assert.Equal(t, int64(2), resp.Page)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Filament", resp.Facets.Categories[0].Label)
	assert.Equal(t, "New Arrivals", resp.Facets.Collections[0].Label)
	assert.Equal(t, []models.FacetOption{
		{Value: "brand_x", Label: "brand_x", Count: 5},
		{Value: "brand_1", Label: "Prusa", Count: 20},
	}, resp.Facets.Brands)
}

func TestSearchProducts_LabelsAreCached(t *testing.T) {
	idx := &mockIndex{result: &models.SearchResult{}}
	cat := &mockCatalog{}
	svc := services.NewSearchService(idx, cat, cat, cache.NewTTLCache(cache.DefaultTTL), nil, zap.NewNop())

	svc.SearchProducts(context.Background(), models.ShopQuery{})
	svc.SearchProducts(context.Background(), models.ShopQuery{})
	assert.Equal(t, 1, cat.categoryCalls)
}

func TestSearchProducts_IndexFailureYieldsEmptyPage(t *testing.T) {
	idx := &mockIndex{err: errors.New("meilisearch unreachable")}
	cat := &mockCatalog{}
	svc := services.NewSearchService(idx, cat, cat, cache.NewTTLCache(cache.DefaultTTL), nil, zap.NewNop())

	resp := svc.SearchProducts(context.Background(), models.ShopQuery{Page: 0})
	assert.Empty(t, resp.Products)
	assert.Equal(t, int64(1), resp.Page)
	assert.Equal(t, int64(0), resp.Total)
}

func TestSearchBrandProducts_ForcesBrand(t *testing.T) {
	idx := &mockIndex{result: &models.SearchResult{}}
	cat := &mockCatalog{brandErr: errors.New("brand service down")}
	svc := services.NewSearchService(idx, cat, cat, cache.NewTTLCache(cache.DefaultTTL), nil, zap.NewNop())

	resp := svc.SearchBrandProducts(context.Background(), "brand_9", models.ShopQuery{Brands: []string{"brand_1"}})
	assert.Equal(t, []string{`brand_id IN ["brand_9"]`}, idx.last.Filter)
	assert.Equal(t, []string{"brand_9"}, resp.Query.Brands)
}

func TestSearchBrandProducts_RejectsCraftedOptionKey(t *testing.T) {
	idx := &mockIndex{result: &models.SearchResult{}}
	cat := &mockCatalog{}
	svc := services.NewSearchService(idx, cat, cat, cache.NewTTLCache(cache.DefaultTTL), nil, zap.NewNop())

	q := services.ParseShopQuery(url.Values{
		`options_a IN ["x"] OR price >= 0 OR options_b`: {"y"},
		"options_color": {"Red"},
	})
	svc.SearchBrandProducts(context.Background(), "brand_A", q)

	assert.Equal(t, []string{
		`brand_id IN ["brand_A"]`,
		`options_color IN ["Red"]`,
	}, idx.last.Filter)
}
