package services

import (
	"context"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/cache"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"go.uber.org/zap"
)

// ProductIndex runs a product search.
type ProductIndex interface {
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)
}

// CatalogAPI lists the commerce catalog entities used as facet labels.
type CatalogAPI interface {
	ListProductCategories(ctx context.Context) ([]medusa.ProductCategory, error)
	ListCollections(ctx context.Context) ([]medusa.ProductCollection, error)
}

// BrandDirectory lists the public brands.
type BrandDirectory interface {
	ListStoreBrands(ctx context.Context) ([]medusa.Brand, error)
}

type SearchService struct {
	index        ProductIndex
	catalog      CatalogAPI
	brands       BrandDirectory
	cache        *cache.TTLCache
	optionFacets []string
	logger       *zap.Logger
}

// NewSearchService builds the shop search. optionFacets lists the options_*
// attributes to request facet counts for.
func NewSearchService(index ProductIndex, catalog CatalogAPI, brands BrandDirectory, c *cache.TTLCache, optionFacets []string, logger *zap.Logger) *SearchService {
	return &SearchService{
		index:        index,
		catalog:      catalog,
		brands:       brands,
		cache:        c,
		optionFacets: optionFacets,
		logger:       logger,
	}
}

func (s *SearchService) facets() []string {
	out := []string{AttrCategories, AttrBrand, AttrCollection, AttrPrice, AttrOnSale, AttrInStock}
	return append(out, s.optionFacets...)
}

// SearchProducts runs a shop listing query. When the index fails the
// shopper gets an empty page rather than an error.
func (s *SearchService) SearchProducts(ctx context.Context, q models.ShopQuery) *models.ShopResponse {
	if q.Page < 1 {
		q.Page = 1
	}
	resp := &models.ShopResponse{
		Products: []models.ProductHit{},
		Page:     int64(q.Page),
		Query:    q,
	}

	result, err := s.index.Search(ctx, models.SearchQuery{
		Query:       q.Query,
		Filter:      BuildFilter(q),
		Sort:        SortFor(q.Sort),
		Facets:      s.facets(),
		Page:        q.Page,
		HitsPerPage: ShopPageSize,
	})
	if err != nil {
		s.logger.Error("Product search failed", zap.String("q", q.Query), zap.Error(err))
		resp.Facets = BuildShopFacets(nil, models.CatalogLabels{})
		return resp
	}

	if result.Hits != nil {
		resp.Products = result.Hits
	}
	resp.Total = result.TotalHits
	resp.TotalPages = result.TotalPages
	if result.Page > 0 {
		resp.Page = result.Page
	}
	resp.Facets = BuildShopFacets(result.FacetDistribution, s.Labels(ctx))
	return resp
}

// SearchBrandProducts lists one brand's products; the brand from the path
// replaces any brand filter in the query string.
func (s *SearchService) SearchBrandProducts(ctx context.Context, brandID string, q models.ShopQuery) *models.ShopResponse {
	q.Brands = []string{brandID}
	return s.SearchProducts(ctx, q)
}

// Labels returns id -> name maps for categories, brands and collections.
// A catalog that cannot be fetched contributes an empty map.
func (s *SearchService) Labels(ctx context.Context) models.CatalogLabels {
	return models.CatalogLabels{
		Categories:  s.categoryLabels(ctx),
		Brands:      s.brandLabels(ctx),
		Collections: s.collectionLabels(ctx),
	}
}

func (s *SearchService) categoryLabels(ctx context.Context) map[string]string {
	labels, err := cache.Fetch(s.cache, "labels:categories", func() (map[string]string, error) {
		cats, err := s.catalog.ListProductCategories(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(cats))
		for _, c := range cats {
			m[c.ID] = c.Name
		}
		return m, nil
	})
	if err != nil {
		s.logger.Warn("Failed to load category labels", zap.Error(err))
		return map[string]string{}
	}
	return labels
}

func (s *SearchService) collectionLabels(ctx context.Context) map[string]string {
	labels, err := cache.Fetch(s.cache, "labels:collections", func() (map[string]string, error) {
		cols, err := s.catalog.ListCollections(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(cols))
		for _, c := range cols {
			m[c.ID] = c.Title
		}
		return m, nil
	})
	if err != nil {
		s.logger.Warn("Failed to load collection labels", zap.Error(err))
		return map[string]string{}
	}
	return labels
}

func (s *SearchService) brandLabels(ctx context.Context) map[string]string {
	labels, err := cache.Fetch(s.cache, "labels:brands", func() (map[string]string, error) {
		brands, err := s.brands.ListStoreBrands(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(brands))
		for _, b := range brands {
			m[b.ID] = b.Name
		}
		return m, nil
	})
	if err != nil {
		s.logger.Warn("Failed to load brand labels", zap.Error(err))
		return map[string]string{}
	}
	return labels
}
