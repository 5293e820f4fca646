package services

import (
	"context"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/strapi"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/cache"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"go.uber.org/zap"
)

// Strapi collection names.
const (
	CollectionBlogPosts       = "blog-posts"
	CollectionLandingPages    = "landing-pages"
	CollectionFAQs            = "faqs"
	CollectionBrandContents   = "brand-contents"
	CollectionProductContents = "product-contents"
)

const defaultBlogPageSize = 10

var blogSearchFields = []string{"title", "excerpt", "content"}

// ContentService reads CMS content through a TTL cache. CMS failures are
// logged and answered with an empty default; they are never cached.
type ContentService struct {
	blog     *strapi.Collection[models.BlogPost]
	landing  *strapi.Collection[models.LandingPage]
	faqs     *strapi.Collection[models.FAQ]
	brands   *strapi.Collection[models.EditorialContent]
	products *strapi.Collection[models.EditorialContent]
	cache    *cache.TTLCache
	logger   *zap.Logger
}

func NewContentService(client *strapi.Client, c *cache.TTLCache, logger *zap.Logger) *ContentService {
	return &ContentService{
		blog:     strapi.NewCollection[models.BlogPost](client, CollectionBlogPosts),
		landing:  strapi.NewCollection[models.LandingPage](client, CollectionLandingPages),
		faqs:     strapi.NewCollection[models.FAQ](client, CollectionFAQs),
		brands:   strapi.NewCollection[models.EditorialContent](client, CollectionBrandContents),
		products: strapi.NewCollection[models.EditorialContent](client, CollectionProductContents),
		cache:    c,
		logger:   logger,
	}
}

func cacheKey(collection, op string, q *strapi.Query) string {
	return collection + ":" + op + "?" + q.Values().Encode()
}

func bySlug(field, value string, populate any) *strapi.Query {
	return &strapi.Query{
		Filters:    strapi.Filters{field: strapi.Filters{"$eq": value}},
		Pagination: &strapi.Pagination{Page: 1, PageSize: 1},
		Populate:   populate,
	}
}

func first[T any](ctx context.Context, col *strapi.Collection[T], q *strapi.Query) (*T, error) {
	res, err := col.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, nil
	}
	return &res.Data[0], nil
}

// GetBlogPosts returns one page of posts, newest first.
func (s *ContentService) GetBlogPosts(ctx context.Context, page, pageSize int) *strapi.ListResponse[models.BlogPost] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultBlogPageSize
	}
	q := &strapi.Query{
		Sort:       []string{"publishedAt:desc"},
		Pagination: &strapi.Pagination{Page: page, PageSize: pageSize},
		Populate:   []string{"cover", "author"},
	}
	res, err := cache.Fetch(s.cache, cacheKey(CollectionBlogPosts, "list", q), func() (*strapi.ListResponse[models.BlogPost], error) {
		return s.blog.FindMany(ctx, q)
	})
	if err != nil {
		s.logger.Error("Failed to fetch blog posts", zap.Int("page", page), zap.Error(err))
		return strapi.EmptyList[models.BlogPost](pageSize)
	}
	return res
}

// GetBlogPost returns the post with the given slug, or nil.
func (s *ContentService) GetBlogPost(ctx context.Context, slug string) *models.BlogPost {
	q := bySlug("slug", slug, "*")
	post, err := cache.Fetch(s.cache, cacheKey(CollectionBlogPosts, "slug", q), func() (*models.BlogPost, error) {
		return first(ctx, s.blog, q)
	})
	if err != nil {
		s.logger.Error("Failed to fetch blog post", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	return post
}

// SearchBlogPosts matches term against title, excerpt and body.
func (s *ContentService) SearchBlogPosts(ctx context.Context, term string) []models.BlogPost {
	if term == "" {
		return []models.BlogPost{}
	}
	q := &strapi.Query{Sort: []string{"publishedAt:desc"}, Populate: []string{"cover"}}
	key := cacheKey(CollectionBlogPosts, "search:"+term, q)
	res, err := cache.Fetch(s.cache, key, func() (*strapi.ListResponse[models.BlogPost], error) {
		return s.blog.Search(ctx, term, blogSearchFields, q)
	})
	if err != nil {
		s.logger.Error("Failed to search blog posts", zap.String("term", term), zap.Error(err))
		return []models.BlogPost{}
	}
	return res.Data
}

func (s *ContentService) GetLandingPage(ctx context.Context, slug string) *models.LandingPage {
	q := bySlug("slug", slug, map[string]any{"sections": map[string]any{"populate": "*"}})
	page, err := cache.Fetch(s.cache, cacheKey(CollectionLandingPages, "slug", q), func() (*models.LandingPage, error) {
		return first(ctx, s.landing, q)
	})
	if err != nil {
		s.logger.Error("Failed to fetch landing page", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	return page
}

// GetFAQs returns every FAQ, optionally limited to one category.
func (s *ContentService) GetFAQs(ctx context.Context, category string) []models.FAQ {
	q := &strapi.Query{Sort: []string{"order:asc"}}
	if category != "" {
		q.Filters = strapi.Filters{"category": strapi.Filters{"$eq": category}}
	}
	faqs, err := cache.Fetch(s.cache, cacheKey(CollectionFAQs, "all", q), func() ([]models.FAQ, error) {
		return s.faqs.FindAll(ctx, q)
	})
	if err != nil {
		s.logger.Error("Failed to fetch FAQs", zap.String("category", category), zap.Error(err))
		return []models.FAQ{}
	}
	return faqs
}

func (s *ContentService) GetBrandContent(ctx context.Context, handle string) *models.EditorialContent {
	return s.editorial(ctx, s.brands, handle)
}

func (s *ContentService) GetProductContent(ctx context.Context, handle string) *models.EditorialContent {
	return s.editorial(ctx, s.products, handle)
}

func (s *ContentService) editorial(ctx context.Context, col *strapi.Collection[models.EditorialContent], handle string) *models.EditorialContent {
	q := bySlug("handle", handle, []string{"banner"})
	content, err := cache.Fetch(s.cache, cacheKey(col.Name(), "handle", q), func() (*models.EditorialContent, error) {
		return first(ctx, col, q)
	})
	if err != nil {
		s.logger.Error("Failed to fetch editorial content",
			zap.String("collection", col.Name()), zap.String("handle", handle), zap.Error(err))
		return nil
	}
	return content
}

// ClearCache drops every cached CMS answer.
func (s *ContentService) ClearCache() {
	s.cache.Clear()
	s.logger.Info("Content cache cleared")
}
