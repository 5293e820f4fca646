package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/meilisearch/meilisearch-go"
)

// MeiliProductIndex runs product searches against one Meilisearch index.
type MeiliProductIndex struct {
	index meilisearch.IndexManager
	name  string
}

func NewMeiliProductIndex(host, apiKey, indexName string) *MeiliProductIndex {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &MeiliProductIndex{index: client.Index(indexName), name: indexName}
}

// searchPayload is the subset of the search response the storefront reads.
type searchPayload struct {
	Hits               []models.ProductHit      `json:"hits"`
	TotalHits          int64                    `json:"totalHits"`
	EstimatedTotalHits int64                    `json:"estimatedTotalHits"`
	TotalPages         int64                    `json:"totalPages"`
	Page               int64                    `json:"page"`
	FacetDistribution  models.FacetDistribution `json:"facetDistribution"`
}

// JoinFilters ANDs the clauses, each in its own parentheses so an OR inside
// one clause cannot widen the others.
func JoinFilters(clauses []string) string {
	wrapped := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c = strings.TrimSpace(c); c != "" {
			wrapped = append(wrapped, "("+c+")")
		}
	}
	return strings.Join(wrapped, " AND ")
}

func (m *MeiliProductIndex) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	req := &meilisearch.SearchRequest{
		Facets:      q.Facets,
		Sort:        q.Sort,
		Page:        int64(q.Page),
		HitsPerPage: int64(q.HitsPerPage),
	}
	if len(q.Filter) > 0 {
		req.Filter = JoinFilters(q.Filter)
	}

	resp, err := m.index.SearchWithContext(ctx, q.Query, req)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search on %s: %w", m.name, err)
	}

	// Round-trip through JSON so hit documents land in typed structs.
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode search response: %w", err)
	}
	var payload searchPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	total := payload.TotalHits
	if total == 0 {
		total = payload.EstimatedTotalHits
	}
	return &models.SearchResult{
		Hits:              payload.Hits,
		TotalHits:         total,
		TotalPages:        payload.TotalPages,
		Page:              payload.Page,
		FacetDistribution: payload.FacetDistribution,
	}, nil
}
