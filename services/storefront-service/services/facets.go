package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
)

func labelled(counts map[string]int64, labels map[string]string) []models.FacetOption {
	out := make([]models.FacetOption, 0, len(counts))
	for value, count := range counts {
		label, ok := labels[value]
		if !ok || label == "" {
			label = value
		}
		out = append(out, models.FacetOption{Value: value, Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if li != lj {
			return li < lj
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func priceRange(counts map[string]int64) *models.PriceRange {
	var r *models.PriceRange
	for key := range counts {
		p, err := strconv.ParseFloat(key, 64)
		if err != nil {
			continue
		}
		if r == nil {
			r = &models.PriceRange{Min: p, Max: p}
			continue
		}
		if p < r.Min {
			r.Min = p
		}
		if p > r.Max {
			r.Max = p
		}
	}
	return r
}

func booleanFacet(counts map[string]int64) models.BooleanFacet {
	return models.BooleanFacet{True: counts["true"], False: counts["false"]}
}

func optionFacet(counts map[string]int64) []models.FacetOption {
	out := make([]models.FacetOption, 0, len(counts))
	for value, count := range counts {
		if count <= 0 {
			continue
		}
		out = append(out, models.FacetOption{Value: value, Label: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// BuildShopFacets reshapes a raw facet distribution into the filter panel.
// Ids without a known label are shown as themselves.
func BuildShopFacets(dist models.FacetDistribution, labels models.CatalogLabels) models.ShopFacets {
	facets := models.ShopFacets{
		Categories:  labelled(dist[AttrCategories], labels.Categories),
		Brands:      labelled(dist[AttrBrand], labels.Brands),
		Collections: labelled(dist[AttrCollection], labels.Collections),
		PriceRange:  priceRange(dist[AttrPrice]),
		OnSale:      booleanFacet(dist[AttrOnSale]),
		InStock:     booleanFacet(dist[AttrInStock]),
		Options:     make(map[string][]models.FacetOption),
	}
	for attr, counts := range dist {
		if strings.HasPrefix(attr, OptionAttrPrefix) {
			facets.Options[attr] = optionFacet(counts)
		}
	}
	return facets
}
