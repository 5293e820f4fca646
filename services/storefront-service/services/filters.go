package services

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
)

// Index attributes the shop filters on.
const (
	AttrCategories   = "category_ids"
	AttrBrand        = "brand_id"
	AttrCollection   = "collection_id"
	AttrPrice        = "price"
	AttrOnSale       = "on_sale"
	AttrInStock      = "in_stock"
	OptionAttrPrefix = "options_"
)

var optionAttrPattern = regexp.MustCompile(`^options_[A-Za-z0-9_]+$`)

// ShopPageSize is the number of products per listing page.
const ShopPageSize = 12

var sortOptions = map[string]string{
	"price_asc":  "price:asc",
	"price_desc": "price:desc",
	"newest":     "created_at:desc",
	"title_asc":  "title:asc",
	"title_desc": "title:desc",
}

// SortFor maps a shop sort key to index sort rules. Unknown keys sort by
// relevance.
func SortFor(key string) []string {
	if rule, ok := sortOptions[key]; ok {
		return []string{rule}
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseShopQuery reads the listing page query string. Malformed numbers are
// ignored rather than rejected.
func ParseShopQuery(v url.Values) models.ShopQuery {
	q := models.ShopQuery{
		Page:        1,
		Sort:        v.Get("sort"),
		Query:       strings.TrimSpace(v.Get("q")),
		Categories:  splitList(v["category"]),
		Collections: splitList(v["collection"]),
		Brands:      splitList(v["brand"]),
		MinPrice:    parseFloat(v.Get("minPrice")),
		MaxPrice:    parseFloat(v.Get("maxPrice")),
		OnSale:      v.Get("onSale") == "true",
		InStock:     v.Get("inStock") == "true",
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	for key, values := range v {
		if !optionAttrPattern.MatchString(key) {
			continue
		}
		if vals := splitList(values); len(vals) > 0 {
			if q.Options == nil {
				q.Options = make(map[string][]string)
			}
			q.Options[key] = vals
		}
	}
	return q
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func inClause(attr string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return fmt.Sprintf("%s IN [%s]", attr, strings.Join(quoted, ","))
}

// BuildFilter turns a shop query into index filter clauses, to be ANDed.
func BuildFilter(q models.ShopQuery) []string {
	var clauses []string
	if len(q.Categories) > 0 {
		clauses = append(clauses, inClause(AttrCategories, q.Categories))
	}
	if len(q.Brands) > 0 {
		clauses = append(clauses, inClause(AttrBrand, q.Brands))
	}
	if len(q.Collections) > 0 {
		clauses = append(clauses, inClause(AttrCollection, q.Collections))
	}
	if q.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("%s >= %s", AttrPrice, strconv.FormatFloat(*q.MinPrice, 'f', -1, 64)))
	}
	if q.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("%s <= %s", AttrPrice, strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64)))
	}
	if q.OnSale {
		clauses = append(clauses, AttrOnSale+" = true")
	}
	if q.InStock {
		clauses = append(clauses, AttrInStock+" = true")
	}

	attrs := make([]string, 0, len(q.Options))
	for attr := range q.Options {
		if optionAttrPattern.MatchString(attr) {
			attrs = append(attrs, attr)
		}
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		clauses = append(clauses, inClause(attr, q.Options[attr]))
	}
	return clauses
}
