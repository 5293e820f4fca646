package strapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Filters is a Strapi filter tree, e.g.
//
//	Filters{"slug": Filters{"$eq": "hello"}}
type Filters map[string]any

// Pagination selects a page of a collection.
type Pagination struct {
	Page     int
	PageSize int
}

// Query holds the REST parameters Strapi accepts on collection endpoints.
type Query struct {
	Filters    Filters
	Sort       []string
	Pagination *Pagination
	// Populate is "*", a []string of relations, or a nested map.
	Populate any
	Fields   []string
	Locale   string
	Status   string
}

// Clone returns a copy that can be modified without touching q.
func (q *Query) Clone() *Query {
	if q == nil {
		return &Query{}
	}
	out := *q
	if q.Filters != nil {
		out.Filters = make(Filters, len(q.Filters))
		for k, v := range q.Filters {
			out.Filters[k] = v
		}
	}
	if q.Pagination != nil {
		p := *q.Pagination
		out.Pagination = &p
	}
	out.Sort = append([]string(nil), q.Sort...)
	out.Fields = append([]string(nil), q.Fields...)
	return &out
}

// Values encodes the query in Strapi's bracketed form
// (filters[slug][$eq]=x&sort[0]=title:asc&pagination[page]=1).
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	if len(q.Filters) > 0 {
		flatten("filters", map[string]any(q.Filters), v)
	}
	for i, s := range q.Sort {
		v.Set(fmt.Sprintf("sort[%d]", i), s)
	}
	if q.Pagination != nil {
		if q.Pagination.Page > 0 {
			v.Set("pagination[page]", strconv.Itoa(q.Pagination.Page))
		}
		if q.Pagination.PageSize > 0 {
			v.Set("pagination[pageSize]", strconv.Itoa(q.Pagination.PageSize))
		}
	}
	switch p := q.Populate.(type) {
	case nil:
	case string:
		v.Set("populate", p)
	default:
		flatten("populate", p, v)
	}
	for i, f := range q.Fields {
		v.Set(fmt.Sprintf("fields[%d]", i), f)
	}
	if q.Locale != "" {
		v.Set("locale", q.Locale)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

func flatten(prefix string, value any, out url.Values) {
	switch t := value.(type) {
	case Filters:
		flatten(prefix, map[string]any(t), out)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(prefix+"["+k+"]", t[k], out)
		}
	case []any:
		for i, item := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), item, out)
		}
	case []Filters:
		for i, item := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), item, out)
		}
	case []string:
		for i, item := range t {
			out.Set(fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case string:
		out.Set(prefix, t)
	case bool:
		out.Set(prefix, strconv.FormatBool(t))
	case int:
		out.Set(prefix, strconv.Itoa(t))
	case int64:
		out.Set(prefix, strconv.FormatInt(t, 10))
	case float64:
		out.Set(prefix, strconv.FormatFloat(t, 'f', -1, 64))
	default:
		out.Set(prefix, fmt.Sprint(t))
	}
}

// searchFilters builds the filter tree for a free-text search. With fields it
// matches any of them case-insensitively; without fields it uses $search.
func searchFilters(base Filters, term string, fields []string) Filters {
	out := make(Filters, len(base)+1)
	for k, v := range base {
		out[k] = v
	}

	if len(fields) == 0 {
		out["$search"] = term
		return out
	}

	or := make([]Filters, 0, len(fields))
	for _, f := range fields {
		or = append(or, Filters{f: Filters{"$containsi": term}})
	}

	if existing, ok := out["$or"]; ok {
		delete(out, "$or")
		return Filters{"$and": []any{out, Filters{"$or": existing}, Filters{"$or": or}}}
	}
	out["$or"] = or
	return out
}
