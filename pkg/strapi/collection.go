package strapi

import (
	"context"
	"net/url"
)

// DefaultFindAllPageSize is the page size FindAll uses when the query does not set one.
const DefaultFindAllPageSize = 100

// Collection is a typed view over one Strapi content type, e.g. "blog-posts".
type Collection[T any] struct {
	client *Client
	name   string
}

func NewCollection[T any](client *Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

// Name returns the collection's API name.
func (col *Collection[T]) Name() string {
	return col.name
}

// FindOne fetches a single entry. It returns nil, nil when Strapi answers 404.
func (col *Collection[T]) FindOne(ctx context.Context, id string, q *Query) (*T, error) {
	var out singleResponse[T]
	err := col.client.get(ctx, col.name+"/"+url.PathEscape(id), q.Values(), &out)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FindMany fetches a single page.
func (col *Collection[T]) FindMany(ctx context.Context, q *Query) (*ListResponse[T], error) {
	var out ListResponse[T]
	if err := col.client.get(ctx, col.name, q.Values(), &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return &out, nil
}

// FindAll walks every page starting at page 1 until page >= pageCount.
func (col *Collection[T]) FindAll(ctx context.Context, q *Query) ([]T, error) {
	pq := q.Clone()
	pageSize := DefaultFindAllPageSize
	if pq.Pagination != nil && pq.Pagination.PageSize > 0 {
		pageSize = pq.Pagination.PageSize
	}

	all := []T{}
	for page := 1; ; page++ {
		pq.Pagination = &Pagination{Page: page, PageSize: pageSize}
		res, err := col.FindMany(ctx, pq)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)

		if page >= res.Meta.Pagination.PageCount || len(res.Data) == 0 {
			return all, nil
		}
	}
}

// Search runs a free-text query. With fields it matches any of them using
// $containsi; without fields it falls back to a global $search filter.
func (col *Collection[T]) Search(ctx context.Context, term string, fields []string, q *Query) (*ListResponse[T], error) {
	sq := q.Clone()
	sq.Filters = searchFilters(sq.Filters, term, fields)
	return col.FindMany(ctx, sq)
}
