package medusa

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type brandEnvelope struct {
	Brand Brand `json:"brand"`
}

func (c *Client) ListBrands(ctx context.Context, p ListParams) (*BrandList, error) {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Q != "" {
		q.Set("q", p.Q)
	}
	var out BrandList
	if err := c.do(ctx, http.MethodGet, "/admin/brands", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBrand(ctx context.Context, id string) (*Brand, error) {
	var out brandEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/brands/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Brand, nil
}

func (c *Client) CreateBrand(ctx context.Context, in BrandInput) (*Brand, error) {
	var out brandEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/brands", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Brand, nil
}

func (c *Client) UpdateBrand(ctx context.Context, id string, in BrandInput) (*Brand, error) {
	var out brandEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/brands/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out.Brand, nil
}

func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/brands/"+url.PathEscape(id), nil, nil, nil)
}

// LinkBrandProducts adds and removes product links in one call.
func (c *Client) LinkBrandProducts(ctx context.Context, id string, add, remove []string) (*Brand, error) {
	body := map[string][]string{"add": add, "remove": remove}
	if body["add"] == nil {
		body["add"] = []string{}
	}
	if body["remove"] == nil {
		body["remove"] = []string{}
	}
	var out brandEnvelope
	if err := c.do(ctx, http.MethodPost, "/admin/brands/"+url.PathEscape(id)+"/products", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Brand, nil
}
