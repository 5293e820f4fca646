package medusa

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const listPageSize = 100

type cartEnvelope struct {
	Cart Cart `json:"cart"`
}

// CreateCart creates an empty cart, optionally bound to a region.
func (c *Client) CreateCart(ctx context.Context, regionID string) (*Cart, error) {
	body := map[string]any{}
	if regionID != "" {
		body["region_id"] = regionID
	}
	var out cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+url.PathEscape(cartID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	var out cartEnvelope
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+url.PathEscape(cartID)+"/line-items", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error) {
	var out cartEnvelope
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(lineID)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]any{"quantity": quantity}, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// DeleteLineItem removes a line item and returns the updated cart.
func (c *Client) DeleteLineItem(ctx context.Context, cartID, lineID string) (*Cart, error) {
	var out struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
		Parent  Cart   `json:"parent"`
	}
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(lineID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Parent, nil
}

// ListProductCategories returns every category, paging with limit/offset.
func (c *Client) ListProductCategories(ctx context.Context) ([]ProductCategory, error) {
	var all []ProductCategory
	for offset := 0; ; offset += listPageSize {
		var page struct {
			ProductCategories []ProductCategory `json:"product_categories"`
			Count             int               `json:"count"`
		}
		if err := c.do(ctx, http.MethodGet, "/store/product-categories", pageQuery(offset, "id,name,handle,parent_category_id"), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.ProductCategories...)
		if len(page.ProductCategories) == 0 || offset+listPageSize >= page.Count {
			return all, nil
		}
	}
}

// ListCollections returns every product collection.
func (c *Client) ListCollections(ctx context.Context) ([]ProductCollection, error) {
	var all []ProductCollection
	for offset := 0; ; offset += listPageSize {
		var page struct {
			Collections []ProductCollection `json:"collections"`
			Count       int                 `json:"count"`
		}
		if err := c.do(ctx, http.MethodGet, "/store/collections", pageQuery(offset, "id,title,handle"), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Collections...)
		if len(page.Collections) == 0 || offset+listPageSize >= page.Count {
			return all, nil
		}
	}
}

// ListStoreBrands returns every brand from the public brand listing.
func (c *Client) ListStoreBrands(ctx context.Context) ([]Brand, error) {
	var all []Brand
	for offset := 0; ; offset += listPageSize {
		var page BrandList
		if err := c.do(ctx, http.MethodGet, "/store/brands", pageQuery(offset, ""), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Brands...)
		if len(page.Brands) == 0 || offset+listPageSize >= page.Count {
			return all, nil
		}
	}
}

func pageQuery(offset int, fields string) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(listPageSize))
	q.Set("offset", strconv.Itoa(offset))
	if fields != "" {
		q.Set("fields", fields)
	}
	return q
}
