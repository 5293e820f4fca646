package medusa_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *medusa.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return medusa.NewClient(srv.URL, 5*time.Second,
		medusa.WithPublishableKey("pk_test"),
		medusa.WithAdminToken("admin-token"),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAddLineItem(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/store/carts/cart_1/line-items", r.URL.Path)
		assert.Equal(t, "pk_test", r.Header.Get("x-publishable-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "variant_1", body["variant_id"])
		assert.Equal(t, float64(2), body["quantity"])

		writeJSON(w, http.StatusOK, map[string]any{"cart": map[string]any{
			"id":    "cart_1",
			"items": []map[string]any{{"id": "li_1", "variant_id": "variant_1", "quantity": 2, "unit_price": 15}},
			"total": 30,
		}})
	})

	cart, err := c.AddLineItem(context.Background(), "cart_1", "variant_1", 2)
	require.NoError(t, err)
	assert.Equal(t, "cart_1", cart.ID)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, 30.0, cart.Total)
}

func TestDeleteLineItem_ReturnsParent(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/store/carts/cart_1/line-items/li_1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "li_1", "object": "line-item", "deleted": true,
			"parent": map[string]any{"id": "cart_1", "items": []any{}},
		})
	})

	cart, err := c.DeleteLineItem(context.Background(), "cart_1", "li_1")
	require.NoError(t, err)
	assert.Equal(t, "cart_1", cart.ID)
	assert.Empty(t, cart.Items)
}

func TestGetCart_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"type": "not_found", "message": "Cart with id: cart_x was not found"})
	})

	_, err := c.GetCart(context.Background(), "cart_x")
	require.Error(t, err)
	assert.True(t, medusa.IsNotFound(err))
}

func TestListProductCategories_Pages(t *testing.T) {
	calls := 0
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		offset := r.URL.Query().Get("offset")
		cats := make([]map[string]any, 0, 100)
		if offset == "0" {
			for i := 0; i < 100; i++ {
				cats = append(cats, map[string]any{"id": "pcat_a", "name": "A"})
			}
		} else {
			cats = append(cats, map[string]any{"id": "pcat_b", "name": "B"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"product_categories": cats, "count": 101})
	})

	cats, err := c.ListProductCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, cats, 101)
	assert.Equal(t, "pcat_b", cats[100].ID)
}

func TestUpdateBrand_UsesAdminToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/brands/brand_1", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-publishable-api-key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Prusa"}`, string(body))
		writeJSON(w, http.StatusOK, map[string]any{"brand": map[string]any{"id": "brand_1", "name": "Prusa", "handle": "prusa"}})
	})

	b, err := c.UpdateBrand(context.Background(), "brand_1", medusa.BrandInput{Name: "Prusa"})
	require.NoError(t, err)
	assert.Equal(t, "prusa", b.Handle)
}

func TestLinkBrandProducts_SendsEmptyArrays(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"add":["prod_1"],"remove":[]}`, string(body))
		writeJSON(w, http.StatusOK, map[string]any{"brand": map[string]any{
			"id": "brand_1", "products": []map[string]any{{"id": "prod_1"}},
		}})
	})

	b, err := c.LinkBrandProducts(context.Background(), "brand_1", []string{"prod_1"}, nil)
	require.NoError(t, err)
	require.Len(t, b.Products, 1)
}

func TestDeleteBrand_Error(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	err := c.DeleteBrand(context.Background(), "brand_1")
	var apiErr *medusa.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}
