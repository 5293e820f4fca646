package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock admin API ---

type mockBrandAPI struct {
	lastList   medusa.ListParams
	lastInput  medusa.BrandInput
	lastID     string
	lastAdd    []string
	lastRemove []string
	err        error
}

func (m *mockBrandAPI) ListBrands(_ context.Context, p medusa.ListParams) (*medusa.BrandList, error) {
	m.lastList = p
	if m.err != nil {
		return nil, m.err
	}
	return &medusa.BrandList{Brands: []medusa.Brand{{ID: "brand_1", Name: "Prusa", Handle: "prusa"}}, Count: 1, Limit: p.Limit}, nil
}

func (m *mockBrandAPI) GetBrand(_ context.Context, id string) (*medusa.Brand, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &medusa.Brand{ID: id, Name: "Prusa", Handle: "prusa"}, nil
}

func (m *mockBrandAPI) CreateBrand(_ context.Context, in medusa.BrandInput) (*medusa.Brand, error) {
	m.lastInput = in
	if m.err != nil {
		return nil, m.err
	}
	return &medusa.Brand{ID: "brand_new", Name: in.Name, Handle: in.Handle}, nil
}

func (m *mockBrandAPI) UpdateBrand(_ context.Context, id string, in medusa.BrandInput) (*medusa.Brand, error) {
	m.lastID, m.lastInput = id, in
	if m.err != nil {
		return nil, m.err
	}
	return &medusa.Brand{ID: id, Name: in.Name, Handle: in.Handle}, nil
}

func (m *mockBrandAPI) DeleteBrand(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *mockBrandAPI) LinkBrandProducts(_ context.Context, id string, add, remove []string) (*medusa.Brand, error) {
	m.lastID, m.lastAdd, m.lastRemove = id, add, remove
	if m.err != nil {
		return nil, m.err
	}
	return &medusa.Brand{ID: id}, nil
}

func runCmd(api brandAPI, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, api, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// --- Tests ---

func TestRun_List(t *testing.T) {
	api := &mockBrandAPI{}
	code, out, _ := runCmd(api, "list", "-q", "pru", "-limit", "5")
	require.Equal(t, 0, code)
	assert.Equal(t, medusa.ListParams{Limit: 5, Q: "pru"}, api.lastList)

	var list medusa.BrandList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, 1, list.Count)
}

func TestRun_CreateAndUpdate(t *testing.T) {
	api := &mockBrandAPI{}

	code, out, _ := runCmd(api, "create", "-name", "Bambu Lab")
	require.Equal(t, 0, code)
	assert.Equal(t, "Bambu Lab", api.lastInput.Name)
	assert.Contains(t, out, `"id": "brand_new"`)

	code, _, _ = runCmd(api, "update", "-handle", "bambu", "brand_1")
	require.Equal(t, 0, code)
	assert.Equal(t, "brand_1", api.lastID)
	assert.Equal(t, medusa.BrandInput{Handle: "bambu"}, api.lastInput)
}

func TestRun_LinkAndUnlink(t *testing.T) {
	api := &mockBrandAPI{}

	code, _, _ := runCmd(api, "link", "brand_1", "prod_1", "prod_2")
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"prod_1", "prod_2"}, api.lastAdd)
	assert.Nil(t, api.lastRemove)

	code, _, _ = runCmd(api, "unlink", "brand_1", "prod_2")
	require.Equal(t, 0, code)
	assert.Nil(t, api.lastAdd)
	assert.Equal(t, []string{"prod_2"}, api.lastRemove)
}

func TestRun_FailurePrintsGenericMessage(t *testing.T) {
	api := &mockBrandAPI{err: &medusa.APIError{Status: 404, Type: "not_found", Message: "Brand not found"}}

	code, out, errOut := runCmd(api, "update", "-name", "X", "brand_404")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Update brand failed!")
	assert.Contains(t, errOut, "Brand not found")

	code, _, errOut = runCmd(api, "delete", "brand_404")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Delete brand failed!")
}

func TestRun_UsageErrors(t *testing.T) {
	api := &mockBrandAPI{}

	tests := [][]string{
		{},
		{"bogus"},
		{"get"},
		{"create"},
		{"update", "brand_1"},
		{"link", "brand_1"},
	}
	for _, args := range tests {
		code, _, _ := runCmd(api, args...)
		assert.Equal(t, 2, code, "%v", args)
	}
}
