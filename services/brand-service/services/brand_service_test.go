package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock Repository ---

type mockBrandRepository struct {
	brands  map[string]*models.Brand
	links   map[string]string // product id -> brand id
	nextID  int
	failAll error
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{
		brands: make(map[string]*models.Brand),
		links:  make(map[string]string),
	}
}

func (m *mockBrandRepository) Create(_ context.Context, brand *models.Brand) error {
	if m.failAll != nil {
		return m.failAll
	}
	m.nextID++
	brand.ID = models.IDPrefix + string(rune('0'+m.nextID))
	cp := *brand
	m.brands[brand.ID] = &cp
	return nil
}

func (m *mockBrandRepository) Update(_ context.Context, brand *models.Brand) error {
	b, ok := m.brands[brand.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Name = brand.Name
	b.Handle = brand.Handle
	return nil
}

func (m *mockBrandRepository) withProducts(b *models.Brand) *models.Brand {
	cp := *b
	cp.Products = nil
	for pid, bid := range m.links {
		if bid == b.ID {
			cp.Products = append(cp.Products, models.BrandProduct{ProductID: pid, BrandID: bid})
		}
	}
	sort.Slice(cp.Products, func(i, j int) bool { return cp.Products[i].ProductID < cp.Products[j].ProductID })
	return &cp
}

func (m *mockBrandRepository) FindByID(_ context.Context, id string) (*models.Brand, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	b, ok := m.brands[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withProducts(b), nil
}

func (m *mockBrandRepository) FindByHandle(_ context.Context, handle string) (*models.Brand, error) {
	for _, b := range m.brands {
		if b.Handle == handle {
			return m.withProducts(b), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrandRepository) HandleExists(_ context.Context, handle, exceptID string) (bool, error) {
	for _, b := range m.brands {
		if b.Handle == handle && b.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBrandRepository) FindAll(_ context.Context, q string, limit, offset int) ([]models.Brand, int64, error) {
	if m.failAll != nil {
		return nil, 0, m.failAll
	}
	var all []models.Brand
	for _, b := range m.brands {
		if q == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(q)) {
			all = append(all, *m.withProducts(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockBrandRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.brands[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.brands, id)
	for pid, bid := range m.links {
		if bid == id {
			delete(m.links, pid)
		}
	}
	return nil
}

func (m *mockBrandRepository) LinkProducts(_ context.Context, brandID string, add, remove []string) error {
	for _, pid := range remove {
		if m.links[pid] == brandID {
			delete(m.links, pid)
		}
	}
	for _, pid := range add {
		m.links[pid] = brandID
	}
	return nil
}

// --- Mock SNS Publisher ---

type mockSNSPublisher struct {
	mu       sync.Mutex
	messages [][]byte
}

func (m *mockSNSPublisher) Publish(_ context.Context, _ string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockSNSPublisher) eventTypes(t *testing.T) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, msg := range m.messages {
		var event models.BrandEvent
		require.NoError(t, json.Unmarshal(msg, &event))
		out = append(out, event.EventType)
	}
	return out
}

func newBrandService() (services.BrandService, *mockBrandRepository, *mockSNSPublisher) {
	repo := newMockBrandRepository()
	sns := &mockSNSPublisher{}
	svc := services.NewBrandService(repo, sns, "arn:aws:sns:ap-southeast-2:000000000000:brands", nil, zap.NewNop())
	return svc, repo, sns
}

// --- Tests ---

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Bambu Lab":           "bambu-lab",
		"  Prusa  Research ":  "prusa-research",
		"Creality/Ender 3 V2": "creality-ender-3-v2",
		"eSUN!!":              "esun",
		"---":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, services.Slugify(in), in)
	}
}

func TestCreateBrand_DerivesHandle(t *testing.T) {
	svc, _, sns := newBrandService()

	brand, svcErr := svc.CreateBrand(context.Background(), &models.CreateBrandRequest{Name: " Bambu Lab "})
	require.Nil(t, svcErr)
	assert.Equal(t, "Bambu Lab", brand.Name)
	assert.Equal(t, "bambu-lab", brand.Handle)
	assert.NotNil(t, brand.Products)
	assert.Equal(t, []string{services.EventBrandCreated}, sns.eventTypes(t))
}

func TestCreateBrand_DuplicateHandle(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()

	_, svcErr := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Prusa", Handle: "prusa"})
	require.Nil(t, svcErr)

	_, svcErr = svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Prusa Research", Handle: "Prusa"})
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestCreateBrand_RepositoryFailure(t *testing.T) {
	svc, repo, sns := newBrandService()
	repo.failAll = errors.New("connection refused")

	_, svcErr := svc.CreateBrand(context.Background(), &models.CreateBrandRequest{Name: "eSUN"})
	require.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.Empty(t, sns.eventTypes(t))
}

func TestCreateBrand_UniqueViolationFromDatabase(t *testing.T) {
	svc, repo, _ := newBrandService()
	repo.failAll = errors.New(`ERROR: duplicate key value violates unique constraint "idx_brands_handle"`)

	_, svcErr := svc.CreateBrand(context.Background(), &models.CreateBrandRequest{Name: "eSUN"})
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestUpdateBrand(t *testing.T) {
	svc, _, sns := newBrandService()
	ctx := context.Background()

	created, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Creality"})
	other, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Elegoo"})

	updated, svcErr := svc.UpdateBrand(ctx, created.ID, &models.UpdateBrandRequest{Name: "Creality 3D", Handle: "creality-3d"})
	require.Nil(t, svcErr)
	assert.Equal(t, "Creality 3D", updated.Name)
	assert.Equal(t, "creality-3d", updated.Handle)

	_, svcErr = svc.UpdateBrand(ctx, created.ID, &models.UpdateBrandRequest{Handle: other.Handle})
	require.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)

	_, svcErr = svc.UpdateBrand(ctx, "brand_missing", &models.UpdateBrandRequest{Name: "x"})
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	assert.Equal(t, []string{services.EventBrandCreated, services.EventBrandCreated, services.EventBrandUpdated}, sns.eventTypes(t))
}

func TestUpdateBrand_SameHandleIsAllowed(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()

	created, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Anycubic"})
	updated, svcErr := svc.UpdateBrand(ctx, created.ID, &models.UpdateBrandRequest{Handle: "anycubic"})
	require.Nil(t, svcErr)
	assert.Equal(t, "anycubic", updated.Handle)
}

func TestGetBrandByHandle(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()

	created, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Polymaker"})

	got, svcErr := svc.GetBrandByHandle(ctx, "polymaker")
	require.Nil(t, svcErr)
	assert.Equal(t, created.ID, got.ID)

	_, svcErr = svc.GetBrandByHandle(ctx, "nope")
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestListBrands_ClampsPaging(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()
	for _, name := range []string{"Bambu Lab", "Anycubic", "Creality"} {
		_, svcErr := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: name})
		require.Nil(t, svcErr)
	}

	page, svcErr := svc.ListBrands(ctx, "", 2, -5)
	require.Nil(t, svcErr)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 0, page.Offset)
	require.Len(t, page.Brands, 2)
	assert.Equal(t, "Anycubic", page.Brands[0].Name)

	page, svcErr = svc.ListBrands(ctx, "", 0, 10)
	require.Nil(t, svcErr)
	assert.Equal(t, 20, page.Limit)
	assert.NotNil(t, page.Brands)
	assert.Empty(t, page.Brands)

	page, svcErr = svc.ListBrands(ctx, "", 500, 0)
	require.Nil(t, svcErr)
	assert.Equal(t, 100, page.Limit)
}

func TestListBrands_Failure(t *testing.T) {
	svc, repo, _ := newBrandService()
	repo.failAll = errors.New("boom")

	_, svcErr := svc.ListBrands(context.Background(), "", 10, 0)
	require.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
}

func TestDeleteBrand(t *testing.T) {
	svc, _, sns := newBrandService()
	ctx := context.Background()

	created, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Sunlu"})
	require.Nil(t, svc.DeleteBrand(ctx, created.ID))

	svcErr := svc.DeleteBrand(ctx, created.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, []string{services.EventBrandCreated, services.EventBrandDeleted}, sns.eventTypes(t))
}

func TestLinkProducts(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()

	a, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Prusa"})
	b, _ := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Bambu"})

	brand, svcErr := svc.LinkProducts(ctx, a.ID, &models.LinkProductsRequest{Add: []string{"prod_1", " prod_2 ", "prod_1", ""}})
	require.Nil(t, svcErr)
	require.Len(t, brand.Products, 2)
	assert.Equal(t, "prod_1", brand.Products[0].ProductID)
	assert.Equal(t, "prod_2", brand.Products[1].ProductID)

	// Linking to another brand moves the product.
	_, svcErr = svc.LinkProducts(ctx, b.ID, &models.LinkProductsRequest{Add: []string{"prod_2"}})
	require.Nil(t, svcErr)

	brand, svcErr = svc.LinkProducts(ctx, a.ID, &models.LinkProductsRequest{Remove: []string{"prod_1"}})
	require.Nil(t, svcErr)
	assert.Empty(t, brand.Products)
	assert.NotNil(t, brand.Products)
}

func TestLinkProducts_Validation(t *testing.T) {
	svc, _, _ := newBrandService()
	ctx := context.Background()

	_, svcErr := svc.LinkProducts(ctx, "brand_x", &models.LinkProductsRequest{})
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	_, svcErr = svc.LinkProducts(ctx, "brand_x", &models.LinkProductsRequest{Add: []string{"prod_1"}})
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestBrandService_WithoutSNS(t *testing.T) {
	svc := services.NewBrandService(newMockBrandRepository(), nil, "", nil, zap.NewNop())
	_, svcErr := svc.CreateBrand(context.Background(), &models.CreateBrandRequest{Name: "Overture"})
	assert.Nil(t, svcErr)
}
