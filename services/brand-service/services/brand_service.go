package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	awspkg "github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/aws"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	EventBrandCreated = "brand.created"
	EventBrandUpdated = "brand.updated"
	EventBrandDeleted = "brand.deleted"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// BrandService defines the interface for brand business logic.
type BrandService interface {
	CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, *ServiceError)
	UpdateBrand(ctx context.Context, id string, req *models.UpdateBrandRequest) (*models.Brand, *ServiceError)
	GetBrand(ctx context.Context, id string) (*models.Brand, *ServiceError)
	GetBrandByHandle(ctx context.Context, handle string) (*models.Brand, *ServiceError)
	ListBrands(ctx context.Context, q string, limit, offset int) (*models.BrandListResponse, *ServiceError)
	DeleteBrand(ctx context.Context, id string) *ServiceError
	LinkProducts(ctx context.Context, id string, req *models.LinkProductsRequest) (*models.Brand, *ServiceError)
}

type brandServiceImpl struct {
	repo        repository.BrandRepository
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	metrics     *awspkg.MetricsClient
	logger      *zap.Logger
	now         func() time.Time
}

// NewBrandService creates a new BrandService. snsClient and metrics may be nil.
func NewBrandService(
	repo repository.BrandRepository,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) BrandService {
	return &brandServiceImpl{
		repo:        repo,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Slugify lowercases s and joins its letter and digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func (s *brandServiceImpl) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, *ServiceError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Brand name is required"}
	}
	handle := Slugify(req.Handle)
	if handle == "" {
		handle = Slugify(name)
	}
	if handle == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Brand handle is required"}
	}
	if svcErr := s.ensureHandleFree(ctx, handle, ""); svcErr != nil {
		return nil, svcErr
	}

	brand := &models.Brand{Name: name, Handle: handle, Products: []models.BrandProduct{}}
	if err := s.repo.Create(ctx, brand); err != nil {
		if isDuplicate(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "Brand handle already exists"}
		}
		s.logger.Error("Failed to create brand", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create brand"}
	}

	s.logger.Info("Brand created", zap.String("brand_id", brand.ID), zap.String("handle", brand.Handle))
	s.publish(ctx, EventBrandCreated, brand)
	return brand, nil
}

func (s *brandServiceImpl) UpdateBrand(ctx context.Context, id string, req *models.UpdateBrandRequest) (*models.Brand, *ServiceError) {
	brand, svcErr := s.GetBrand(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		brand.Name = name
	}
	if req.Handle != "" {
		handle := Slugify(req.Handle)
		if handle == "" {
			return nil, &ServiceError{StatusCode: 400, Message: "Invalid brand handle"}
		}
		if handle != brand.Handle {
			if svcErr := s.ensureHandleFree(ctx, handle, brand.ID); svcErr != nil {
				return nil, svcErr
			}
			brand.Handle = handle
		}
	}

	if err := s.repo.Update(ctx, brand); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, &ServiceError{StatusCode: 404, Message: "Brand not found"}
		case isDuplicate(err):
			return nil, &ServiceError{StatusCode: 409, Message: "Brand handle already exists"}
		}
		s.logger.Error("Failed to update brand", zap.String("brand_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update brand"}
	}
	brand.UpdatedAt = s.now()

	s.logger.Info("Brand updated", zap.String("brand_id", brand.ID))
	s.publish(ctx, EventBrandUpdated, brand)
	return brand, nil
}

func (s *brandServiceImpl) GetBrand(ctx context.Context, id string) (*models.Brand, *ServiceError) {
	brand, err := s.repo.FindByID(ctx, id)
	return s.found(brand, err, "brand_id", id)
}

func (s *brandServiceImpl) GetBrandByHandle(ctx context.Context, handle string) (*models.Brand, *ServiceError) {
	brand, err := s.repo.FindByHandle(ctx, handle)
	return s.found(brand, err, "handle", handle)
}

// ListBrands returns one page of brands. limit is clamped to [1, 100].
func (s *brandServiceImpl) ListBrands(ctx context.Context, q string, limit, offset int) (*models.BrandListResponse, *ServiceError) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	brands, total, err := s.repo.FindAll(ctx, q, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list brands", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list brands"}
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	for i := range brands {
		if brands[i].Products == nil {
			brands[i].Products = []models.BrandProduct{}
		}
	}
	return &models.BrandListResponse{Brands: brands, Count: total, Limit: limit, Offset: offset}, nil
}

func (s *brandServiceImpl) DeleteBrand(ctx context.Context, id string) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Brand not found"}
		}
		s.logger.Error("Failed to delete brand", zap.String("brand_id", id), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete brand"}
	}

	s.logger.Info("Brand deleted", zap.String("brand_id", id))
	s.publish(ctx, EventBrandDeleted, &models.Brand{ID: id})
	return nil
}

// LinkProducts attaches and detaches products, then returns the refreshed brand.
func (s *brandServiceImpl) LinkProducts(ctx context.Context, id string, req *models.LinkProductsRequest) (*models.Brand, *ServiceError) {
	add := cleanIDs(req.Add)
	remove := cleanIDs(req.Remove)
	if len(add) == 0 && len(remove) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "No products to add or remove"}
	}
	if _, svcErr := s.GetBrand(ctx, id); svcErr != nil {
		return nil, svcErr
	}

	if err := s.repo.LinkProducts(ctx, id, add, remove); err != nil {
		s.logger.Error("Failed to link brand products", zap.String("brand_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update brand products"}
	}

	brand, svcErr := s.GetBrand(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	s.logger.Info("Brand products updated",
		zap.String("brand_id", id),
		zap.Int("added", len(add)),
		zap.Int("removed", len(remove)),
	)
	s.publish(ctx, EventBrandUpdated, brand)
	return brand, nil
}

func (s *brandServiceImpl) found(brand *models.Brand, err error, field, value string) (*models.Brand, *ServiceError) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Brand not found"}
		}
		s.logger.Error("Failed to fetch brand", zap.String(field, value), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch brand"}
	}
	if brand.Products == nil {
		brand.Products = []models.BrandProduct{}
	}
	return brand, nil
}

func (s *brandServiceImpl) ensureHandleFree(ctx context.Context, handle, exceptID string) *ServiceError {
	taken, err := s.repo.HandleExists(ctx, handle, exceptID)
	if err != nil {
		s.logger.Error("Failed to check brand handle", zap.String("handle", handle), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to save brand"}
	}
	if taken {
		return &ServiceError{StatusCode: 409, Message: "Brand handle already exists"}
	}
	return nil
}

// publish sends a brand event to SNS and records the change metric.
func (s *brandServiceImpl) publish(ctx context.Context, eventType string, brand *models.Brand) {
	_ = s.metrics.RecordCount(ctx, awspkg.MetricBrandsChanged, map[string]string{"Event": eventType})

	if s.snsClient == nil || s.snsTopicArn == "" {
		s.logger.Debug("SNS client not configured, skipping brand event", zap.String("event", eventType))
		return
	}
	event := models.BrandEvent{
		EventType: eventType,
		BrandID:   brand.ID,
		Handle:    brand.Handle,
		Name:      brand.Name,
		Timestamp: s.now().UTC(),
	}
	if err := awspkg.PublishJSON(ctx, s.snsClient, s.snsTopicArn, event); err != nil {
		s.logger.Error("Failed to publish brand event", zap.String("event", eventType), zap.Error(err))
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
