package repository

import (
	"context"
	"strings"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/brand-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	FindByID(ctx context.Context, id string) (*models.Brand, error)
	FindByHandle(ctx context.Context, handle string) (*models.Brand, error)
	HandleExists(ctx context.Context, handle, exceptID string) (bool, error)
	FindAll(ctx context.Context, q string, limit, offset int) ([]models.Brand, int64, error)
	Delete(ctx context.Context, id string) error
	LinkProducts(ctx context.Context, brandID string, add, remove []string) error
}

// GormBrandRepository implements BrandRepository using GORM.
type GormBrandRepository struct {
	db *gorm.DB
}

func NewGormBrandRepository(db *gorm.DB) BrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(brand).Error
}

// Update saves name and handle.
func (r *GormBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	result := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id = ?", brand.ID).
		Updates(map[string]any{"name": brand.Name, "handle": brand.Handle})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBrandRepository) FindByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).Preload("Products").Where("id = ?", id).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) FindByHandle(ctx context.Context, handle string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).Preload("Products").Where("handle = ?", handle).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// HandleExists reports whether another live brand already uses handle.
func (r *GormBrandRepository) HandleExists(ctx context.Context, handle, exceptID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Brand{}).Where("handle = ?", handle)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindAll retrieves brands ordered by name, optionally filtered by a
// case-insensitive substring match on name or handle. The search term is
// matched literally.
func (r *GormBrandRepository) FindAll(ctx context.Context, q string, limit, offset int) ([]models.Brand, int64, error) {
	var brands []models.Brand
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Brand{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(handle) LIKE ? ESCAPE '\'`, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Preload("Products").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// Delete soft-deletes the brand and drops its product links.
func (r *GormBrandRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Brand{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("brand_id = ?", id).Delete(&models.BrandProduct{}).Error
	})
}

// LinkProducts removes then adds links in one transaction. Adding a product
// that belongs to another brand moves it.
func (r *GormBrandRepository) LinkProducts(ctx context.Context, brandID string, add, remove []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(remove) > 0 {
			if err := tx.Where("brand_id = ? AND product_id IN ?", brandID, remove).
				Delete(&models.BrandProduct{}).Error; err != nil {
				return err
			}
		}
		if len(add) == 0 {
			return nil
		}
		links := make([]models.BrandProduct, 0, len(add))
		for _, pid := range add {
			links = append(links, models.BrandProduct{ProductID: pid, BrandID: brandID})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"brand_id"}),
		}).Create(&links).Error
	})
}
