package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"phuongnam/internal/domain"
)

// GormCatalog implements CatalogRepository on a relational database.
// Each call issues a single request-scoped query through the driver's
// connection pool; there are no cross-entity transactions here.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

var _ CatalogRepository = (*GormCatalog)(nil)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// foodQuery applies the filter's WHERE clauses.
func foodQuery(db *gorm.DB, f FoodFilter) *gorm.DB {
	q := db.Model(&domain.Food{})
	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}
	return q
}

func (r *GormCatalog) ListFoods(ctx context.Context, f FoodFilter) ([]domain.Food, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := foodQuery(db, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := foodQuery(db, f).Preload("Category").Order("id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	foods := make([]domain.Food, 0)
	if err := q.Find(&foods).Error; err != nil {
		return nil, 0, err
	}
	return foods, total, nil
}

func (r *GormCatalog) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	var food domain.Food
	err := r.db.WithContext(ctx).Preload("Category").First(&food, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &food, nil
}

func (r *GormCatalog) CreateFood(ctx context.Context, food *domain.Food) error {
	if err := r.categoryExists(ctx, food.CategoryID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *GormCatalog) UpdateFood(ctx context.Context, food *domain.Food) error {
	var existing domain.Food
	if err := r.db.WithContext(ctx).First(&existing, food.ID).Error; err != nil {
		return translate(err)
	}
	if food.CategoryID != existing.CategoryID {
		if err := r.categoryExists(ctx, food.CategoryID); err != nil {
			return err
		}
	}
	food.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(food).Error
}

func (r *GormCatalog) UpdateStock(ctx context.Context, id, stock int64) (*domain.Food, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Food{}).Where("id = ?", id).Update("stock", stock)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetFood(ctx, id)
}

func (r *GormCatalog) DeleteFood(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Food{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCatalog) PopularFoods(ctx context.Context, limit int) ([]domain.PopularFood, error) {
	foods := make([]domain.PopularFood, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Food{}).
		Select("foods.*, COUNT(order_items.id) AS order_count").
		Joins("LEFT JOIN order_items ON order_items.food_id = foods.id").
		Group("foods.id").
		Order("order_count DESC, foods.id ASC").
		Limit(limit).
		Scan(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *GormCatalog) Stats(ctx context.Context) (*domain.FoodStats, error) {
	db := r.db.WithContext(ctx)
	var stats domain.FoodStats

	if err := db.Model(&domain.Food{}).Count(&stats.TotalFoods).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Food{}).Where("available = ?", true).Count(&stats.AvailableFoods).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}

	var agg struct {
		Avg float64
		Min int64
		Max int64
	}
	err := db.Model(&domain.Food{}).
		Select("COALESCE(AVG(price), 0) AS avg, COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	stats.AveragePrice = agg.Avg
	stats.PriceRange = domain.PriceRange{Min: agg.Min, Max: agg.Max}
	return &stats, nil
}

func (r *GormCatalog) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{}).Order("id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	cats := make([]domain.Category, 0)
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormCatalog) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var cat domain.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, translate(err)
	}
	return &cat, nil
}

func (r *GormCatalog) CreateCategory(ctx context.Context, cat *domain.Category) error {
	cat.Active = true
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *GormCatalog) UpdateCategory(ctx context.Context, cat *domain.Category) error {
	var existing domain.Category
	if err := r.db.WithContext(ctx).First(&existing, cat.ID).Error; err != nil {
		return translate(err)
	}
	cat.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *GormCatalog) DisableCategory(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Update("active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCatalog) categoryExists(ctx context.Context, id int64) error {
	var cat domain.Category
	if err := r.db.WithContext(ctx).Select("id").First(&cat, id).Error; err != nil {
		return translate(err)
	}
	return nil
}
