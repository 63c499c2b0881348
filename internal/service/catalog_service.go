package service

import (
	"context"
	"errors"
	"strings"

	"phuongnam/internal/domain"
	"phuongnam/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	// DefaultLimit is the page size when the caller supplies none.
	DefaultLimit = 20
	// DefaultSearchLimit caps the quick-search variant.
	DefaultSearchLimit = 10
	// DefaultPopularLimit caps the popular-foods ranking.
	DefaultPopularLimit = 10
)

// CatalogService is the query engine over the food catalog: it
// normalizes filter parameters and delegates to the repository.
type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListFoods returns one page of foods matching all supplied filters
// plus the total match count before pagination. Negative limit and
// offset clamp to zero; a zero limit falls back to DefaultLimit.
// minPrice > maxPrice yields an empty result, not an error.
func (s *CatalogService) ListFoods(ctx context.Context, f repository.FoodFilter) ([]domain.Food, int64, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return []domain.Food{}, 0, nil
	}
	return s.repo.ListFoods(ctx, f)
}

// SearchFoods is the keyword-search variant; the query is required.
func (s *CatalogService) SearchFoods(ctx context.Context, query string, limit int) ([]domain.Food, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.repo.ListFoods(ctx, repository.FoodFilter{Search: query, Limit: limit})
}

// PopularFoods ranks foods by historical order count descending,
// ties broken by id ascending.
func (s *CatalogService) PopularFoods(ctx context.Context, limit int) ([]domain.PopularFood, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return s.repo.PopularFoods(ctx, limit)
}

// Stats aggregates over the full, unfiltered catalog.
func (s *CatalogService) Stats(ctx context.Context) (*domain.FoodStats, error) {
	return s.repo.Stats(ctx)
}

func (s *CatalogService) GetFood(ctx context.Context, id int64) (*domain.Food, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetFood(ctx, id)
}

func validFood(f *domain.Food) bool {
	n := len(strings.TrimSpace(f.Name))
	if n == 0 || n > 200 || len(f.Description) > 1000 {
		return false
	}
	if f.Price < 0 || f.Stock < 0 || f.CategoryID <= 0 {
		return false
	}
	if f.SpiceLevel != 0 && (f.SpiceLevel < 1 || f.SpiceLevel > 5) {
		return false
	}
	return true
}

func (s *CatalogService) CreateFood(ctx context.Context, food domain.Food) (*domain.Food, error) {
	cp := food
	if !validFood(&cp) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.CreateFood(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// UpdateFoodInput carries a partial update; nil fields are untouched.
type UpdateFoodInput struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *int64
	Available   *bool
	Stock       *int64
	Ingredients *string
	CookingTime *int
	Calories    *int
	SpiceLevel  *int
	ImageURL    *string
}

func (s *CatalogService) UpdateFood(ctx context.Context, id int64, in UpdateFoodInput) (*domain.Food, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	food, err := s.repo.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		food.Name = *in.Name
	}
	if in.Description != nil {
		food.Description = *in.Description
	}
	if in.Price != nil {
		food.Price = *in.Price
	}
	if in.CategoryID != nil {
		food.CategoryID = *in.CategoryID
	}
	if in.Available != nil {
		food.Available = *in.Available
	}
	if in.Stock != nil {
		food.Stock = *in.Stock
	}
	if in.Ingredients != nil {
		food.Ingredients = *in.Ingredients
	}
	if in.CookingTime != nil {
		food.CookingTime = *in.CookingTime
	}
	if in.Calories != nil {
		food.Calories = *in.Calories
	}
	if in.SpiceLevel != nil {
		food.SpiceLevel = *in.SpiceLevel
	}
	if in.ImageURL != nil {
		food.ImageURL = *in.ImageURL
	}
	food.Category = nil
	if !validFood(food) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.UpdateFood(ctx, food); err != nil {
		return nil, err
	}
	return s.repo.GetFood(ctx, id)
}

func (s *CatalogService) UpdateStock(ctx context.Context, id, stock int64) (*domain.Food, error) {
	if id <= 0 || stock < 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.UpdateStock(ctx, id, stock)
}

func (s *CatalogService) DeleteFood(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DeleteFood(ctx, id)
}

// ListCategories returns active categories; includeInactive widens it
// to the full set for admin views.
func (s *CatalogService) ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, includeInactive)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetCategory(ctx, id)
}

func validCategory(c *domain.Category) bool {
	n := len(strings.TrimSpace(c.Name))
	return n > 0 && n <= 100 && len(c.Description) <= 500
}

func (s *CatalogService) CreateCategory(ctx context.Context, cat domain.Category) (*domain.Category, error) {
	cp := cat
	if !validCategory(&cp) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.CreateCategory(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// UpdateCategoryInput carries a partial update; nil fields are untouched.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Active      *bool
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in UpdateCategoryInput) (*domain.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	cat, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.ImageURL != nil {
		cat.ImageURL = *in.ImageURL
	}
	if in.Active != nil {
		cat.Active = *in.Active
	}
	if !validCategory(cat) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.UpdateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DisableCategory is the soft delete: the row stays, Active drops.
func (s *CatalogService) DisableCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DisableCategory(ctx, id)
}
