package repository

import (
	"context"
	"errors"

	"phuongnam/internal/domain"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// FoodFilter narrows a catalog listing. Nil pointer fields mean
// "no constraint"; supplied filters combine with AND.
type FoodFilter struct {
	Search     string
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	Available  *bool
	Limit      int
	Offset     int
}

// CatalogRepository is the storage behind categories and foods.
type CatalogRepository interface {
	ListFoods(ctx context.Context, f FoodFilter) ([]domain.Food, int64, error)
	GetFood(ctx context.Context, id int64) (*domain.Food, error)
	CreateFood(ctx context.Context, food *domain.Food) error
	UpdateFood(ctx context.Context, food *domain.Food) error
	UpdateStock(ctx context.Context, id, stock int64) (*domain.Food, error)
	DeleteFood(ctx context.Context, id int64) error
	PopularFoods(ctx context.Context, limit int) ([]domain.PopularFood, error)
	Stats(ctx context.Context) (*domain.FoodStats, error)

	ListCategories(ctx context.Context, includeInactive bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, cat *domain.Category) error
	UpdateCategory(ctx context.Context, cat *domain.Category) error
	DisableCategory(ctx context.Context, id int64) error
}
