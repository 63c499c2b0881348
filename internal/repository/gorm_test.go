package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phuongnam/internal/domain"
)

func setupCatalog(t *testing.T) (*GormCatalog, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Food{}, &domain.OrderItem{}))
	return NewGormCatalog(db), db
}

// seedCatalog loads two categories and three foods priced
// 20000 / 50000 / 90000.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	cats := []domain.Category{
		{Name: "Noodles", Description: "Soups and noodle dishes", Active: true},
		{Name: "Rice", Description: "Rice plates", Active: true},
	}
	require.NoError(t, db.Create(&cats).Error)

	foods := []domain.Food{
		{Name: "Goi Cuon", Description: "Fresh spring rolls", Price: 20000, CategoryID: cats[0].ID, Available: true, Stock: 30},
		{Name: "Pho Bo", Description: "Beef noodle soup", Price: 50000, CategoryID: cats[0].ID, Available: true, Stock: 20},
		{Name: "Com Tam Suon", Description: "Broken rice with grilled pork", Price: 90000, CategoryID: cats[1].ID, Available: false, Stock: 0},
	}
	require.NoError(t, db.Create(&foods).Error)
}

func TestListFoods_Filters(t *testing.T) {
	r, db := setupCatalog(t)
	seedCatalog(t, db)
	ctx := context.Background()

	// no filters: everything, ordered by id ascending
	foods, total, err := r.ListFoods(ctx, FoodFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, foods, 3)
	assert.True(t, foods[0].ID < foods[1].ID && foods[1].ID < foods[2].ID)

	// case-insensitive search on name
	foods, total, err = r.ListFoods(ctx, FoodFilter{Search: "PHO"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, foods, 1)
	assert.Equal(t, "Pho Bo", foods[0].Name)

	// search also matches description
	foods, total, err = r.ListFoods(ctx, FoodFilter{Search: "grilled"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Com Tam Suon", foods[0].Name)

	// category filter
	cat := foods[0].CategoryID
	foods, total, err = r.ListFoods(ctx, FoodFilter{CategoryID: &cat})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// availability filter
	avail := true
	foods, total, err = r.ListFoods(ctx, FoodFilter{Available: &avail})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, f := range foods {
		assert.True(t, f.Available)
	}
}

func TestListFoods_PriceBand(t *testing.T) {
	r, db := setupCatalog(t)
	seedCatalog(t, db)
	ctx := context.Background()

	min, max := int64(30000), int64(80000)
	foods, total, err := r.ListFoods(ctx, FoodFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, foods, 1)
	assert.EqualValues(t, 50000, foods[0].Price)

	// inverted band matches nothing
	min, max = 80000, 30000
	foods, total, err = r.ListFoods(ctx, FoodFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, foods)
}

func TestListFoods_Pagination(t *testing.T) {
	r, db := setupCatalog(t)
	seedCatalog(t, db)
	ctx := context.Background()

	foods, total, err := r.ListFoods(ctx, FoodFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, foods, 2)

	foods, total, err = r.ListFoods(ctx, FoodFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, foods, 1)

	// offset beyond the total yields an empty page with the real total
	foods, total, err = r.ListFoods(ctx, FoodFilter{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, foods)
}

func TestPopularFoods_Ranking(t *testing.T) {
	r, db := setupCatalog(t)
	seedCatalog(t, db)
	ctx := context.Background()

	var foods []domain.Food
	require.NoError(t, db.Order("id ASC").Find(&foods).Error)

	// Pho Bo ordered three times, the rest never
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&domain.OrderItem{FoodID: foods[1].ID, Quantity: 1}).Error)
	}

	popular, err := r.PopularFoods(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, "Pho Bo", popular[0].Name)
	assert.EqualValues(t, 3, popular[0].OrderCount)
	// never-ordered foods rank last, ties broken by id ascending
	assert.Equal(t, foods[0].ID, popular[1].ID)
	assert.EqualValues(t, 0, popular[1].OrderCount)
	assert.Equal(t, foods[2].ID, popular[2].ID)

	popular, err = r.PopularFoods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, "Pho Bo", popular[0].Name)
}

func TestStats(t *testing.T) {
	r, db := setupCatalog(t)
	ctx := context.Background()

	// empty catalog: all zeros
	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalFoods)
	assert.EqualValues(t, 0, stats.AveragePrice)

	seedCatalog(t, db)
	stats, err = r.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalFoods)
	assert.EqualValues(t, 2, stats.AvailableFoods)
	assert.EqualValues(t, 2, stats.TotalCategories)
	assert.InDelta(t, (20000+50000+90000)/3.0, stats.AveragePrice, 0.5)
	assert.EqualValues(t, 20000, stats.PriceRange.Min)
	assert.EqualValues(t, 90000, stats.PriceRange.Max)
}

func TestFoodCRUD(t *testing.T) {
	r, db := setupCatalog(t)
	ctx := context.Background()

	cat := domain.Category{Name: "Noodles", Active: true}
	require.NoError(t, db.Create(&cat).Error)

	// unresolved category reference is rejected
	err := r.CreateFood(ctx, &domain.Food{Name: "Bun Bo", Price: 60000, CategoryID: cat.ID + 99})
	assert.ErrorIs(t, err, ErrNotFound)

	food := domain.Food{Name: "Bun Bo Hue", Price: 60000, CategoryID: cat.ID, Available: true, Stock: 15}
	require.NoError(t, r.CreateFood(ctx, &food))
	require.NotZero(t, food.ID)

	got, err := r.GetFood(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bun Bo Hue", got.Name)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Noodles", got.Category.Name)

	got.Name = "Bun Bo Hue Dac Biet"
	got.Price = 75000
	got.Category = nil
	require.NoError(t, r.UpdateFood(ctx, got))
	got, err = r.GetFood(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bun Bo Hue Dac Biet", got.Name)
	assert.EqualValues(t, 75000, got.Price)

	got, err = r.UpdateStock(ctx, food.ID, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.Stock)

	_, err = r.UpdateStock(ctx, food.ID+99, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.DeleteFood(ctx, food.ID))
	assert.ErrorIs(t, r.DeleteFood(ctx, food.ID), ErrNotFound)
	_, err = r.GetFood(ctx, food.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategories_SoftDisable(t *testing.T) {
	r, _ := setupCatalog(t)
	ctx := context.Background()

	cat := domain.Category{Name: "Drinks", Description: "Fresh drinks"}
	require.NoError(t, r.CreateCategory(ctx, &cat))
	require.NotZero(t, cat.ID)
	assert.True(t, cat.Active)

	cats, err := r.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	require.NoError(t, r.DisableCategory(ctx, cat.ID))
	assert.ErrorIs(t, r.DisableCategory(ctx, cat.ID+99), ErrNotFound)

	// disabled categories drop out of the active listing but stay in
	// the table
	cats, err = r.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, cats)

	cats, err = r.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.False(t, cats[0].Active)

	got, err := r.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", got.Name)

	got.Description = "Juices and smoothies"
	require.NoError(t, r.UpdateCategory(ctx, got))
	got, err = r.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juices and smoothies", got.Description)

	_, err = r.GetCategory(ctx, cat.ID+99)
	assert.ErrorIs(t, err, ErrNotFound)
}
