package domain

import "time"

// Category is a menu section. Categories are soft-disabled via the
// Active flag and never hard-deleted; foods keep referencing them.
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:500"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Food is a catalog item. Price is in whole currency units (VND),
// there are no minor units.
type Food struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	Price       int64     `json:"price" gorm:"not null"`
	CategoryID  int64     `json:"category_id" gorm:"index;not null"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Available   bool      `json:"available"`
	Stock       int64     `json:"stock"`
	Ingredients string    `json:"ingredients,omitempty"`
	CookingTime int       `json:"cooking_time,omitempty"`
	Calories    int       `json:"calories,omitempty"`
	SpiceLevel  int       `json:"spice_level,omitempty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderItem is a historical order line. The popular-foods ranking is
// computed over these rows; there is no full order workflow here.
type OrderItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FoodID    int64     `json:"food_id" gorm:"index;not null"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// PopularFood annotates a food with how many times it was ordered.
type PopularFood struct {
	Food       `gorm:"embedded"`
	OrderCount int64 `json:"order_count"`
}

// PriceRange is the min/max price over the catalog.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FoodStats aggregates over the full, unfiltered catalog.
type FoodStats struct {
	TotalFoods      int64      `json:"total_foods"`
	AvailableFoods  int64      `json:"available_foods"`
	TotalCategories int64      `json:"total_categories"`
	AveragePrice    float64    `json:"average_price"`
	PriceRange      PriceRange `json:"price_range"`
}
