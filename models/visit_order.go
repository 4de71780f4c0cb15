package models

import "time"

// VisitOrder belongs to exactly one Visit, not to the guest directly.
// The cascading delete must therefore enumerate visits first.
type VisitOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VisitID   uint      `gorm:"not null;index" json:"visit_id"`
	Category  string    `gorm:"type:varchar(20);not null" json:"category"`
	Item      string    `gorm:"type:varchar(255);not null" json:"item"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

const (
	OrderCategoryAppetizer = "appetizer"
	OrderCategoryEntree    = "entree"
	OrderCategoryCocktail  = "cocktail"
	OrderCategoryDessert   = "dessert"
)
