package models

import "time"

// ProductCategory is the model for the 'product_categories' table.
// Categories form a two-level tree via ParentID.
type ProductCategory struct {
	ID       string  `json:"id" db:"id"`
	ParentID *string `json:"parentId,omitempty" db:"parent_id"`
	Name     string  `json:"name" db:"name"`
	Slug     string  `json:"slug" db:"slug"`
	IsActive bool    `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Parent   *ProductCategory  `json:"parent,omitempty" db:"-"`
	Children []ProductCategory `json:"children" db:"-"`
}

// ProductSubCategory is the model for the 'product_sub_categories' table.
type ProductSubCategory struct {
	ID         string `json:"id" db:"id"`
	CategoryID string `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	IsActive   bool   `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Category *ProductCategory `json:"category,omitempty" db:"-"`
}
