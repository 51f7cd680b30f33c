package models

import "time"

// ProductAttribute is a named axis of variation (e.g. "Color"), scoped to a
// shop. Code is the slug of the name and feeds the option signature.
type ProductAttribute struct {
	ID       string `json:"id" db:"id"`
	ShopID   string `json:"shopId" db:"shop_id"`
	Name     string `json:"name" db:"name"`
	Code     string `json:"code" db:"code"`
	Type     string `json:"type" db:"type"`
	IsActive bool   `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductAttributeValue is one enumerable option of an attribute
// (e.g. "Red"). Code is the slug of the value and feeds the variant SKU.
type ProductAttributeValue struct {
	ID          string `json:"id" db:"id"`
	AttributeID string `json:"attributeId" db:"attribute_id"`
	Value       string `json:"value" db:"value"`
	Code        string `json:"code" db:"code"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	SortOrder   int    `json:"sortOrder" db:"sort_order"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Attribute *ProductAttribute `json:"attribute,omitempty" db:"-"`
}

// ProductAttributeSet links a product to an attribute it varies on.
type ProductAttributeSet struct {
	ProductID          string    `json:"productId" db:"product_id"`
	ProductAttributeID string    `json:"productAttributeId" db:"product_attribute_id"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`

	Attribute *ProductAttribute       `json:"productAttribute,omitempty" db:"-"`
	Values    []ProductAttributeValue `json:"productAttributeValues,omitempty" db:"-"`
}
