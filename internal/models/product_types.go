package models

import "time"

// Product is the model for the 'products' table. MinPrice/MaxPrice are a
// cached rollup over the product's variants and are never set by clients;
// both are nil while the product has no variants.
type Product struct {
	ID          string  `json:"id" db:"id"`
	ShopID      string  `json:"shopId" db:"shop_id"`
	Title       string  `json:"title" db:"title"`
	Slug        string  `json:"slug" db:"slug"`
	Description *string `json:"description,omitempty" db:"description"`
	CategoryID  string  `json:"categoryId" db:"category_id"`
	IsActive    bool    `json:"isActive" db:"is_active"`
	IsVisible   bool    `json:"isVisible" db:"is_visible"`

	CountryID   *int64  `json:"countryId,omitempty" db:"country_id"`
	CountryName *string `json:"countryName,omitempty" db:"country_name"`
	StateID     *int64  `json:"stateId,omitempty" db:"state_id"`
	StateName   *string `json:"stateName,omitempty" db:"state_name"`
	CityID      *int64  `json:"cityId,omitempty" db:"city_id"`
	CityName    *string `json:"cityName,omitempty" db:"city_name"`

	MinPrice *float64 `json:"minPrice" db:"min_price"`
	MaxPrice *float64 `json:"maxPrice" db:"max_price"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (not in DB table, populated manually)
	Category *ProductCategory `json:"category,omitempty" db:"-"`
	Images   []ProductImage   `json:"images,omitempty" db:"-"`
	Variants []ProductVariant `json:"variants,omitempty" db:"-"`
}

// ProductImage is the model for the 'product_images' table.
type ProductImage struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	FileName  string    `json:"fileName" db:"file_name"`
	FilePath  string    `json:"filePath" db:"file_path"`
	FileType  string    `json:"fileType" db:"file_type"`
	FileSize  int64     `json:"fileSize" db:"file_size"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductVariant is the model for the 'product_variants' table.
// SKU and OptionSignature are derived at creation and treated as immutable
// identity; only price and stock may change afterwards.
type ProductVariant struct {
	ID              string    `json:"id" db:"id"`
	ProductID       string    `json:"productId" db:"product_id"`
	SKU             string    `json:"sku" db:"sku"`
	OptionSignature string    `json:"optionSignature" db:"option_signature"`
	Price           float64   `json:"price" db:"price"`
	Stock           int       `json:"stock" db:"stock"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	Options []ProductVariantOption `json:"options,omitempty" db:"-"`
}

// ProductVariantOption is the join row between a variant and one of the
// attribute values it was composed from.
type ProductVariantOption struct {
	ID                      string `json:"id" db:"id"`
	ProductVariantID        string `json:"productVariantId" db:"product_variant_id"`
	ProductAttributeID      string `json:"productAttributeId" db:"product_attribute_id"`
	ProductAttributeValueID string `json:"productAttributeValueId" db:"product_attribute_value_id"`
}
