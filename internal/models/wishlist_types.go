package models

import "time"

// Wishlist is the model for the 'wishlists' table. One active wishlist per
// user; it is created lazily on the first add and removed once emptied.
type Wishlist struct {
	ID         string    `json:"id" db:"id"`
	OwnerType  string    `json:"ownerType" db:"owner_type"`
	UserID     string    `json:"userId" db:"user_id"`
	Status     string    `json:"status" db:"status"`
	LastSeenAt time.Time `json:"lastSeenAt" db:"last_seen_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Items []WishlistItem `json:"wishlistItems,omitempty" db:"-"`
}

// WishlistItem is the model for the 'wishlist_items' table.
type WishlistItem struct {
	ID         string    `json:"id" db:"id"`
	WishlistID string    `json:"wishlistId" db:"wishlist_id"`
	ProductID  string    `json:"productId" db:"product_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Product *Product `json:"product,omitempty" db:"-"`
}
