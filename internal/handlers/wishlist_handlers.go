package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Wishlist Handlers ---

// AddWishlistItem is the handler for POST /v1/wishlist/add.
// The user's wishlist is created lazily on the first add; adding a product
// that is already on the list is a no-op with a 409.
func (h *Handlers) AddWishlistItem(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	var productExists int
	err := h.DB.QueryRow(
		"SELECT 1 FROM products WHERE id = ? AND is_active = TRUE AND is_visible = TRUE", input.ProductID,
	).Scan(&productExists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add to wishlist", "errors": err.Error()})
		return
	}

	userID := actingUserID(c)
	now := time.Now()

	var wishlistID string
	err = h.DB.QueryRow("SELECT id FROM wishlists WHERE user_id = ?", userID).Scan(&wishlistID)
	if err == sql.ErrNoRows {
		wishlistID = uuid.NewString()
		_, err = h.DB.Exec(`
			INSERT INTO wishlists (id, owner_type, user_id, status, last_seen_at, created_at, updated_at)
			VALUES (?, 'user', ?, 'active', ?, ?, ?)`,
			wishlistID, userID, now, now, now,
		)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add to wishlist", "errors": err.Error()})
		return
	}

	var dup string
	err = h.DB.QueryRow(
		"SELECT id FROM wishlist_items WHERE wishlist_id = ? AND product_id = ?",
		wishlistID, input.ProductID,
	).Scan(&dup)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Product is already in the wishlist"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add to wishlist", "errors": err.Error()})
		return
	}

	item := models.WishlistItem{
		ID:         uuid.NewString(),
		WishlistID: wishlistID,
		ProductID:  input.ProductID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err = h.DB.Exec(`
		INSERT INTO wishlist_items (id, wishlist_id, product_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.WishlistID, item.ProductID, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to add to wishlist", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product added to wishlist successfully",
		"data":    item,
	})
}

// GetWishlist is the handler for GET /v1/wishlist.
// Returns the wishlist with its items and each item's product; an empty
// payload (no wishlist yet) is not an error.
func (h *Handlers) GetWishlist(c *gin.Context) {
	userID := actingUserID(c)

	var wl models.Wishlist
	err := h.DB.QueryRow(`
		SELECT id, owner_type, user_id, status, last_seen_at, created_at, updated_at
		FROM wishlists WHERE user_id = ?`, userID,
	).Scan(&wl.ID, &wl.OwnerType, &wl.UserID, &wl.Status, &wl.LastSeenAt, &wl.CreatedAt, &wl.UpdatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Wishlist fetched successfully",
			"data":    nil,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch wishlist", "errors": err.Error()})
		return
	}

	_, _ = h.DB.Exec("UPDATE wishlists SET last_seen_at = ? WHERE id = ?", time.Now(), wl.ID)

	rows, err := h.DB.Query(`
		SELECT i.id, i.wishlist_id, i.product_id, i.created_at, i.updated_at,
		       p.id, p.shop_id, p.title, p.slug, p.description, p.category_id, p.is_active, p.is_visible,
		       p.country_id, p.country_name, p.state_id, p.state_name, p.city_id, p.city_name,
		       p.min_price, p.max_price, p.created_at, p.updated_at
		FROM wishlist_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.wishlist_id = ?
		ORDER BY i.created_at DESC`, wl.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch wishlist", "errors": err.Error()})
		return
	}
	defer rows.Close()

	wl.Items = []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		var p models.Product
		if err := rows.Scan(
			&item.ID, &item.WishlistID, &item.ProductID, &item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.ShopID, &p.Title, &p.Slug, &p.Description, &p.CategoryID, &p.IsActive, &p.IsVisible,
			&p.CountryID, &p.CountryName, &p.StateID, &p.StateName, &p.CityID, &p.CityName,
			&p.MinPrice, &p.MaxPrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch wishlist", "errors": err.Error()})
			return
		}
		item.Product = &p
		wl.Items = append(wl.Items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Wishlist fetched successfully",
		"data":    wl,
	})
}

// RemoveWishlistItem is the handler for POST /v1/wishlist/remove.
// The wishlist itself is deleted once its last item goes.
func (h *Handlers) RemoveWishlistItem(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	userID := actingUserID(c)
	var wishlistID string
	err := h.DB.QueryRow("SELECT id FROM wishlists WHERE user_id = ?", userID).Scan(&wishlistID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Wishlist not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"DELETE FROM wishlist_items WHERE wishlist_id = ? AND product_id = ?",
		wishlistID, input.ProductID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product is not in the wishlist"})
		return
	}

	var remaining int
	if err := tx.QueryRow("SELECT COUNT(*) FROM wishlist_items WHERE wishlist_id = ?", wishlistID).Scan(&remaining); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
		return
	}
	if remaining == 0 {
		if _, err := tx.Exec("DELETE FROM wishlists WHERE id = ?", wishlistID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to remove from wishlist", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product removed from wishlist successfully",
	})
}
