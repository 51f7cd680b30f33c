package handlers

import (
	"crypto/rand"
	"database/sql"
	"math/big"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

// --- Inputs ---

type StoreProductInput struct {
	ID          *string `json:"id" binding:"omitempty,uuid"`
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	IsActive    *bool   `json:"is_active"`
	IsVisible   *bool   `json:"is_visible"`
	CountryID   *int64  `json:"country_id"`
	StateID     *int64  `json:"state_id"`
	CityID      *int64  `json:"city_id"`
}

const productSelect = `
	SELECT id, shop_id, title, slug, description, category_id, is_active, is_visible,
	       country_id, country_name, state_id, state_name, city_id, city_name,
	       min_price, max_price, created_at, updated_at
	FROM products`

// --- Product Handlers ---

// GetProducts is the handler for POST /v1/product/get.
// Lists the acting shop's own products, newest first.
func (h *Handlers) GetProducts(c *gin.Context) {
	userID := actingUserID(c)

	verified, err := h.checkShopVerification(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products", "errors": err.Error()})
		return
	}
	if !verified {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": shopNotVerifiedMsg})
		return
	}

	rows, err := h.DB.Query(productSelect+" WHERE shop_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products", "errors": err.Error()})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products", "errors": err.Error()})
			return
		}
		products = append(products, *p)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Products fetched successfully",
		"data":    products,
	})
}

// ShowProduct is the handler for POST /v1/product/show.
// Scoped to the acting shop; carries images and variants.
func (h *Handlers) ShowProduct(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	product, err := h.loadOwnProduct(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to show product", "errors": err.Error()})
		return
	}

	if cat, err := h.loadCategory(product.CategoryID); err == nil {
		product.Category = cat
	}
	product.Images = h.loadProductImages(product.ID)
	product.Variants, err = h.loadProductVariants(product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to show product", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product fetched successfully",
		"data":    product,
	})
}

// StoreProduct is the handler for POST /v1/product/store.
// Upserts a product for the acting shop. The slug comes from the title and
// gets a random 5-char suffix when another product already holds it.
func (h *Handlers) StoreProduct(c *gin.Context) {
	userID := actingUserID(c)

	verified, err := h.checkShopVerification(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
		return
	}
	if !verified {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": shopNotVerifiedMsg})
		return
	}

	var input StoreProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	var catExists int
	err = h.DB.QueryRow("SELECT 1 FROM product_categories WHERE id = ?", input.CategoryID).Scan(&catExists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": gin.H{"category_id": "does not exist"}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	isVisible := true
	if input.IsVisible != nil {
		isVisible = *input.IsVisible
	}
	countryName := h.countryName(input.CountryID)
	stateName := h.stateName(input.StateID)
	cityName := h.cityName(input.CityID)
	now := time.Now()

	created := input.ID == nil
	var productID string
	if created {
		productID = newUUIDv7()
		productSlug, err := h.uniqueProductSlug(input.Title, "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
			return
		}
		_, err = h.DB.Exec(`
			INSERT INTO products (id, shop_id, title, slug, description, category_id, is_active, is_visible,
			                      country_id, country_name, state_id, state_name, city_id, city_name,
			                      created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			productID, userID, input.Title, productSlug, input.Description, input.CategoryID, isActive, isVisible,
			input.CountryID, countryName, input.StateID, stateName, input.CityID, cityName, now, now,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
			return
		}
	} else {
		productID = *input.ID
		productSlug, err := h.uniqueProductSlug(input.Title, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
			return
		}
		res, err := h.DB.Exec(`
			UPDATE products
			SET title = ?, slug = ?, description = ?, category_id = ?, is_active = ?, is_visible = ?,
			    country_id = ?, country_name = ?, state_id = ?, state_name = ?, city_id = ?, city_name = ?,
			    updated_at = ?
			WHERE id = ? AND shop_id = ?`,
			input.Title, productSlug, input.Description, input.CategoryID, isActive, isVisible,
			input.CountryID, countryName, input.StateID, stateName, input.CityID, cityName, now,
			productID, userID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Zero rows can also mean an unchanged update; confirm ownership.
			if _, err := h.loadOwnProduct(productID, userID); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
		}
	}

	product, err := h.loadOwnProduct(productID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product", "errors": err.Error()})
		return
	}

	message := "Product updated successfully"
	if created {
		message = "Product created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    product,
	})
}

// DeleteProduct is the handler for POST /v1/product/destroy.
// The row is copied into temp_products before removal so a delete can be
// audited or restored by hand.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	userID := actingUserID(c)
	product, err := h.loadOwnProduct(input.ID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "errors": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO temp_products (id, shop_id, title, slug, description, category_id, is_active, is_visible,
		                           country_id, country_name, state_id, state_name, city_id, city_name,
		                           min_price, max_price, created_at, updated_at, deleted_at)
		SELECT id, shop_id, title, slug, description, category_id, is_active, is_visible,
		       country_id, country_name, state_id, state_name, city_id, city_name,
		       min_price, max_price, created_at, updated_at, ?
		FROM products WHERE id = ?`,
		time.Now(), product.ID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "errors": err.Error()})
		return
	}

	if _, err := tx.Exec("DELETE FROM products WHERE id = ? AND shop_id = ?", product.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "errors": err.Error()})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
		"data":    product,
	})
}

// --- Helpers ---

func scanProduct(scan func(...any) error) (*models.Product, error) {
	var p models.Product
	err := scan(
		&p.ID, &p.ShopID, &p.Title, &p.Slug, &p.Description, &p.CategoryID, &p.IsActive, &p.IsVisible,
		&p.CountryID, &p.CountryName, &p.StateID, &p.StateName, &p.CityID, &p.CityName,
		&p.MinPrice, &p.MaxPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *Handlers) loadOwnProduct(id, shopID string) (*models.Product, error) {
	row := h.DB.QueryRow(productSelect+" WHERE id = ? AND shop_id = ?", id, shopID)
	return scanProduct(row.Scan)
}

// uniqueProductSlug slugifies the title and, when another product (excluding
// excludeID) already uses that slug, appends "-" plus 5 random lowercase
// characters until the slug is free.
func (h *Handlers) uniqueProductSlug(title, excludeID string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for {
		var existingID string
		err := h.DB.QueryRow("SELECT id FROM products WHERE slug = ?", candidate).Scan(&existingID)
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if existingID == excludeID {
			return candidate, nil
		}
		suffix, err := randomLower(5)
		if err != nil {
			return "", err
		}
		candidate = base + "-" + suffix
	}
}

func randomLower(n int) (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b), nil
}
