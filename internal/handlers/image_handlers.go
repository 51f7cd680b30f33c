package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/images"
	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type StoreProductImageInput struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Image     string `json:"image" binding:"required"`
}

// --- Product Image Handlers ---

// GetProductImages is the handler for POST /v1/product-image/get.
func (h *Handlers) GetProductImages(c *gin.Context) {
	var input struct {
		ProductID string `json:"product_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	if _, err := h.loadOwnProduct(input.ProductID, actingUserID(c)); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product images", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product images fetched successfully",
		"data":    h.loadProductImages(input.ProductID),
	})
}

// StoreProductImage is the handler for POST /v1/product-image/store.
// Accepts a base64 payload (data URL or bare), sniffs the real type before
// writing, and replaces the product's previous image file on disk.
func (h *Handlers) StoreProductImage(c *gin.Context) {
	var input StoreProductImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	if _, err := h.loadOwnProduct(input.ProductID, actingUserID(c)); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product image", "errors": err.Error()})
		return
	}

	if !images.IsValidImage(input.Image) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": gin.H{"image": "must be a valid base64 encoded image"}})
		return
	}

	// Replace the existing image row and file when one exists.
	var existing models.ProductImage
	err := h.DB.QueryRow(`
		SELECT id, file_path FROM product_images WHERE product_id = ? ORDER BY created_at DESC LIMIT 1`,
		input.ProductID,
	).Scan(&existing.ID, &existing.FilePath)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product image", "errors": err.Error()})
		return
	}

	saved, err := h.Images.Save(input.Image, "products", existing.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product image", "errors": err.Error()})
		return
	}

	now := time.Now()
	image := models.ProductImage{
		ProductID: input.ProductID,
		FileName:  saved.FileName,
		FilePath:  saved.FilePath,
		FileType:  saved.FileType,
		FileSize:  saved.FileSize,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing.ID != "" {
		image.ID = existing.ID
		_, err = h.DB.Exec(`
			UPDATE product_images
			SET file_name = ?, file_path = ?, file_type = ?, file_size = ?, updated_at = ?
			WHERE id = ?`,
			image.FileName, image.FilePath, image.FileType, image.FileSize, now, image.ID,
		)
	} else {
		image.ID = newUUIDv7()
		_, err = h.DB.Exec(`
			INSERT INTO product_images (id, product_id, file_name, file_path, file_type, file_size, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			image.ID, image.ProductID, image.FileName, image.FilePath, image.FileType, image.FileSize, now, now,
		)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product image", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product image saved successfully",
		"data":    image,
	})
}

// --- Helpers ---

func (h *Handlers) loadProductImages(productID string) []models.ProductImage {
	out := []models.ProductImage{}
	rows, err := h.DB.Query(`
		SELECT id, product_id, file_name, file_path, file_type, file_size, created_at, updated_at
		FROM product_images WHERE product_id = ? ORDER BY created_at ASC`, productID)
	if err != nil {
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.FileName, &img.FilePath, &img.FileType, &img.FileSize, &img.CreatedAt, &img.UpdatedAt); err != nil {
			continue
		}
		out = append(out, img)
	}
	return out
}
