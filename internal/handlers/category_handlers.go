package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// --- Inputs ---

type StoreProductCategoryInput struct {
	ID       *string `json:"id" binding:"omitempty,uuid"`
	Name     string  `json:"name" binding:"required,max=255"`
	IsActive *bool   `json:"is_active"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type StoreProductSubCategoryInput struct {
	ID         *string `json:"id" binding:"omitempty,uuid"`
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Name       string  `json:"name" binding:"required,max=255"`
	IsActive   *bool   `json:"is_active"`
}

// --- Category Handlers ---

// GetProductCategories is the handler for GET /v1/product-categories.
// Returns all categories with children attached to their parents.
func (h *Handlers) GetProductCategories(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, parent_id, name, slug, is_active, created_at, updated_at
		FROM product_categories ORDER BY name ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product categories", "errors": err.Error()})
		return
	}
	defer rows.Close()

	var allCats []models.ProductCategory
	for rows.Next() {
		var cat models.ProductCategory
		cat.Children = []models.ProductCategory{}
		if err := rows.Scan(&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product categories", "errors": err.Error()})
			return
		}
		allCats = append(allCats, cat)
	}

	// Attach children to parents via a lookup map of slice pointers.
	catMap := make(map[string]*models.ProductCategory)
	for i := range allCats {
		catMap[allCats[i].ID] = &allCats[i]
	}
	for i := range allCats {
		cat := &allCats[i]
		if cat.ParentID != nil {
			if parent, exists := catMap[*cat.ParentID]; exists {
				parent.Children = append(parent.Children, *cat)
			}
		}
	}

	roots := []models.ProductCategory{}
	for _, cat := range allCats {
		if cat.ParentID == nil {
			roots = append(roots, cat)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product categories fetched successfully",
		"data":    roots,
	})
}

// ShowProductCategory is the handler for POST /v1/product-categories/show.
func (h *Handlers) ShowProductCategory(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	cat, err := h.loadCategory(input.ID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to show product category", "errors": err.Error()})
		return
	}

	if cat.ParentID != nil {
		if parent, err := h.loadCategory(*cat.ParentID); err == nil {
			cat.Parent = parent
		}
	}
	cat.Children = h.loadCategoryChildren(cat.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product category fetched successfully",
		"data":    cat,
	})
}

// StoreProductCategory is the handler for POST /v1/product-categories.
// Admin only; upserts by id, deriving the slug from the name.
func (h *Handlers) StoreProductCategory(c *gin.Context) {
	var input StoreProductCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	catSlug := slug.Make(input.Name)
	now := time.Now()

	created := input.ID == nil
	var catID string
	if created {
		catID = newUUIDv7()
		_, err := h.DB.Exec(`
			INSERT INTO product_categories (id, parent_id, name, slug, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			catID, input.ParentID, input.Name, catSlug, isActive, now, now,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product category", "errors": err.Error()})
			return
		}
	} else {
		catID = *input.ID
		res, err := h.DB.Exec(`
			UPDATE product_categories
			SET name = ?, slug = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			input.Name, catSlug, isActive, now, catID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product category", "errors": err.Error()})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product category not found"})
			return
		}
	}

	cat, err := h.loadCategory(catID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product category", "errors": err.Error()})
		return
	}

	message := "Product category updated successfully"
	if created {
		message = "Product category created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    cat,
	})
}

// DeleteProductCategory is the handler for POST /v1/product-categories/delete.
// Admin only. Sub-categories must go first and child categories block their
// parent, mirroring the two-level tree rules.
func (h *Handlers) DeleteProductCategory(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	cat, err := h.loadCategory(input.ID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product category", "errors": err.Error()})
		return
	}

	var childCount int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM product_categories WHERE parent_id = ?", cat.ID).Scan(&childCount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product category", "errors": err.Error()})
		return
	}
	if childCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product category has sub categories, please delete them first"})
		return
	}
	if cat.ParentID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product category has a parent, please delete the parent first"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM product_categories WHERE id = ?", cat.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product category", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product category deleted successfully",
		"data":    cat,
	})
}

// --- Sub-Category Handlers ---

// GetProductSubCategories is the handler for GET /v1/product-sub-categories.
// Non-admin callers only see active rows; ?category_id filters by parent.
func (h *Handlers) GetProductSubCategories(c *gin.Context) {
	role := c.GetString("userRole")
	categoryID := c.Query("category_id")

	query := `
		SELECT sc.id, sc.category_id, sc.name, sc.slug, sc.is_active, sc.created_at, sc.updated_at,
		       pc.id, pc.parent_id, pc.name, pc.slug, pc.is_active, pc.created_at, pc.updated_at
		FROM product_sub_categories sc
		JOIN product_categories pc ON pc.id = sc.category_id
		WHERE 1 = 1`
	args := []interface{}{}

	if role != "admin" {
		query += " AND sc.is_active = TRUE"
	}
	if categoryID != "" {
		query += " AND sc.category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY sc.name ASC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product sub categories", "errors": err.Error()})
		return
	}
	defer rows.Close()

	subCategories := []models.ProductSubCategory{}
	for rows.Next() {
		var sc models.ProductSubCategory
		var cat models.ProductCategory
		if err := rows.Scan(
			&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.IsActive, &sc.CreatedAt, &sc.UpdatedAt,
			&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch product sub categories", "errors": err.Error()})
			return
		}
		sc.Category = &cat
		subCategories = append(subCategories, sc)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product sub categories fetched successfully",
		"data":    subCategories,
	})
}

// ShowProductSubCategory is the handler for POST /v1/product-sub-categories/show.
func (h *Handlers) ShowProductSubCategory(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	sc, err := h.loadSubCategory(input.ID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product sub category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to show product sub category", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product sub category fetched successfully",
		"data":    sc,
	})
}

// StoreProductSubCategory is the handler for POST /v1/product-sub-categories.
func (h *Handlers) StoreProductSubCategory(c *gin.Context) {
	var input StoreProductSubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	// Parent category must exist.
	var exists int
	err := h.DB.QueryRow("SELECT 1 FROM product_categories WHERE id = ?", input.CategoryID).Scan(&exists)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": gin.H{"category_id": "does not exist"}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product sub category", "errors": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	scSlug := slug.Make(input.Name)
	now := time.Now()

	created := input.ID == nil
	var scID string
	if created {
		scID = newUUIDv7()
		_, err = h.DB.Exec(`
			INSERT INTO product_sub_categories (id, category_id, name, slug, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			scID, input.CategoryID, input.Name, scSlug, isActive, now, now,
		)
	} else {
		scID = *input.ID
		var res sql.Result
		res, err = h.DB.Exec(`
			UPDATE product_sub_categories
			SET category_id = ?, name = ?, slug = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			input.CategoryID, input.Name, scSlug, isActive, now, scID,
		)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product sub category not found"})
				return
			}
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product sub category", "errors": err.Error()})
		return
	}

	sc, err := h.loadSubCategory(scID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create product sub category", "errors": err.Error()})
		return
	}

	message := "Product sub category updated successfully"
	if created {
		message = "Product sub category created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    sc,
	})
}

// DeleteProductSubCategory is the handler for POST /v1/product-sub-categories/delete.
// Admin only.
func (h *Handlers) DeleteProductSubCategory(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	sc, err := h.loadSubCategory(input.ID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product sub category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product sub category", "errors": err.Error()})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM product_sub_categories WHERE id = ?", sc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete product sub category", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product sub category deleted successfully",
		"data":    sc,
	})
}

// --- Helpers ---

// newUUIDv7 returns a time-ordered UUID for catalog rows.
func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (h *Handlers) loadCategory(id string) (*models.ProductCategory, error) {
	var cat models.ProductCategory
	err := h.DB.QueryRow(`
		SELECT id, parent_id, name, slug, is_active, created_at, updated_at
		FROM product_categories WHERE id = ?`, id,
	).Scan(&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	cat.Children = []models.ProductCategory{}
	return &cat, nil
}

func (h *Handlers) loadCategoryChildren(parentID string) []models.ProductCategory {
	children := []models.ProductCategory{}
	rows, err := h.DB.Query(`
		SELECT id, parent_id, name, slug, is_active, created_at, updated_at
		FROM product_categories WHERE parent_id = ? ORDER BY name ASC`, parentID)
	if err != nil {
		return children
	}
	defer rows.Close()
	for rows.Next() {
		var cat models.ProductCategory
		cat.Children = []models.ProductCategory{}
		if err := rows.Scan(&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			continue
		}
		children = append(children, cat)
	}
	return children
}

func (h *Handlers) loadSubCategory(id string) (*models.ProductSubCategory, error) {
	var sc models.ProductSubCategory
	var cat models.ProductCategory
	err := h.DB.QueryRow(`
		SELECT sc.id, sc.category_id, sc.name, sc.slug, sc.is_active, sc.created_at, sc.updated_at,
		       pc.id, pc.parent_id, pc.name, pc.slug, pc.is_active, pc.created_at, pc.updated_at
		FROM product_sub_categories sc
		JOIN product_categories pc ON pc.id = sc.category_id
		WHERE sc.id = ?`, id,
	).Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.IsActive, &sc.CreatedAt, &sc.UpdatedAt,
		&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sc.Category = &cat
	return &sc, nil
}
