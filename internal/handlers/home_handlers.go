package handlers

import (
	"database/sql"
	"net/http"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type FilterProductsInput struct {
	Keyword         *string  `json:"keyword"`
	CategorySlug    *string  `json:"category_slug"`
	SubCategorySlug *string  `json:"sub_category_slug"`
	MinPrice        *float64 `json:"min_price" binding:"omitempty,gte=0"`
	MaxPrice        *float64 `json:"max_price" binding:"omitempty,gte=0"`
	SortBy          *string  `json:"sort_by" binding:"omitempty,oneof=price_asc price_desc newest name_asc name_desc"`
}

const publicProductWhere = " WHERE is_active = TRUE AND is_visible = TRUE"

// --- Home Handlers (public, no auth) ---

// HomeProducts is the handler for GET /v1/home/products.
func (h *Handlers) HomeProducts(c *gin.Context) {
	rows, err := h.DB.Query(productSelect + publicProductWhere + " ORDER BY created_at DESC LIMIT 100")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products", "errors": err.Error()})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products", "errors": err.Error()})
			return
		}
		products = append(products, *p)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Products fetched successfully",
		"data":    products,
	})
}

// HomeCategories is the handler for GET /v1/home/categories.
// Active top-level categories with their active children.
func (h *Handlers) HomeCategories(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, parent_id, name, slug, is_active, created_at, updated_at
		FROM product_categories WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch categories", "errors": err.Error()})
		return
	}
	defer rows.Close()

	var all []models.ProductCategory
	for rows.Next() {
		var cat models.ProductCategory
		cat.Children = []models.ProductCategory{}
		if err := rows.Scan(&cat.ID, &cat.ParentID, &cat.Name, &cat.Slug, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch categories", "errors": err.Error()})
			return
		}
		all = append(all, cat)
	}

	catMap := make(map[string]*models.ProductCategory)
	for i := range all {
		catMap[all[i].ID] = &all[i]
	}
	for i := range all {
		if all[i].ParentID != nil {
			if parent, ok := catMap[*all[i].ParentID]; ok {
				parent.Children = append(parent.Children, all[i])
			}
		}
	}
	roots := []models.ProductCategory{}
	for _, cat := range all {
		if cat.ParentID == nil {
			roots = append(roots, cat)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Categories fetched successfully",
		"data":    roots,
	})
}

// HomeSubCategories is the handler for GET /v1/home/sub-categories/:categorySlug.
func (h *Handlers) HomeSubCategories(c *gin.Context) {
	categorySlug := c.Param("categorySlug")

	var categoryID string
	err := h.DB.QueryRow(
		"SELECT id FROM product_categories WHERE slug = ? AND is_active = TRUE", categorySlug,
	).Scan(&categoryID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch sub categories", "errors": err.Error()})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, category_id, name, slug, is_active, created_at, updated_at
		FROM product_sub_categories
		WHERE category_id = ? AND is_active = TRUE ORDER BY name ASC`, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch sub categories", "errors": err.Error()})
		return
	}
	defer rows.Close()

	subCategories := []models.ProductSubCategory{}
	for rows.Next() {
		var sc models.ProductSubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.IsActive, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch sub categories", "errors": err.Error()})
			return
		}
		subCategories = append(subCategories, sc)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Sub categories fetched successfully",
		"data":    subCategories,
	})
}

// FilterProducts is the handler for POST /v1/home/products/filter.
// Builds the WHERE clause from whichever filters the caller sent; keyword
// matches title, description and variant sku.
func (h *Handlers) FilterProducts(c *gin.Context) {
	var input FilterProductsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	query := productSelect + publicProductWhere
	args := []interface{}{}

	if input.CategorySlug != nil && *input.CategorySlug != "" {
		query += " AND category_id IN (SELECT id FROM product_categories WHERE slug = ?)"
		args = append(args, *input.CategorySlug)
	}
	if input.SubCategorySlug != nil && *input.SubCategorySlug != "" {
		query += ` AND category_id IN (
			SELECT category_id FROM product_sub_categories WHERE slug = ?)`
		args = append(args, *input.SubCategorySlug)
	}
	if input.MinPrice != nil {
		query += " AND min_price >= ?"
		args = append(args, *input.MinPrice)
	}
	if input.MaxPrice != nil {
		query += " AND max_price <= ?"
		args = append(args, *input.MaxPrice)
	}
	if input.Keyword != nil && *input.Keyword != "" {
		query += ` AND (title LIKE ? OR description LIKE ?
			OR id IN (SELECT product_id FROM product_variants WHERE sku LIKE ?))`
		like := "%" + *input.Keyword + "%"
		args = append(args, like, like, like)
	}

	orderBy := " ORDER BY created_at DESC"
	if input.SortBy != nil {
		switch *input.SortBy {
		case "price_asc":
			orderBy = " ORDER BY min_price ASC"
		case "price_desc":
			orderBy = " ORDER BY max_price DESC"
		case "name_asc":
			orderBy = " ORDER BY title ASC"
		case "name_desc":
			orderBy = " ORDER BY title DESC"
		case "newest":
			orderBy = " ORDER BY created_at DESC"
		}
	}
	query += orderBy + " LIMIT 100"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to filter products", "errors": err.Error()})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to filter products", "errors": err.Error()})
			return
		}
		products = append(products, *p)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Products filtered successfully",
		"data":    products,
	})
}
