package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/amirasyraf/sellhub-golang/internal/variant"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type StoreProductVariantInput struct {
	ProductID               string   `json:"product_id" binding:"required,uuid"`
	ProductAttributeValueIDs []string `json:"product_attribute_value_ids" binding:"required,min=1,unique,dive,uuid"`
	Price                   *float64 `json:"price" binding:"required,gte=0"`
	Stock                   *int     `json:"stock" binding:"required,gte=0"`
}

type UpdateProductVariantInput struct {
	ID    string   `json:"id" binding:"required,uuid"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock *int     `json:"stock" binding:"omitempty,gte=0"`
}

// resolvedValue pairs an attribute value with its owning attribute.
type resolvedValue struct {
	ValueID       string
	ValueCode     string
	AttributeID   string
	AttributeCode string
}

// --- Variant Handlers ---

// StoreProductVariant is the handler for POST /v1/product-variant/store.
//
// The variant's SKU and option signature are derived from the product slug
// and the selected attribute values in canonical order, so the same set of
// value ids always produces the same variant identity regardless of the
// order the client sent them in. The variant row, its option rows and the
// product's min/max price rollup are written in one transaction with the
// product row locked, so concurrent stores against the same product
// serialize and the rollup never goes stale.
func (h *Handlers) StoreProductVariant(c *gin.Context) {
	var input StoreProductVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	shopID := actingUserID(c)
	product, err := h.loadOwnProduct(input.ProductID, shopID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	resolved, err := h.resolveAttributeValues(input.ProductAttributeValueIDs, shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}
	for _, id := range input.ProductAttributeValueIDs {
		if _, ok := resolved[id]; !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute value not found: " + id})
			return
		}
	}

	selections := make([]variant.Selection, 0, len(resolved))
	for _, rv := range resolved {
		selections = append(selections, variant.Selection{
			AttributeCode: rv.AttributeCode,
			ValueCode:     rv.ValueCode,
		})
	}
	selections = variant.Canonicalize(selections)
	sku := variant.SKU(product.Slug, selections)
	signature := variant.Signature(selections)

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	// Lock the product row so concurrent variant writes serialize here.
	var lockedID string
	if err := tx.QueryRow("SELECT id FROM products WHERE id = ? FOR UPDATE", product.ID).Scan(&lockedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	var dup string
	err = tx.QueryRow(
		"SELECT id FROM product_variants WHERE product_id = ? AND option_signature = ?",
		product.ID, signature,
	).Scan(&dup)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product variant with the same options already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	now := time.Now()
	pv := models.ProductVariant{
		ID:              newUUIDv7(),
		ProductID:       product.ID,
		SKU:             sku,
		OptionSignature: signature,
		Price:           *input.Price,
		Stock:           *input.Stock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	_, err = tx.Exec(`
		INSERT INTO product_variants (id, product_id, sku, option_signature, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pv.ID, pv.ProductID, pv.SKU, pv.OptionSignature, pv.Price, pv.Stock, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	var inserted int64
	for _, id := range input.ProductAttributeValueIDs {
		rv := resolved[id]
		res, err := tx.Exec(`
			INSERT INTO product_variant_options (id, product_variant_id, product_attribute_id, product_attribute_value_id)
			VALUES (?, ?, ?, ?)`,
			newUUIDv7(), pv.ID, rv.AttributeID, rv.ValueID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
			return
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	if inserted != int64(len(input.ProductAttributeValueIDs)) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant options, rolled back"})
		return
	}

	if err := recalcProductPrices(tx, product.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	product, err = h.loadOwnProduct(product.ID, shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product variant", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product variant created successfully",
		"data": gin.H{
			"product":                 product,
			"product_variant":         pv,
			"product_variant_options": len(input.ProductAttributeValueIDs),
		},
	})
}

// GetProductVariants is the handler for POST /v1/product-variant/get.
func (h *Handlers) GetProductVariants(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product variants", "errors": err.Error()})
		return
	}

	variants, err := h.loadProductVariants(input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product variants", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product variants fetched successfully",
		"data":    variants,
	})
}

// UpdateProductVariant is the handler for POST /v1/product-variant/update.
// Only price and stock can change; sku and option_signature are identity.
// A price change recomputes the product rollup in the same transaction.
func (h *Handlers) UpdateProductVariant(c *gin.Context) {
	var input UpdateProductVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}
	if input.Price == nil && input.Stock == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": gin.H{"price": "price or stock is required"}})
		return
	}

	pv, err := h.loadOwnVariant(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product variant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}

	if input.Price != nil {
		pv.Price = *input.Price
	}
	if input.Stock != nil {
		pv.Stock = *input.Stock
	}
	pv.UpdatedAt = time.Now()

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRow("SELECT id FROM products WHERE id = ? FOR UPDATE", pv.ProductID).Scan(&lockedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}
	_, err = tx.Exec(
		"UPDATE product_variants SET price = ?, stock = ?, updated_at = ? WHERE id = ?",
		pv.Price, pv.Stock, pv.UpdatedAt, pv.ID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}
	if err := recalcProductPrices(tx, pv.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product variant", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product variant updated successfully",
		"data":    pv,
	})
}

// DestroyProductVariant is the handler for POST /v1/product-variant/destroy.
// Deletes the variant with its options and recomputes the rollup; when the
// last variant goes, min_price and max_price return to NULL.
func (h *Handlers) DestroyProductVariant(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	pv, err := h.loadOwnVariant(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product variant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRow("SELECT id FROM products WHERE id = ? FOR UPDATE", pv.ProductID).Scan(&lockedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}
	if _, err := tx.Exec("DELETE FROM product_variant_options WHERE product_variant_id = ?", pv.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}
	if _, err := tx.Exec("DELETE FROM product_variants WHERE id = ?", pv.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}
	if err := recalcProductPrices(tx, pv.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product variant", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product variant deleted successfully",
		"data":    pv,
	})
}

// --- Helpers ---

// recalcProductPrices rewrites the product's min/max price from its current
// variants in one statement. With zero variants both aggregates are NULL.
// Runs inside the caller's transaction, after the product row was locked.
func recalcProductPrices(tx *sql.Tx, productID string) error {
	_, err := tx.Exec(`
		UPDATE products
		SET min_price = (SELECT MIN(price) FROM product_variants WHERE product_id = ?),
		    max_price = (SELECT MAX(price) FROM product_variants WHERE product_id = ?),
		    updated_at = ?
		WHERE id = ?`,
		productID, productID, time.Now(), productID,
	)
	return err
}

// resolveAttributeValues maps each value id to its code and owning attribute,
// scoped to the shop. Ids that do not resolve are simply absent from the map.
func (h *Handlers) resolveAttributeValues(valueIDs []string, shopID string) (map[string]resolvedValue, error) {
	out := make(map[string]resolvedValue, len(valueIDs))
	if len(valueIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(valueIDs)), ", ")
	args := make([]interface{}, 0, len(valueIDs)+1)
	for _, id := range valueIDs {
		args = append(args, id)
	}
	args = append(args, shopID)

	rows, err := h.DB.Query(`
		SELECT v.id, v.code, a.id, a.code
		FROM product_attribute_values v
		JOIN product_attributes a ON a.id = v.attribute_id
		WHERE v.id IN (`+placeholders+`) AND a.shop_id = ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rv resolvedValue
		if err := rows.Scan(&rv.ValueID, &rv.ValueCode, &rv.AttributeID, &rv.AttributeCode); err != nil {
			return nil, err
		}
		out[rv.ValueID] = rv
	}
	return out, rows.Err()
}

func (h *Handlers) loadOwnVariant(id, shopID string) (*models.ProductVariant, error) {
	var pv models.ProductVariant
	err := h.DB.QueryRow(`
		SELECT v.id, v.product_id, v.sku, v.option_signature, v.price, v.stock, v.created_at, v.updated_at
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = ? AND p.shop_id = ?`, id, shopID,
	).Scan(&pv.ID, &pv.ProductID, &pv.SKU, &pv.OptionSignature, &pv.Price, &pv.Stock, &pv.CreatedAt, &pv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pv, nil
}

func (h *Handlers) loadProductVariants(productID string) ([]models.ProductVariant, error) {
	rows, err := h.DB.Query(`
		SELECT id, product_id, sku, option_signature, price, stock, created_at, updated_at
		FROM product_variants WHERE product_id = ? ORDER BY sku ASC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.ProductVariant{}
	for rows.Next() {
		var pv models.ProductVariant
		if err := rows.Scan(&pv.ID, &pv.ProductID, &pv.SKU, &pv.OptionSignature, &pv.Price, &pv.Stock, &pv.CreatedAt, &pv.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range variants {
		options, err := h.loadVariantOptions(variants[i].ID)
		if err != nil {
			return nil, err
		}
		variants[i].Options = options
	}
	return variants, nil
}

func (h *Handlers) loadVariantOptions(variantID string) ([]models.ProductVariantOption, error) {
	rows, err := h.DB.Query(`
		SELECT id, product_variant_id, product_attribute_id, product_attribute_value_id
		FROM product_variant_options WHERE product_variant_id = ?`, variantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []models.ProductVariantOption{}
	for rows.Next() {
		var o models.ProductVariantOption
		if err := rows.Scan(&o.ID, &o.ProductVariantID, &o.ProductAttributeID, &o.ProductAttributeValueID); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
