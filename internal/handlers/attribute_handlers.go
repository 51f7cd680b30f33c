package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

// --- Inputs ---

type StoreProductAttributeInput struct {
	ID       *string `json:"id" binding:"omitempty,uuid"`
	Name     string  `json:"name" binding:"required,max=255"`
	IsActive *bool   `json:"is_active"`
}

type StoreProductAttributeValueInput struct {
	ID          *string `json:"id" binding:"omitempty,uuid"`
	AttributeID string  `json:"product_attribute_id" binding:"required,uuid"`
	Value       string  `json:"value" binding:"required,max=255"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

type StoreProductAttributeSetInput struct {
	ProductID          string `json:"product_id" binding:"required,uuid"`
	ProductAttributeID string `json:"product_attribute_id" binding:"required,uuid"`
}

// --- Attribute Handlers ---

// GetProductAttributes is the handler for POST /v1/product-attribute/get.
// Lists the acting shop's attributes.
func (h *Handlers) GetProductAttributes(c *gin.Context) {
	userID := actingUserID(c)

	verified, err := h.checkShopVerification(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attributes", "errors": err.Error()})
		return
	}
	if !verified {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": shopNotVerifiedMsg})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, shop_id, name, code, type, is_active, created_at, updated_at
		FROM product_attributes WHERE shop_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attributes", "errors": err.Error()})
		return
	}
	defer rows.Close()

	attributes := []models.ProductAttribute{}
	for rows.Next() {
		var attr models.ProductAttribute
		if err := rows.Scan(&attr.ID, &attr.ShopID, &attr.Name, &attr.Code, &attr.Type, &attr.IsActive, &attr.CreatedAt, &attr.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attributes", "errors": err.Error()})
			return
		}
		attributes = append(attributes, attr)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attributes fetched successfully",
		"data":    attributes,
	})
}

// ShowProductAttribute is the handler for POST /v1/product-attribute/show.
func (h *Handlers) ShowProductAttribute(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	attr, err := h.loadOwnAttribute(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to show product attribute", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute fetched successfully",
		"data":    attr,
	})
}

// StoreProductAttribute is the handler for POST /v1/product-attribute/store.
// Upserts an attribute for the acting shop; code is the slug of the name and
// type is always "select".
func (h *Handlers) StoreProductAttribute(c *gin.Context) {
	userID := actingUserID(c)

	verified, err := h.checkShopVerification(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute", "errors": err.Error()})
		return
	}
	if !verified {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": shopNotVerifiedMsg})
		return
	}

	var input StoreProductAttributeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	code := slug.Make(input.Name)
	now := time.Now()

	// code is unique per shop.
	dupQuery := "SELECT id FROM product_attributes WHERE shop_id = ? AND code = ?"
	dupArgs := []interface{}{userID, code}
	if input.ID != nil {
		dupQuery += " AND id <> ?"
		dupArgs = append(dupArgs, *input.ID)
	}
	var dupID string
	err = h.DB.QueryRow(dupQuery, dupArgs...).Scan(&dupID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product attribute already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute", "errors": err.Error()})
		return
	}

	created := input.ID == nil
	var attrID string
	if created {
		attrID = newUUIDv7()
		_, err = h.DB.Exec(`
			INSERT INTO product_attributes (id, shop_id, name, code, type, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'select', ?, ?, ?)`,
			attrID, userID, input.Name, code, isActive, now, now,
		)
	} else {
		attrID = *input.ID
		var res sql.Result
		res, err = h.DB.Exec(`
			UPDATE product_attributes
			SET name = ?, code = ?, is_active = ?, updated_at = ?
			WHERE id = ? AND shop_id = ?`,
			input.Name, code, isActive, now, attrID, userID,
		)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				if _, lerr := h.loadOwnAttribute(attrID, userID); lerr != nil {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
					return
				}
			}
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute", "errors": err.Error()})
		return
	}

	attr, err := h.loadOwnAttribute(attrID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute", "errors": err.Error()})
		return
	}

	message := "Product attribute updated successfully"
	if created {
		message = "Product attribute created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    attr,
	})
}

// DestroyProductAttribute is the handler for POST /v1/product-attribute/destroy.
// Refused while variant options still reference any of the attribute's values.
func (h *Handlers) DestroyProductAttribute(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	userID := actingUserID(c)
	attr, err := h.loadOwnAttribute(input.ID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}

	var refs int
	err = h.DB.QueryRow(
		"SELECT COUNT(*) FROM product_variant_options WHERE product_attribute_id = ?", attr.ID,
	).Scan(&refs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}
	if refs > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product attribute is used by product variants and cannot be deleted"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM product_attribute_values WHERE attribute_id = ?", attr.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}
	if _, err := tx.Exec("DELETE FROM product_attribute_sets WHERE product_attribute_id = ?", attr.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}
	if _, err := tx.Exec("DELETE FROM product_attributes WHERE id = ? AND shop_id = ?", attr.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute deleted successfully",
		"data":    attr,
	})
}

// --- Attribute Value Handlers ---

// GetProductAttributeValues is the handler for POST /v1/product-attribute-value/get.
func (h *Handlers) GetProductAttributeValues(c *gin.Context) {
	var input struct {
		AttributeID string `json:"product_attribute_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	if _, err := h.loadOwnAttribute(input.AttributeID, actingUserID(c)); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute values", "errors": err.Error()})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, attribute_id, value, code, is_active, sort_order, created_at, updated_at
		FROM product_attribute_values
		WHERE attribute_id = ? ORDER BY sort_order ASC, value ASC`, input.AttributeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute values", "errors": err.Error()})
		return
	}
	defer rows.Close()

	values := []models.ProductAttributeValue{}
	for rows.Next() {
		var v models.ProductAttributeValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Value, &v.Code, &v.IsActive, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute values", "errors": err.Error()})
			return
		}
		values = append(values, v)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute values fetched successfully",
		"data":    values,
	})
}

// ShowProductAttributeValue is the handler for POST /v1/product-attribute-value/show.
func (h *Handlers) ShowProductAttributeValue(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	value, err := h.loadOwnAttributeValue(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute value not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to show product attribute value", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute value fetched successfully",
		"data":    value,
	})
}

// StoreProductAttributeValue is the handler for POST /v1/product-attribute-value/store.
// Value text is unique within an attribute; code is the slug of the value.
func (h *Handlers) StoreProductAttributeValue(c *gin.Context) {
	var input StoreProductAttributeValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	userID := actingUserID(c)
	if _, err := h.loadOwnAttribute(input.AttributeID, userID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute value", "errors": err.Error()})
		return
	}

	dupQuery := "SELECT id FROM product_attribute_values WHERE attribute_id = ? AND value = ?"
	dupArgs := []interface{}{input.AttributeID, input.Value}
	if input.ID != nil {
		dupQuery += " AND id <> ?"
		dupArgs = append(dupArgs, *input.ID)
	}
	var dupID string
	err := h.DB.QueryRow(dupQuery, dupArgs...).Scan(&dupID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product attribute value already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute value", "errors": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}
	code := slug.Make(input.Value)
	now := time.Now()

	created := input.ID == nil
	var valueID string
	if created {
		valueID = newUUIDv7()
		_, err = h.DB.Exec(`
			INSERT INTO product_attribute_values (id, attribute_id, value, code, is_active, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			valueID, input.AttributeID, input.Value, code, isActive, sortOrder, now, now,
		)
	} else {
		valueID = *input.ID
		_, err = h.DB.Exec(`
			UPDATE product_attribute_values
			SET value = ?, code = ?, is_active = ?, sort_order = ?, updated_at = ?
			WHERE id = ? AND attribute_id = ?`,
			input.Value, code, isActive, sortOrder, now, valueID, input.AttributeID,
		)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute value", "errors": err.Error()})
		return
	}

	value, err := h.loadOwnAttributeValue(valueID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute value", "errors": err.Error()})
		return
	}

	message := "Product attribute value updated successfully"
	if created {
		message = "Product attribute value created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    value,
	})
}

// DestroyProductAttributeValue is the handler for POST /v1/product-attribute-value/destroy.
// A value referenced by any variant option cannot be deleted; the variant
// must be destroyed first.
func (h *Handlers) DestroyProductAttributeValue(c *gin.Context) {
	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	value, err := h.loadOwnAttributeValue(input.ID, actingUserID(c))
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute value not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute value", "errors": err.Error()})
		return
	}

	var refs int
	err = h.DB.QueryRow(
		"SELECT COUNT(*) FROM product_variant_options WHERE product_attribute_value_id = ?", value.ID,
	).Scan(&refs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute value", "errors": err.Error()})
		return
	}
	if refs > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product attribute value is used by product variants and cannot be deleted"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM product_attribute_values WHERE id = ?", value.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute value", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute value deleted successfully",
		"data":    value,
	})
}

// --- Attribute Set Handlers ---

// GetProductAttributeSets is the handler for POST /v1/product-attribute-set/get.
// Returns the attributes a product varies on, each with its values.
func (h *Handlers) GetProductAttributeSets(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute sets", "errors": err.Error()})
		return
	}

	rows, err := h.DB.Query(`
		SELECT s.product_id, s.product_attribute_id, s.created_at, s.updated_at,
		       a.id, a.shop_id, a.name, a.code, a.type, a.is_active, a.created_at, a.updated_at
		FROM product_attribute_sets s
		JOIN product_attributes a ON a.id = s.product_attribute_id
		WHERE s.product_id = ?
		ORDER BY a.name ASC`, input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute sets", "errors": err.Error()})
		return
	}
	defer rows.Close()

	sets := []models.ProductAttributeSet{}
	for rows.Next() {
		var set models.ProductAttributeSet
		var attr models.ProductAttribute
		if err := rows.Scan(
			&set.ProductID, &set.ProductAttributeID, &set.CreatedAt, &set.UpdatedAt,
			&attr.ID, &attr.ShopID, &attr.Name, &attr.Code, &attr.Type, &attr.IsActive, &attr.CreatedAt, &attr.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product attribute sets", "errors": err.Error()})
			return
		}
		set.Attribute = &attr
		sets = append(sets, set)
	}

	for i := range sets {
		sets[i].Values = h.loadAttributeValues(sets[i].ProductAttributeID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute sets fetched successfully",
		"data":    sets,
	})
}

// StoreProductAttributeSet is the handler for POST /v1/product-attribute-set/store.
func (h *Handlers) StoreProductAttributeSet(c *gin.Context) {
	var input StoreProductAttributeSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	userID := actingUserID(c)
	if _, err := h.loadOwnProduct(input.ProductID, userID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute set", "errors": err.Error()})
		return
	}
	attr, err := h.loadOwnAttribute(input.ProductAttributeID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute set", "errors": err.Error()})
		return
	}

	var exists int
	err = h.DB.QueryRow(`
		SELECT 1 FROM product_attribute_sets WHERE product_id = ? AND product_attribute_id = ?`,
		input.ProductID, input.ProductAttributeID,
	).Scan(&exists)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product attribute set already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute set", "errors": err.Error()})
		return
	}

	now := time.Now()
	_, err = h.DB.Exec(`
		INSERT INTO product_attribute_sets (product_id, product_attribute_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		input.ProductID, input.ProductAttributeID, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product attribute set", "errors": err.Error()})
		return
	}

	set := models.ProductAttributeSet{
		ProductID:          input.ProductID,
		ProductAttributeID: input.ProductAttributeID,
		CreatedAt:          now,
		UpdatedAt:          now,
		Attribute:          attr,
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute set created successfully",
		"data":    set,
	})
}

// DestroyProductAttributeSet is the handler for POST /v1/product-attribute-set/destroy.
func (h *Handlers) DestroyProductAttributeSet(c *gin.Context) {
	var input StoreProductAttributeSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	if _, err := h.loadOwnProduct(input.ProductID, actingUserID(c)); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute set", "errors": err.Error()})
		return
	}

	res, err := h.DB.Exec(`
		DELETE FROM product_attribute_sets WHERE product_id = ? AND product_attribute_id = ?`,
		input.ProductID, input.ProductAttributeID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product attribute set", "errors": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product attribute set not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product attribute set deleted successfully",
	})
}

// --- Helpers ---

func (h *Handlers) loadOwnAttribute(id, shopID string) (*models.ProductAttribute, error) {
	var attr models.ProductAttribute
	err := h.DB.QueryRow(`
		SELECT id, shop_id, name, code, type, is_active, created_at, updated_at
		FROM product_attributes WHERE id = ? AND shop_id = ?`, id, shopID,
	).Scan(&attr.ID, &attr.ShopID, &attr.Name, &attr.Code, &attr.Type, &attr.IsActive, &attr.CreatedAt, &attr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// loadOwnAttributeValue loads a value whose owning attribute belongs to the
// shop, attribute join included.
func (h *Handlers) loadOwnAttributeValue(id, shopID string) (*models.ProductAttributeValue, error) {
	var v models.ProductAttributeValue
	var attr models.ProductAttribute
	err := h.DB.QueryRow(`
		SELECT v.id, v.attribute_id, v.value, v.code, v.is_active, v.sort_order, v.created_at, v.updated_at,
		       a.id, a.shop_id, a.name, a.code, a.type, a.is_active, a.created_at, a.updated_at
		FROM product_attribute_values v
		JOIN product_attributes a ON a.id = v.attribute_id
		WHERE v.id = ? AND a.shop_id = ?`, id, shopID,
	).Scan(&v.ID, &v.AttributeID, &v.Value, &v.Code, &v.IsActive, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt,
		&attr.ID, &attr.ShopID, &attr.Name, &attr.Code, &attr.Type, &attr.IsActive, &attr.CreatedAt, &attr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Attribute = &attr
	return &v, nil
}

func (h *Handlers) loadAttributeValues(attributeID string) []models.ProductAttributeValue {
	values := []models.ProductAttributeValue{}
	rows, err := h.DB.Query(`
		SELECT id, attribute_id, value, code, is_active, sort_order, created_at, updated_at
		FROM product_attribute_values
		WHERE attribute_id = ? ORDER BY sort_order ASC, value ASC`, attributeID)
	if err != nil {
		return values
	}
	defer rows.Close()
	for rows.Next() {
		var v models.ProductAttributeValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Value, &v.Code, &v.IsActive, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt); err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
