package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testShopID    = "11111111-1111-1111-8111-111111111111"
	testProductID = "22222222-2222-2222-8222-222222222222"
	redValueID    = "33333333-3333-3333-8333-333333333333"
	largeValueID  = "44444444-4444-4444-8444-444444444444"
	colorAttrID   = "55555555-5555-5555-8555-555555555555"
	sizeAttrID    = "66666666-6666-6666-8666-666666666666"
)

func newVariantTest(t *testing.T) (*Handlers, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return &Handlers{DB: db}, mock, func() { db.Close() }
}

func performJSON(h *Handlers, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", testShopID)

	handler(c)
	return w
}

func productColumns() []string {
	return []string{
		"id", "shop_id", "title", "slug", "description", "category_id", "is_active", "is_visible",
		"country_id", "country_name", "state_id", "state_name", "city_id", "city_name",
		"min_price", "max_price", "created_at", "updated_at",
	}
}

func productRow(minPrice, maxPrice any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productColumns()).AddRow(
		testProductID, testShopID, "T Shirt", "t-shirt", nil, "77777777-7777-7777-8777-777777777777", true, true,
		nil, nil, nil, nil, nil, nil,
		minPrice, maxPrice, now, now,
	)
}

func expectLoadProduct(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ? AND shop_id = ?")).
		WithArgs(testProductID, testShopID).
		WillReturnRows(rows)
}

func expectResolveValues(mock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"v.id", "v.code", "a.id", "a.code"}).
		AddRow(largeValueID, "large", sizeAttrID, "size").
		AddRow(redValueID, "red", colorAttrID, "color")
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_attribute_values v")).
		WillReturnRows(rows)
}

func storeVariantBody() map[string]any {
	// Submitted size-before-color; the derived identity must come out in
	// canonical attribute-code order regardless.
	return map[string]any{
		"product_id":                  testProductID,
		"product_attribute_value_ids": []string{largeValueID, redValueID},
		"price":                       49.9,
		"stock":                       10,
	}
}

func TestStoreProductVariantHappyPath(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	expectLoadProduct(mock, productRow(nil, nil))
	expectResolveValues(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testProductID))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE product_id = ? AND option_signature = ?")).
		WithArgs(testProductID, "color:red;size:large;").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variants")).
		WithArgs(sqlmock.AnyArg(), testProductID, "t-shirt-red-large", "color:red;size:large;", 49.9, 10, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variant_options")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sizeAttrID, largeValueID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variant_options")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), colorAttrID, redValueID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET min_price = (SELECT MIN(price) FROM product_variants WHERE product_id = ?)")).
		WithArgs(testProductID, testProductID, sqlmock.AnyArg(), testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectLoadProduct(mock, productRow(49.9, 49.9))

	w := performJSON(h, h.StoreProductVariant, storeVariantBody())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ProductVariant struct {
				SKU             string  `json:"sku"`
				OptionSignature string  `json:"optionSignature"`
				Price           float64 `json:"price"`
				Stock           int     `json:"stock"`
			} `json:"product_variant"`
			Product struct {
				MinPrice *float64 `json:"minPrice"`
				MaxPrice *float64 `json:"maxPrice"`
			} `json:"product"`
			ProductVariantOptions int `json:"product_variant_options"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Product variant created successfully", resp.Message)
	assert.Equal(t, "t-shirt-red-large", resp.Data.ProductVariant.SKU)
	assert.Equal(t, "color:red;size:large;", resp.Data.ProductVariant.OptionSignature)
	assert.Equal(t, 49.9, resp.Data.ProductVariant.Price)
	assert.Equal(t, 10, resp.Data.ProductVariant.Stock)
	assert.Equal(t, 2, resp.Data.ProductVariantOptions)
	require.NotNil(t, resp.Data.Product.MinPrice)
	require.NotNil(t, resp.Data.Product.MaxPrice)
	assert.Equal(t, 49.9, *resp.Data.Product.MinPrice)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreProductVariantForeignProduct(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	// Product exists but belongs to another shop: the ownership-scoped load
	// finds nothing and nothing else runs.
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ? AND shop_id = ?")).
		WithArgs(testProductID, testShopID).
		WillReturnError(sql.ErrNoRows)

	w := performJSON(h, h.StoreProductVariant, storeVariantBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreProductVariantUnresolvedValue(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	expectLoadProduct(mock, productRow(nil, nil))

	// Only one of the two requested value ids resolves; no transaction is
	// ever opened.
	rows := sqlmock.NewRows([]string{"v.id", "v.code", "a.id", "a.code"}).
		AddRow(redValueID, "red", colorAttrID, "color")
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_attribute_values v")).
		WillReturnRows(rows)

	w := performJSON(h, h.StoreProductVariant, storeVariantBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product attribute value not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreProductVariantDuplicateSignature(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	expectLoadProduct(mock, productRow(nil, nil))
	expectResolveValues(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testProductID))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE product_id = ? AND option_signature = ?")).
		WithArgs(testProductID, "color:red;size:large;").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-variant-id"))
	mock.ExpectRollback()

	w := performJSON(h, h.StoreProductVariant, storeVariantBody())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreProductVariantOptionCountMismatch(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	expectLoadProduct(mock, productRow(nil, nil))
	expectResolveValues(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testProductID))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE product_id = ? AND option_signature = ?")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variants")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second option insert reports zero rows; the handler must roll back and
	// never reach the rollup update.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variant_options")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_variant_options")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	w := performJSON(h, h.StoreProductVariant, storeVariantBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "rolled back")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreProductVariantValidation(t *testing.T) {
	h, _, cleanup := newVariantTest(t)
	defer cleanup()

	w := performJSON(h, h.StoreProductVariant, map[string]any{
		"product_id":                  testProductID,
		"product_attribute_value_ids": []string{},
		"price":                       -1,
		"stock":                       5,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestStoreProductVariantRejectsDuplicateValueIDs(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	// The same value id submitted twice must fail validation before any
	// query runs; otherwise the option inserts would double up on a single
	// resolved value.
	w := performJSON(h, h.StoreProductVariant, map[string]any{
		"product_id":                  testProductID,
		"product_attribute_value_ids": []string{redValueID, redValueID},
		"price":                       49.9,
		"stock":                       10,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductVariantsOptionLoadFailure(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	now := time.Now()
	expectLoadProduct(mock, productRow(49.9, 49.9))
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_variants WHERE product_id = ?")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "sku", "option_signature", "price", "stock", "created_at", "updated_at"}).
			AddRow("variant-1", testProductID, "t-shirt-red-large", "color:red;size:large;", 49.9, 10, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_variant_options WHERE product_variant_id = ?")).
		WithArgs("variant-1").
		WillReturnError(sql.ErrConnDone)

	w := performJSON(h, h.GetProductVariants, map[string]any{"product_id": testProductID})

	// A failed option read surfaces as an error instead of an empty list.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDestroyProductVariantRecalculatesPrices(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	variantID := "88888888-8888-8888-8888-888888888888"
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM product_variants v")).
		WithArgs(variantID, testShopID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "sku", "option_signature", "price", "stock", "created_at", "updated_at"}).
			AddRow(variantID, testProductID, "t-shirt-red-large", "color:red;size:large;", 49.9, 10, now, now))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testProductID))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_variant_options WHERE product_variant_id = ?")).
		WithArgs(variantID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_variants WHERE id = ?")).
		WithArgs(variantID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET min_price = (SELECT MIN(price) FROM product_variants WHERE product_id = ?)")).
		WithArgs(testProductID, testProductID, sqlmock.AnyArg(), testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := performJSON(h, h.DestroyProductVariant, map[string]any{"id": variantID})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductVariantPriceOnly(t *testing.T) {
	h, mock, cleanup := newVariantTest(t)
	defer cleanup()

	variantID := "99999999-9999-9999-8999-999999999999"
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM product_variants v")).
		WithArgs(variantID, testShopID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "sku", "option_signature", "price", "stock", "created_at", "updated_at"}).
			AddRow(variantID, testProductID, "t-shirt-red-large", "color:red;size:large;", 49.9, 10, now, now))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(testProductID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testProductID))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE product_variants SET price = ?, stock = ?, updated_at = ? WHERE id = ?")).
		WithArgs(59.9, 10, sqlmock.AnyArg(), variantID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET min_price = (SELECT MIN(price) FROM product_variants WHERE product_id = ?)")).
		WithArgs(testProductID, testProductID, sqlmock.AnyArg(), testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := performJSON(h, h.UpdateProductVariant, map[string]any{"id": variantID, "price": 59.9})

	assert.Equal(t, http.StatusOK, w.Code)
	// SKU and signature never change on update.
	assert.Contains(t, w.Body.String(), "t-shirt-red-large")
	assert.Contains(t, w.Body.String(), "color:red;size:large;")
	assert.NoError(t, mock.ExpectationsWereMet())
}
