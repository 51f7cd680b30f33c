package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

type StoreShopInput struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=25"`
	CountryID   *int64  `json:"country_id"`
	StateID     *int64  `json:"state_id"`
	CityID      *int64  `json:"city_id"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// GetShop is the handler for GET /v1/shop. It returns the acting user's
// shop, 404 when they have not onboarded yet.
func (h *Handlers) GetShop(c *gin.Context) {
	userID := actingUserID(c)

	shop, err := h.loadShop(userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Shop not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to retrieve shop", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Shop retrieved successfully",
		"data":    shop,
	})
}

// StoreShop is the handler for POST /v1/shop. Upserts the acting user's
// shop; the shop id is the user id, so each seller has at most one.
// A new shop starts unverified and stays read-only until an admin verifies it.
func (h *Handlers) StoreShop(c *gin.Context) {
	userID := actingUserID(c)

	var input StoreShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	countryName := h.countryName(input.CountryID)
	stateName := h.stateName(input.StateID)
	cityName := h.cityName(input.CityID)

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO shops
			(id, name, phone, country_id, country_name, state_id, state_name,
			 city_id, city_name, zip_code, description, valid_verification, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name), phone = VALUES(phone),
			country_id = VALUES(country_id), country_name = VALUES(country_name),
			state_id = VALUES(state_id), state_name = VALUES(state_name),
			city_id = VALUES(city_id), city_name = VALUES(city_name),
			zip_code = VALUES(zip_code), description = VALUES(description),
			updated_at = VALUES(updated_at)`,
		userID, input.Name, input.Phone,
		input.CountryID, countryName, input.StateID, stateName,
		input.CityID, cityName, input.ZipCode, input.Description, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update shop", "errors": err.Error()})
		return
	}

	// MySQL reports 1 affected row for an insert, 2 for an update.
	affected, _ := res.RowsAffected()
	message := "Shop updated successfully"
	if affected == 1 {
		message = "Shop created successfully"
	}

	shop, err := h.loadShop(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update shop", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    shop,
	})
}

// VerifyShop is the handler for PATCH /v1/admin/shops/:id/verify.
// Admin only; records which admin approved the shop.
func (h *Handlers) VerifyShop(c *gin.Context) {
	adminID := actingUserID(c)
	shopID := c.Param("id")

	res, err := h.DB.Exec(`
		UPDATE shops
		SET valid_verification = TRUE, valid_by = ?, updated_at = ?
		WHERE id = ? AND valid_verification = FALSE`,
		adminID, time.Now(), shopID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to verify shop", "errors": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Shop not found or already verified"})
		return
	}

	shop, err := h.loadShop(shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to verify shop", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Shop verified successfully",
		"data":    shop,
	})
}

// GetMembershipPlans is the handler for GET /v1/membership-plans.
func (h *Handlers) GetMembershipPlans(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, description, price FROM membership_plans ORDER BY price ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get membership plans", "errors": err.Error()})
		return
	}
	defer rows.Close()

	plans := []models.MembershipPlan{}
	for rows.Next() {
		var plan models.MembershipPlan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get membership plans", "errors": err.Error()})
			return
		}
		plans = append(plans, plan)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Membership plans fetched successfully",
		"data":    plans,
	})
}

func (h *Handlers) loadShop(id string) (*models.Shop, error) {
	var shop models.Shop
	err := h.DB.QueryRow(`
		SELECT id, name, phone, country_id, country_name, state_id, state_name,
		       city_id, city_name, zip_code, description, membership_plan_id,
		       valid_verification, valid_by, created_at, updated_at
		FROM shops WHERE id = ?`, id,
	).Scan(&shop.ID, &shop.Name, &shop.Phone, &shop.CountryID, &shop.CountryName,
		&shop.StateID, &shop.StateName, &shop.CityID, &shop.CityName,
		&shop.ZipCode, &shop.Description, &shop.MembershipPlanID,
		&shop.ValidVerification, &shop.ValidBy, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}
