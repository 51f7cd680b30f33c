package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoreShippingAddressInput struct {
	ID                 *string `json:"id" binding:"omitempty,uuid"`
	AddressType        string  `json:"address_type" binding:"required,max=255"`
	AddressTitle       string  `json:"address_title" binding:"required,max=255"`
	FirstName          string  `json:"first_name" binding:"required,max=255"`
	LastName           string  `json:"last_name" binding:"required,max=255"`
	Email              string  `json:"email" binding:"required,email,max=255"`
	PhoneNumber        string  `json:"phone_number" binding:"required,max=255"`
	CountryID          *int64  `json:"country_id"`
	StateID            *int64  `json:"state_id"`
	CityID             *int64  `json:"city_id"`
	ZipCode            *string `json:"zip_code"`
	AddressDescription *string `json:"address_description"`
}

// GetShippingAddresses is the handler for GET /v1/shipping-addresses.
func (h *Handlers) GetShippingAddresses(c *gin.Context) {
	userID := actingUserID(c)

	rows, err := h.DB.Query(shippingSelect+" WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get shipping addresses", "errors": err.Error()})
		return
	}
	defer rows.Close()

	addresses := []models.ShippingAddress{}
	for rows.Next() {
		addr, err := scanShippingAddress(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get shipping addresses", "errors": err.Error()})
			return
		}
		addresses = append(addresses, *addr)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Shipping addresses fetched successfully",
		"data":    addresses,
	})
}

// StoreShippingAddress is the handler for POST /v1/shipping-addresses.
// Creates when no id is supplied, otherwise updates the caller's address.
func (h *Handlers) StoreShippingAddress(c *gin.Context) {
	userID := actingUserID(c)

	var input StoreShippingAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	countryName := h.countryName(input.CountryID)
	stateName := h.stateName(input.StateID)
	cityName := h.cityName(input.CityID)
	now := time.Now()

	created := input.ID == nil
	var addressID string
	if created {
		addressID = uuid.NewString()
		_, err := h.DB.Exec(`
			INSERT INTO shipping_addresses
				(id, user_id, address_type, address_title, first_name, last_name, email, phone_number,
				 country_id, country_name, state_id, state_name, city_id, city_name,
				 zip_code, address_description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			addressID, userID, input.AddressType, input.AddressTitle, input.FirstName, input.LastName,
			input.Email, input.PhoneNumber, input.CountryID, countryName, input.StateID, stateName,
			input.CityID, cityName, input.ZipCode, input.AddressDescription, now, now,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create shipping address", "errors": err.Error()})
			return
		}
	} else {
		addressID = *input.ID
		res, err := h.DB.Exec(`
			UPDATE shipping_addresses
			SET address_type = ?, address_title = ?, first_name = ?, last_name = ?, email = ?,
			    phone_number = ?, country_id = ?, country_name = ?, state_id = ?, state_name = ?,
			    city_id = ?, city_name = ?, zip_code = ?, address_description = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			input.AddressType, input.AddressTitle, input.FirstName, input.LastName, input.Email,
			input.PhoneNumber, input.CountryID, countryName, input.StateID, stateName,
			input.CityID, cityName, input.ZipCode, input.AddressDescription, now,
			addressID, userID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update shipping address", "errors": err.Error()})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Shipping address not found"})
			return
		}
	}

	addr, err := h.loadShippingAddress(addressID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create shipping address", "errors": err.Error()})
		return
	}

	message := "Shipping address updated successfully"
	if created {
		message = "Shipping address created successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    addr,
	})
}

// ShowShippingAddress is the handler for POST /v1/shipping-addresses/show.
func (h *Handlers) ShowShippingAddress(c *gin.Context) {
	userID := actingUserID(c)

	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	addr, err := h.loadShippingAddress(input.ID, userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Shipping address not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to get shipping address", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Shipping address fetched successfully",
		"data":    addr,
	})
}

// DeleteShippingAddress is the handler for POST /v1/shipping-addresses/delete.
func (h *Handlers) DeleteShippingAddress(c *gin.Context) {
	userID := actingUserID(c)

	var input struct {
		ID string `json:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	res, err := h.DB.Exec("DELETE FROM shipping_addresses WHERE id = ? AND user_id = ?", input.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete shipping address", "errors": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Shipping address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Shipping address deleted successfully"})
}

const shippingSelect = `
	SELECT id, user_id, address_type, address_title, first_name, last_name, email, phone_number,
	       country_id, country_name, state_id, state_name, city_id, city_name,
	       zip_code, address_description, created_at, updated_at
	FROM shipping_addresses`

func scanShippingAddress(scan func(...any) error) (*models.ShippingAddress, error) {
	var a models.ShippingAddress
	err := scan(&a.ID, &a.UserID, &a.AddressType, &a.AddressTitle, &a.FirstName, &a.LastName,
		&a.Email, &a.PhoneNumber, &a.CountryID, &a.CountryName, &a.StateID, &a.StateName,
		&a.CityID, &a.CityName, &a.ZipCode, &a.AddressDescription, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (h *Handlers) loadShippingAddress(id, userID string) (*models.ShippingAddress, error) {
	row := h.DB.QueryRow(shippingSelect+" WHERE id = ? AND user_id = ?", id, userID)
	return scanShippingAddress(row.Scan)
}
