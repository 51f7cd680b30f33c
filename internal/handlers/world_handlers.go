package handlers

import (
	"net/http"

	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// GetCountries is the handler for GET /v1/world/countries.
func (h *Handlers) GetCountries(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, code FROM countries ORDER BY name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch countries", "errors": err.Error()})
		return
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var country models.Country
		if err := rows.Scan(&country.ID, &country.Name, &country.Code); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch countries", "errors": err.Error()})
			return
		}
		countries = append(countries, country)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Countries fetched successfully",
		"data":    countries,
	})
}

// GetStates is the handler for GET /v1/world/states?country_id=N.
func (h *Handlers) GetStates(c *gin.Context) {
	var input struct {
		CountryID int64 `form:"country_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	rows, err := h.DB.Query("SELECT id, country_id, name FROM states WHERE country_id = ? ORDER BY name ASC", input.CountryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch states", "errors": err.Error()})
		return
	}
	defer rows.Close()

	states := []models.State{}
	for rows.Next() {
		var state models.State
		if err := rows.Scan(&state.ID, &state.CountryID, &state.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch states", "errors": err.Error()})
			return
		}
		states = append(states, state)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "States fetched successfully",
		"data":    states,
	})
}

// GetCities is the handler for GET /v1/world/cities?state_id=N.
func (h *Handlers) GetCities(c *gin.Context) {
	var input struct {
		StateID int64 `form:"state_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	rows, err := h.DB.Query("SELECT id, state_id, name FROM cities WHERE state_id = ? ORDER BY name ASC", input.StateID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cities", "errors": err.Error()})
		return
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.StateID, &city.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch cities", "errors": err.Error()})
			return
		}
		cities = append(cities, city)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Cities fetched successfully",
		"data":    cities,
	})
}

// --- Reference lookups shared by shop, product and shipping handlers ---

func (h *Handlers) countryName(id *int64) *string {
	return h.worldName("countries", id)
}

func (h *Handlers) stateName(id *int64) *string {
	return h.worldName("states", id)
}

func (h *Handlers) cityName(id *int64) *string {
	return h.worldName("cities", id)
}

func (h *Handlers) worldName(table string, id *int64) *string {
	if id == nil {
		return nil
	}
	var name string
	if err := h.DB.QueryRow("SELECT name FROM "+table+" WHERE id = ?", *id).Scan(&name); err != nil {
		return nil
	}
	return &name
}
