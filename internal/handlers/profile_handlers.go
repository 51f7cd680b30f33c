package handlers

import (
	"net/http"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/images"
	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	PhoneNumber     *string `json:"phone_number" binding:"omitempty,max=255"`
	TaxIDNumber     *string `json:"tax_id_number" binding:"omitempty,max=255"`
	NotifyOnMessage *bool   `json:"notify_on_message"`
	ShowEmail       *bool   `json:"show_email"`
	ShowPhoneNumber *bool   `json:"show_phone_number"`
	ProfilePicture  string  `json:"profile_picture"`
	CoverImage      string  `json:"cover_image"`
}

type ChangePasswordInput struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=8,eqfield=NewPassword"`
}

// GetProfile is the handler for GET /v1/profile.
func (h *Handlers) GetProfile(c *gin.Context) {
	userID := actingUserID(c)

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, name, email, role, created_at, updated_at
		FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch profile", "errors": err.Error()})
		return
	}
	user.Profile = h.loadProfile(userID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile fetched successfully",
		"data":    user,
	})
}

// UpdateProfile is the handler for POST /v1/profile/update.
// Picture fields arrive as base64; both users and profiles rows update in
// one transaction.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID := actingUserID(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	// Another user holding the email is a validation failure.
	var other string
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ? AND id <> ?", input.Email, userID).Scan(&other)
	if err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": gin.H{"email": "has already been taken"}})
		return
	}

	current := h.loadProfile(userID)
	if current == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": "profile missing"})
		return
	}

	profilePicture := current.ProfilePicture
	coverImage := current.CoverImage

	if input.ProfilePicture != "" {
		if !images.IsValidImage(input.ProfilePicture) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Invalid base64 image for profile_picture"})
			return
		}
		old := ""
		if profilePicture != nil {
			old = *profilePicture
		}
		saved, err := h.Images.Save(input.ProfilePicture, "profile_pictures", old)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
			return
		}
		profilePicture = &saved.FilePath
	}

	if input.CoverImage != "" {
		if !images.IsValidImage(input.CoverImage) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Invalid base64 image for cover_image"})
			return
		}
		old := ""
		if coverImage != nil {
			old = *coverImage
		}
		saved, err := h.Images.Save(input.CoverImage, "cover_images", old)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
			return
		}
		coverImage = &saved.FilePath
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.Exec(
		"UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?",
		input.Name, input.Email, now, userID,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
		return
	}

	notify := current.NotifyOnMessage
	if input.NotifyOnMessage != nil {
		notify = *input.NotifyOnMessage
	}
	showEmail := current.ShowEmail
	if input.ShowEmail != nil {
		showEmail = *input.ShowEmail
	}
	showPhone := current.ShowPhoneNumber
	if input.ShowPhoneNumber != nil {
		showPhone = *input.ShowPhoneNumber
	}

	if _, err := tx.Exec(`
		UPDATE profiles
		SET phone_number = ?, tax_id_number = ?, notify_on_message = ?,
		    show_email = ?, show_phone_number = ?, profile_picture = ?, cover_image = ?
		WHERE id = ?`,
		input.PhoneNumber, input.TaxIDNumber, notify, showEmail, showPhone,
		profilePicture, coverImage, userID,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile", "errors": err.Error()})
		return
	}

	var user models.User
	_ = h.DB.QueryRow(`
		SELECT id, name, email, role, created_at, updated_at
		FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	user.Profile = h.loadProfile(userID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    user,
	})
}

// ChangePassword is the handler for POST /v1/profile/change-password.
func (h *Handlers) ChangePassword(c *gin.Context) {
	userID := actingUserID(c)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	var hash string
	if err := h.DB.QueryRow("SELECT password_hash FROM users WHERE id = ?", userID).Scan(&hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to change password", "errors": err.Error()})
		return
	}

	password := models.Password{Hash: hash}
	match, err := password.Matches(input.OldPassword)
	if err != nil || !match {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Old password is incorrect"})
		return
	}

	if err := password.Set(input.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to change password", "errors": "Failed to hash password"})
		return
	}

	if _, err := h.DB.Exec(
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		password.Hash, time.Now(), userID,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to change password", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Password changed successfully"})
}
