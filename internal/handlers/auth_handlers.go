package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/amirasyraf/sellhub-golang/internal/auth"
	"github.com/amirasyraf/sellhub-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// --- Inputs ---

type RegisterInput struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=8,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=8,eqfield=Password"`
}

// randomToken returns a hex string of n characters for reset tokens.
func randomToken(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)[:n]
}

// Register is the handler for POST /v1/auth/register.
// It creates the user plus an empty profile with a slug derived from the
// email local part, in one transaction, and returns a fresh token.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	// Unique email check up front for a friendly 422.
	var exists int
	err := h.DB.QueryRow("SELECT 1 FROM users WHERE email = ?", input.Email).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}
	if err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": gin.H{"email": "has already been taken"}})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": "Failed to hash password"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}
	defer tx.Rollback()

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: password.Hash,
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = tx.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}

	// Profile slug comes from the email local part; append a random number
	// when another profile already claimed it.
	profileSlug := slug.Make(strings.SplitN(input.Email, "@", 2)[0])
	var taken int
	err = tx.QueryRow("SELECT 1 FROM profiles WHERE slug = ?", profileSlug).Scan(&taken)
	if err == nil {
		n, _ := rand.Int(rand.Reader, big.NewInt(9000))
		profileSlug = fmt.Sprintf("%s-%d", profileSlug, 1000+n.Int64())
	} else if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}

	_, err = tx.Exec("INSERT INTO profiles (id, slug) VALUES (?, ?)", user.ID, profileSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": err.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Registration failed", "errors": "Failed to issue token"})
		return
	}

	user.Profile = &models.Profile{ID: user.ID, Slug: profileSlug}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// Login is the handler for POST /v1/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = ?`, input.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed", "errors": err.Error()})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, merr := password.Matches(input.Password)
	if err == sql.ErrNoRows || merr != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed", "errors": "Failed to issue token"})
		return
	}

	profile := h.loadProfile(user.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token":   token,
			"user":    user,
			"profile": profile,
			"roles":   []string{user.Role},
		},
	})
}

// Logout is the handler for POST /v1/auth/logout. Tokens are stateless, so
// the server side has nothing to revoke; clients drop the token.
func (h *Handlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ForgotPassword issues a reset token and stores it on the user row.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	token := randomToken(60)
	res, err := h.DB.Exec(
		"UPDATE users SET remember_token = ?, updated_at = ? WHERE email = ?",
		token, time.Now(), input.Email,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Forgot password failed", "errors": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Forgot password successful",
		"data":    gin.H{"token": token},
	})
}

// ResetPassword exchanges a valid reset token for a new password.
func (h *Handlers) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": "Validation failed", "errors": validationErrors(err)})
		return
	}

	var userID string
	err := h.DB.QueryRow(
		"SELECT id FROM users WHERE email = ? AND remember_token = ?",
		input.Email, input.Token,
	).Scan(&userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Reset password failed", "errors": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Reset password failed", "errors": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE users SET password_hash = ?, remember_token = NULL, updated_at = ? WHERE id = ?",
		password.Hash, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Reset password failed", "errors": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Reset password successful"})
}

// loadProfile fetches a user's profile row; nil when absent.
func (h *Handlers) loadProfile(userID string) *models.Profile {
	var p models.Profile
	err := h.DB.QueryRow(`
		SELECT id, slug, phone_number, tax_id_number, profile_picture, cover_image,
		       notify_on_message, show_email, show_phone_number
		FROM profiles WHERE id = ?`, userID,
	).Scan(&p.ID, &p.Slug, &p.PhoneNumber, &p.TaxIDNumber, &p.ProfilePicture, &p.CoverImage,
		&p.NotifyOnMessage, &p.ShowEmail, &p.ShowPhoneNumber)
	if err != nil {
		return nil
	}
	return &p
}
