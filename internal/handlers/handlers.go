package handlers

import (
	"database/sql"
	"errors"

	"github.com/amirasyraf/sellhub-golang/internal/images"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Images *images.Store
}

// actingUserID returns the authenticated user's ID placed on the context by
// the auth middleware. The empty string means the middleware did not run.
func actingUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// validationErrors converts a gin binding error into a field -> message map
// for the 422 envelope. Non-validator errors (malformed JSON, wrong types)
// collapse into a single "body" entry.
func validationErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

// checkShopVerification reports whether the user's shop exists and has been
// verified by an admin. Catalog writes are refused until then.
func (h *Handlers) checkShopVerification(userID string) (bool, error) {
	var verified bool
	err := h.DB.QueryRow(
		"SELECT valid_verification FROM shops WHERE id = ?", userID,
	).Scan(&verified)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return verified, nil
}

const shopNotVerifiedMsg = "Shop not found or not verified. Please create a shop first and wait for verification."
