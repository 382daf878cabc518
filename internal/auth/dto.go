package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
)

// LoginRequest carries the credentials posted to /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// RemoteIP is filled by the controller, never by the client.
	RemoteIP string `json:"-"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        UserSummary `json:"user"`
}

// UserSummary is the safe projection of a user for API responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

func FromModel(user *models.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
