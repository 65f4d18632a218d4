package auth

import (
	errors "github.com/ropereralk/enterprise-directory/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return errors.NewValidationFieldError("username", "username is required", errors.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return errors.NewValidationFieldError("password", "password is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return errors.NewValidationFieldError("refresh_token", "refresh_token is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

// LoginResponse carries the token pair plus the account summary the
// client needs to render a session.
type LoginResponse struct {
	TokenPair
	UserID        string   `json:"user_id"`
	Username      string   `json:"username"`
	DisplayName   string   `json:"display_name"`
	Enabled       bool     `json:"enabled"`
	AccountLocked bool     `json:"account_locked"`
	Roles         []string `json:"roles"`
}
