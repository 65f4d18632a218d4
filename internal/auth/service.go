package auth

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/user"
)

// UserSource is the slice of the user service auth needs: account
// lookups and effective role resolution.
type UserSource interface {
	GetByUsername(username string) (*user.User, error)
	EffectiveRoles(userID uuid.UUID) ([]string, error)
}

// ServiceAPI is the surface the HTTP handler depends on.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResponse, error)
	RefreshTokens(refreshToken string) (TokenPair, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Service struct {
	users  UserSource
	tokens TokenGenerator
	logger *slog.Logger
}

func NewService(users UserSource, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate validates credentials against the stored bcrypt hash and
// issues a token pair. Lookup failures and bad passwords produce the
// same error so the response does not reveal which usernames exist.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", "username", dto.Username)
		return nil, errors.NewUnauthorizedError("invalid credentials", errors.ErrCodeInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "username", dto.Username)
		return nil, errors.NewUnauthorizedError("invalid credentials", errors.ErrCodeInvalidCredentials)
	}

	if !u.CanLogin() {
		s.logger.Warn("login refused: account unusable", "username", dto.Username,
			"enabled", u.Enabled, "locked", u.AccountLocked, "expired", u.AccountExpired)
		return nil, errors.NewForbiddenError("account is disabled or locked", errors.ErrCodeUserDisabled)
	}

	pair, err := s.issuePair(u)
	if err != nil {
		return nil, err
	}

	roles, err := s.users.EffectiveRoles(u.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", u.ID, "username", u.Username)
	return &LoginResponse{
		TokenPair:     pair,
		UserID:        u.ID.String(),
		Username:      u.Username,
		DisplayName:   u.DisplayName(),
		Enabled:       u.Enabled,
		AccountLocked: u.AccountLocked,
		Roles:         roles,
	}, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. The
// account is re-checked so a disabled user cannot keep a session alive.
func (s *Service) RefreshTokens(refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	u, err := s.users.GetByUsername(claims.Username)
	if err != nil {
		return TokenPair{}, errors.NewUnauthorizedError("invalid token", errors.ErrCodeInvalidToken)
	}
	if !u.CanLogin() {
		return TokenPair{}, errors.NewForbiddenError("account is disabled or locked", errors.ErrCodeUserDisabled)
	}

	return s.issuePair(u)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) issuePair(u *user.User) (TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return TokenPair{}, errors.NewInternalError("failed to sign access token", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(u.ID.String(), u.Username)
	if err != nil {
		return TokenPair{}, errors.NewInternalError("failed to sign refresh token", err)
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
