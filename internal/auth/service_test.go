package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/ropereralk/enterprise-directory/internal"
	"github.com/ropereralk/enterprise-directory/internal/auth"
	"github.com/ropereralk/enterprise-directory/internal/core/entity"
	"github.com/ropereralk/enterprise-directory/internal/person"
	"github.com/ropereralk/enterprise-directory/internal/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// mockUserSource serves accounts and role names from memory
type mockUserSource struct {
	users map[string]*user.User
	roles map[uuid.UUID][]string
}

func newMockUserSource() *mockUserSource {
	return &mockUserSource{
		users: make(map[string]*user.User),
		roles: make(map[uuid.UUID][]string),
	}
}

func (m *mockUserSource) GetByUsername(username string) (*user.User, error) {
	u, exists := m.users[username]
	if !exists {
		return nil, user.NotFoundError(uuid.Nil)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserSource) EffectiveRoles(userID uuid.UUID) ([]string, error) {
	return m.roles[userID], nil
}

func (m *mockUserSource) add(username, password string) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).ToNot(HaveOccurred())

	u := &user.User{
		Profile: person.Profile{
			FirstName: "Ada",
			LastName:  "Lovelace",
		},
		Username:     username,
		PasswordHash: string(hash),
		Enabled:      true,
	}
	u.ID = uuid.New()
	u.Audit = entity.NewAudit(time.Now().UTC(), uuid.Nil)
	m.users[username] = u
	return u
}

var _ = Describe("AuthService", func() {
	var (
		service *auth.Service
		source  *mockUserSource
		tokens  *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		source = newMockUserSource()
		tokens = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(source, tokens, logger)
	})

	Describe("Authenticate", func() {
		It("should issue a token pair with the account summary", func() {
			u := source.add("ada", "correct-horse")
			source.roles[u.ID] = []string{"ADMIN"}

			resp, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.AccessToken).ToNot(BeEmpty())
			Expect(resp.RefreshToken).ToNot(BeEmpty())
			Expect(resp.Username).To(Equal("ada"))
			Expect(resp.DisplayName).To(Equal("Ada Lovelace"))
			Expect(resp.Roles).To(Equal([]string{"ADMIN"}))

			claims, err := tokens.ValidateAccessToken(resp.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal(u.ID.String()))
			Expect(claims.Username).To(Equal("ada"))
		})

		It("should reject a wrong password without revealing which part failed", func() {
			source.add("ada", "correct-horse")

			_, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "wrong"})

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidCredentials))
		})

		It("should reject an unknown username with the same error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "nobody", Password: "whatever"})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidCredentials))
		})

		It("should refuse a disabled account even with the right password", func() {
			u := source.add("ada", "correct-horse")
			u.Enabled = false
			source.users["ada"] = u

			_, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeUserDisabled))
		})

		It("should refuse a locked account", func() {
			u := source.add("ada", "correct-horse")
			u.AccountLocked = true
			source.users["ada"] = u

			_, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeUserDisabled))
		})

		It("should require both username and password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "ada"})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("RefreshTokens", func() {
		It("should exchange a refresh token for a new pair", func() {
			source.add("ada", "correct-horse")
			resp, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			pair, err := service.RefreshTokens(resp.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(pair.AccessToken).ToNot(BeEmpty())
			Expect(pair.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject an access token used as a refresh token", func() {
			source.add("ada", "correct-horse")
			resp, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RefreshTokens(resp.AccessToken)

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidToken))
		})

		It("should refuse a refresh for an account disabled since login", func() {
			u := source.add("ada", "correct-horse")
			resp, err := service.Authenticate(auth.LoginDTO{Username: "ada", Password: "correct-horse"})
			Expect(err).ToNot(HaveOccurred())

			u.Enabled = false
			source.users["ada"] = u

			_, err = service.RefreshTokens(resp.RefreshToken)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeUserDisabled))
		})
	})

	Describe("JWTTokenGenerator", func() {
		It("should reject an expired token", func() {
			expired := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, time.Hour)
			token, err := expired.GenerateAccessToken(uuid.NewString(), "ada")
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateAccessToken(token)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			other := auth.NewJWTTokenGenerator("other-secret", "other-refresh", time.Minute, time.Hour)
			token, err := other.GenerateAccessToken(uuid.NewString(), "ada")
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateAccessToken(token)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeInvalidToken))
		})
	})
})
