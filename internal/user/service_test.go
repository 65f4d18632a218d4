package user_test

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
	"github.com/ropereralk/enterprise-directory/internal/core/actor"
	"github.com/ropereralk/enterprise-directory/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[uuid.UUID]*user.User
	roles       map[uuid.UUID]*user.Role
	assignments []*user.RoleAssignment
	createError error
	updateError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[uuid.UUID]*user.User),
		roles: make(map[uuid.UUID]*user.Role),
	}
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) GetByID(id uuid.UUID) (*user.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, user.NotFoundError(id)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username && !u.Deleted() {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.NotFoundError(uuid.Nil)
}

func (m *mockUserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if !u.Deleted() {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockUserRepository) UpdateVersioned(u *user.User, expectedVersion int64) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored, exists := m.users[u.ID]
	if !exists || stored.Version != expectedVersion {
		return user.VersionConflictError(u.ID)
	}
	u.Version = expectedVersion + 1
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) ExistsByUsername(username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username && !u.Deleted() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) CreateRole(r *user.Role) error {
	copied := *r
	m.roles[r.ID] = &copied
	return nil
}

func (m *mockUserRepository) GetRoleByID(id uuid.UUID) (*user.Role, error) {
	r, exists := m.roles[id]
	if !exists {
		return nil, user.RoleNotFoundError(id)
	}
	copied := *r
	return &copied, nil
}

func (m *mockUserRepository) GetRoleByName(name string) (*user.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			copied := *r
			return &copied, nil
		}
	}
	return nil, user.RoleNotFoundError(uuid.Nil)
}

func (m *mockUserRepository) GetRoles() ([]*user.Role, error) {
	var out []*user.Role
	for _, r := range m.roles {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUserRepository) ExistsRoleByName(name string) (bool, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) CreateAssignment(a *user.RoleAssignment) error {
	copied := *a
	m.assignments = append(m.assignments, &copied)
	return nil
}

func (m *mockUserRepository) GetAssignmentsByUserID(userID uuid.UUID) ([]*user.RoleAssignment, error) {
	var out []*user.RoleAssignment
	for _, a := range m.assignments {
		if a.UserID == userID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		now      time.Time
	)

	createUser := func(username string) *user.User {
		u, err := service.Create(user.CreateUserDTO{
			Username:  username,
			Password:  "correct-horse",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		Expect(err).ToNot(HaveOccurred())
		return u
	}

	createRole := func(name string) *user.Role {
		r, err := service.CreateRole(user.CreateRoleDTO{Name: name})
		Expect(err).ToNot(HaveOccurred())
		return r
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, actor.Fixed(uuid.New(), now), bcrypt.MinCost, logger)
	})

	Describe("Create", func() {
		It("should store a bcrypt hash, never the password", func() {
			created := createUser("ada")

			Expect(created.PasswordHash).ToNot(BeEmpty())
			Expect(created.PasswordHash).ToNot(ContainSubstring("correct-horse"))
			Expect(bcrypt.CompareHashAndPassword(
				[]byte(created.PasswordHash), []byte("correct-horse"))).To(Succeed())
			Expect(created.Enabled).To(BeTrue())
		})

		It("should reject a duplicate username with a conflict", func() {
			createUser("ada")

			_, err := service.Create(user.CreateUserDTO{
				Username:  "ada",
				Password:  "different-pass",
				FirstName: "Other",
				LastName:  "Person",
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeDuplicateUsername))
		})

		It("should reject a short password", func() {
			_, err := service.Create(user.CreateUserDTO{
				Username:  "ada",
				Password:  "short",
				FirstName: "Ada",
				LastName:  "Lovelace",
			})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("AssignRole and EffectiveRoles", func() {
		It("should include permanent and unexpired grants", func() {
			u := createUser("ada")
			admin := createRole("ADMIN")
			hr := createRole("HR_MANAGER")

			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID})
			Expect(err).ToNot(HaveOccurred())

			future := now.Add(24 * time.Hour)
			_, err = service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: hr.ID, ExpiresAt: &future})
			Expect(err).ToNot(HaveOccurred())

			roles, err := service.EffectiveRoles(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(roles).To(Equal([]string{"ADMIN", "HR_MANAGER"}))
		})

		It("should exclude an expired grant", func() {
			u := createUser("ada")
			admin := createRole("ADMIN")
			hr := createRole("HR_MANAGER")

			past := now.Add(-time.Hour)
			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID, ExpiresAt: &past})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: hr.ID})
			Expect(err).ToNot(HaveOccurred())

			roles, err := service.EffectiveRoles(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(roles).To(Equal([]string{"HR_MANAGER"}))
		})

		It("should treat the expiry instant itself as expired", func() {
			u := createUser("ada")
			admin := createRole("ADMIN")

			boundary := now
			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID, ExpiresAt: &boundary})
			Expect(err).ToNot(HaveOccurred())

			roles, err := service.EffectiveRoles(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(roles).To(BeEmpty())
		})

		It("should deduplicate repeated grants of the same role", func() {
			u := createUser("ada")
			admin := createRole("ADMIN")

			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID})
			Expect(err).ToNot(HaveOccurred())

			roles, err := service.EffectiveRoles(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(roles).To(Equal([]string{"ADMIN"}))
		})

		It("should answer not found for an unknown role", func() {
			u := createUser("ada")

			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: uuid.New()})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeRoleNotFound))
		})

		It("should answer not found for an unknown user", func() {
			admin := createRole("ADMIN")

			_, err := service.AssignRole(uuid.New(), user.AssignRoleDTO{RoleID: admin.ID})

			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeUserNotFound))
		})
	})

	Describe("Get", func() {
		It("should include effective roles in the response", func() {
			u := createUser("ada")
			admin := createRole("ADMIN")
			_, err := service.AssignRole(u.ID, user.AssignRoleDTO{RoleID: admin.ID})
			Expect(err).ToNot(HaveOccurred())

			resp, err := service.Get(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Username).To(Equal("ada"))
			Expect(resp.EffectiveRoles).To(Equal([]string{"ADMIN"}))
		})

		It("should answer not found for a deleted user", func() {
			u := createUser("ada")
			Expect(service.SoftDelete(u.ID)).To(Succeed())

			_, err := service.Get(u.ID)
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeUserNotFound))
		})
	})

	Describe("CreateRole", func() {
		It("should reject a duplicate role name", func() {
			createRole("ADMIN")

			_, err := service.CreateRole(user.CreateRoleDTO{Name: "ADMIN"})
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.Code).To(Equal(errors.ErrCodeDuplicateRoleName))
		})
	})
})
