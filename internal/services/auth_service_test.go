package services_test

import (
	"fmt"
	"testing"

	"cookbook/internal/models"
	"cookbook/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func notFound() error {
	return fmt.Errorf("not found: %w", gorm.ErrRecordNotFound)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	var created *models.User
	mockRepo.On("GetByEmail", "someone@example.com").Return(nil, notFound()).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once().
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.User)
			created.ID = "user-1"
		})

	user, err := service.Register("Someone@EXAMPLE.com", "supersecret", "Someone")

	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", user.Email, "email casing is normalized to lowercase")
	assert.Equal(t, "Someone", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)

	// The stored password is a hash of the raw secret, never the secret itself.
	assert.NotEqual(t, "supersecret", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("supersecret")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterEmptyEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	_, err := service.Register("", "supersecret", "")
	assert.ErrorIs(t, err, services.ErrEmailRequired)

	_, err = service.Register("   ", "supersecret", "")
	assert.ErrorIs(t, err, services.ErrEmailRequired)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	existing := &models.User{ID: "user-1", Email: "someone@example.com"}
	mockRepo.On("GetByEmail", "someone@example.com").Return(existing, nil).Once()

	_, err := service.Register("someone@example.com", "supersecret", "")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterDuplicateEmailRace(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	// The pre-insert lookup sees nothing, but a concurrent registration
	// wins the insert and the unique index rejects ours.
	mockRepo.On("GetByEmail", "someone@example.com").Return(nil, notFound()).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)).Once()

	_, err := service.Register("someone@example.com", "supersecret", "")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, notFound()).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := service.CreateSuperuser("admin@example.com", "supersecret")

	assert.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	mockRepo.AssertExpectations(t)
}

func registeredUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &models.User{
		ID:       "user-1",
		Email:    "someone@example.com",
		Password: string(hash),
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := registeredUser(t, "supersecret")
	mockRepo.On("GetByEmail", "someone@example.com").Return(user, nil).Once()

	// Login normalizes the email the same way registration does.
	token, err := service.Login("SOMEONE@example.com", "supersecret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "someone@example.com", claims["email"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := registeredUser(t, "supersecret")
	mockRepo.On("GetByEmail", "someone@example.com").Return(user, nil).Once()

	_, err := service.Login("someone@example.com", "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown emails fail exactly like a wrong password.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFound()).Once()
	_, err = service.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginInactiveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := registeredUser(t, "supersecret")
	user.IsActive = false
	mockRepo.On("GetByEmail", "someone@example.com").Return(user, nil).Once()

	_, err := service.Login("someone@example.com", "supersecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenRejectsForgery(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := services.NewAuthService(mockRepo, "other_secret")
	user := registeredUser(t, "supersecret")
	mockRepo.On("GetByEmail", "someone@example.com").Return(user, nil).Once()

	token, err := issuer.Login("someone@example.com", "supersecret")
	assert.NoError(t, err)

	_, err = issuer.ValidateToken(token)
	assert.NoError(t, err, "sanity: the issuing secret validates")

	service := services.NewAuthService(new(MockUserRepository), "test_secret")
	_, err = service.ValidateToken(token)
	assert.Error(t, err, "a token signed with another secret is rejected")
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_secret")

	user := registeredUser(t, "supersecret")
	oldHash := user.Password
	mockRepo.On("GetByID", "user-1").Return(user, nil).Once()
	mockRepo.On("Update", user).Return(nil).Once()

	newName := "New Name"
	newPassword := "evenmoresecret"
	updated, err := service.UpdateProfile("user-1", services.ProfileUpdate{
		Name:     &newName,
		Password: &newPassword,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "someone@example.com", updated.Email, "untouched field is preserved")
	assert.NotEqual(t, oldHash, updated.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)))
	mockRepo.AssertExpectations(t)
}
