package services_test

import (
	"log"
	"os"
	"strings"
	"testing"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameTaken(username, excludeID string) (bool, error) {
	args := m.Called(username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailTaken(email, excludeID string) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) NicknameTaken(nickname, excludeID string) (bool, error) {
	args := m.Called(nickname, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Store(token *models.AuthToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetByKey(key string) (*models.AuthToken, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) DeleteByKey(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@x.com",
		Password:  "Passw0rd!",
		Password2: "Passw0rd!",
	}
}

func TestAccountService_Register(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	// Successful registration
	mockUsers.On("UsernameTaken", "alice", "").Return(false, nil).Once()
	mockUsers.On("EmailTaken", "alice@x.com", "").Return(false, nil).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := accountService.Register(registerRequest())
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.True(t, strings.HasPrefix(user.Nickname, "anon-"))
	// Password is stored as a bcrypt hash, never plaintext
	assert.NotEqual(t, "Passw0rd!", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Passw0rd!")))
	mockUsers.AssertExpectations(t)

	// Username already taken: message names the username, nothing is created
	mockUsers.On("UsernameTaken", "alice", "").Return(true, nil).Once()
	_, err = accountService.Register(registerRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "alice")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockUsers.AssertExpectations(t)

	// Invalid username format: uniqueness is checked first, format second
	req := registerRequest()
	req.Username = "bad name!"
	mockUsers.On("UsernameTaken", "bad name!", "").Return(false, nil).Once()
	_, err = accountService.Register(req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
	mockUsers.AssertExpectations(t)

	// Email already registered
	mockUsers.On("UsernameTaken", "alice", "").Return(false, nil).Once()
	mockUsers.On("EmailTaken", "alice@x.com", "").Return(true, nil).Once()
	_, err = accountService.Register(registerRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "alice@x.com")
	mockUsers.AssertExpectations(t)

	// Password confirmation mismatch
	req = registerRequest()
	req.Password2 = "Different1!"
	mockUsers.On("UsernameTaken", "alice", "").Return(false, nil).Once()
	mockUsers.On("EmailTaken", "alice@x.com", "").Return(false, nil).Once()
	_, err = accountService.Register(req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
	mockUsers.AssertExpectations(t)
}

func TestAccountService_Register_PasswordPolicy(t *testing.T) {
	weakPasswords := []string{
		"Pw0!",      // too short
		"passw0rd!", // no uppercase
		"PASSW0RD!", // no lowercase
		"Password!", // no digit
		"Passw0rd",  // no special character
	}

	for _, password := range weakPasswords {
		mockUsers := new(MockUserRepository)
		mockTokens := new(MockTokenRepository)
		accountService := services.NewAccountService(mockUsers, mockTokens, nil)

		mockUsers.On("UsernameTaken", "alice", "").Return(false, nil).Once()
		mockUsers.On("EmailTaken", "alice@x.com", "").Return(false, nil).Once()

		req := registerRequest()
		req.Password = password
		req.Password2 = password
		_, err := accountService.Register(req)
		assert.Error(t, err, "expected password %q to be rejected", password)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		mockUsers.AssertNotCalled(t, "Create", mock.Anything)
	}
}

func TestAccountService_Login(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@x.com",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Successful login stores a fresh token
	mockUsers.On("GetByUsername", "alice").Return(user, nil).Once()
	mockTokens.On("Store", mock.AnythingOfType("*models.AuthToken")).Return(nil).Once()

	gotUser, token, err := accountService.Login("alice", "Passw0rd!")
	assert.NoError(t, err)
	assert.Equal(t, "alice", gotUser.Username)
	assert.Len(t, token, 40)
	mockTokens.AssertExpectations(t)

	// A second login issues a different token
	mockUsers.On("GetByUsername", "alice").Return(user, nil).Once()
	mockTokens.On("Store", mock.AnythingOfType("*models.AuthToken")).Return(nil).Once()
	_, secondToken, err := accountService.Login("alice", "Passw0rd!")
	assert.NoError(t, err)
	assert.NotEqual(t, token, secondToken)

	// Wrong password: generic failure
	mockUsers.On("GetByUsername", "alice").Return(user, nil).Once()
	_, _, err = accountService.Login("alice", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username or password is incorrect")
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	// Unknown user: same generic failure
	mockUsers.On("GetByUsername", "nobody").Return(nil, apperrors.NotFound("user with username nobody not found")).Once()
	_, _, err = accountService.Login("nobody", "Passw0rd!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username or password is incorrect")

	// Inactive account: same generic failure
	inactive := *user
	inactive.IsActive = false
	mockUsers.On("GetByUsername", "alice").Return(&inactive, nil).Once()
	_, _, err = accountService.Login("alice", "Passw0rd!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username or password is incorrect")
	mockUsers.AssertExpectations(t)
}

func TestAccountService_Authenticate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	user := &models.User{ID: "user-123", Username: "alice", IsActive: true}

	mockTokens.On("GetByKey", "goodkey").Return(&models.AuthToken{Key: "goodkey", UserID: "user-123"}, nil).Once()
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()

	gotUser, err := accountService.Authenticate("goodkey")
	assert.NoError(t, err)
	assert.Equal(t, "alice", gotUser.Username)

	// Unknown token
	mockTokens.On("GetByKey", "badkey").Return(nil, apperrors.NotFound("token not found")).Once()
	_, err = accountService.Authenticate("badkey")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	// Token for an inactive user
	inactive := &models.User{ID: "user-456", IsActive: false}
	mockTokens.On("GetByKey", "stalekey").Return(&models.AuthToken{Key: "stalekey", UserID: "user-456"}, nil).Once()
	mockUsers.On("GetByID", "user-456").Return(inactive, nil).Once()
	_, err = accountService.Authenticate("stalekey")
	assert.Error(t, err)
	mockTokens.AssertExpectations(t)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	user := &models.User{ID: "user-123", Username: "alice", Email: "alice@x.com", Nickname: "anon-abc"}
	req := models.ProfileUpdateRequest{Username: "alice2", Email: "alice2@x.com", Nickname: "ali"}

	// Uniqueness scans exclude the caller's own row
	mockUsers.On("UsernameTaken", "alice2", "user-123").Return(false, nil).Once()
	mockUsers.On("EmailTaken", "alice2@x.com", "user-123").Return(false, nil).Once()
	mockUsers.On("NicknameTaken", "ali", "user-123").Return(false, nil).Once()
	mockUsers.On("Update", user).Return(nil).Once()

	err := accountService.UpdateProfile(user, req)
	assert.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "alice2@x.com", user.Email)
	assert.Equal(t, "ali", user.Nickname)
	mockUsers.AssertExpectations(t)

	// Nickname held by another user
	mockUsers.On("UsernameTaken", "alice2", "user-123").Return(false, nil).Once()
	mockUsers.On("EmailTaken", "alice2@x.com", "user-123").Return(false, nil).Once()
	mockUsers.On("NicknameTaken", "ali", "user-123").Return(true, nil).Once()
	err = accountService.UpdateProfile(user, req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ali")
	mockUsers.AssertExpectations(t)
}

func TestAccountService_ChangePassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "alice", Password: string(hashedPassword)}

	// Wrong current password
	err := accountService.ChangePassword(user, models.PasswordChangeRequest{
		OldPassword: "wrong", NewPassword: "NewPassw0rd!", NewPassword2: "NewPassw0rd!",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "current password is incorrect")

	// New password confirmation mismatch
	err = accountService.ChangePassword(user, models.PasswordChangeRequest{
		OldPassword: "Passw0rd!", NewPassword: "NewPassw0rd!", NewPassword2: "Other1!pw",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	// Policy applies to the new password
	err = accountService.ChangePassword(user, models.PasswordChangeRequest{
		OldPassword: "Passw0rd!", NewPassword: "weak", NewPassword2: "weak",
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// Success replaces the stored hash
	mockUsers.On("Update", user).Return(nil).Once()
	err = accountService.ChangePassword(user, models.PasswordChangeRequest{
		OldPassword: "Passw0rd!", NewPassword: "NewPassw0rd!", NewPassword2: "NewPassw0rd!",
	})
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("NewPassw0rd!")))
	mockUsers.AssertExpectations(t)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	accountService := services.NewAccountService(mockUsers, mockTokens, nil)

	user := &models.User{ID: "user-123", Username: "alice"}
	mockTokens.On("DeleteByUser", "user-123").Return(nil).Once()
	mockUsers.On("Delete", "user-123").Return(nil).Once()

	err := accountService.DeleteAccount(user)
	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}
