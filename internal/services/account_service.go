package services

import (
	"fmt"
	"log"
	"time"

	"github.com/arcsino/quizquartz-backend/internal/apperrors"
	"github.com/arcsino/quizquartz-backend/internal/models"
	"github.com/arcsino/quizquartz-backend/internal/repositories"
	"github.com/arcsino/quizquartz-backend/internal/validation"
	"github.com/arcsino/quizquartz-backend/pkg/rabbitmq"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const loginFailedMessage = "login failed: username or password is incorrect"

// AccountService handles registration, authentication and account lifecycle.
// All checks run before any storage mutation; the first failing rule aborts
// the operation.
type AccountService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	mqClient  *rabbitmq.Client
}

// NewAccountService creates a new AccountService. mqClient may be nil, in
// which case event publication is skipped.
func NewAccountService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, mqClient *rabbitmq.Client) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mqClient:  mqClient,
	}
}

// Register creates a new user account. Rule order matters: uniqueness before
// format, then password confirmation, then the composition policy.
func (s *AccountService) Register(req models.RegisterRequest) (*models.User, error) {
	taken, err := s.userRepo.UsernameTaken(req.Username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Validation("username '%s' already taken", req.Username)
	}
	if !validation.ValidUsername(req.Username) {
		return nil, apperrors.Validation("username '%s' is invalid: only letters, digits and @/./+/-/_ are allowed", req.Username)
	}
	taken, err = s.userRepo.EmailTaken(req.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Validation("email '%s' already registered", req.Email)
	}
	if req.Password != req.Password2 {
		return nil, apperrors.Validation("passwords do not match")
	}
	if err := validation.CheckPassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Username:   req.Username,
		Email:      req.Email,
		Nickname:   models.NewAnonymousNickname(),
		Password:   string(hashedPassword),
		IsActive:   true,
		DateJoined: time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.publishEvent("user.registered", map[string]any{"userID": user.ID, "username": user.Username})
	return user, nil
}

// Login authenticates the user and issues a fresh bearer token, revoking any
// previously issued one. All failure modes share one generic message.
func (s *AccountService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", apperrors.Authentication(loginFailedMessage)
	}
	if !user.IsActive {
		return nil, "", apperrors.Authentication(loginFailedMessage)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.Authentication(loginFailedMessage)
	}

	token, err := models.NewAuthToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	if err := s.tokenRepo.Store(token); err != nil {
		return nil, "", err
	}
	return user, token.Key, nil
}

// Authenticate resolves a bearer token key to an active user. Used by the
// auth middleware on every protected request.
func (s *AccountService) Authenticate(tokenKey string) (*models.User, error) {
	token, err := s.tokenRepo.GetByKey(tokenKey)
	if err != nil {
		return nil, apperrors.Authentication("invalid token")
	}
	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		return nil, apperrors.Authentication("invalid token")
	}
	if !user.IsActive {
		return nil, apperrors.Authentication("invalid token")
	}
	return user, nil
}

// UpdateProfile replaces username, email and nickname as a set. Each value is
// checked for uniqueness against all other users; the caller's own row is
// excluded from the scan.
func (s *AccountService) UpdateProfile(user *models.User, req models.ProfileUpdateRequest) error {
	taken, err := s.userRepo.UsernameTaken(req.Username, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("username '%s' already taken", req.Username)
	}
	if !validation.ValidUsername(req.Username) {
		return apperrors.Validation("username '%s' is invalid: only letters, digits and @/./+/-/_ are allowed", req.Username)
	}
	taken, err = s.userRepo.EmailTaken(req.Email, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("email '%s' already registered", req.Email)
	}
	taken, err = s.userRepo.NicknameTaken(req.Nickname, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validation("nickname '%s' already taken", req.Nickname)
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Nickname = req.Nickname
	return s.userRepo.Update(user)
}

// ChangePassword verifies the current password, then applies the same
// composition policy as registration to the new one. Existing tokens stay
// valid.
func (s *AccountService) ChangePassword(user *models.User, req models.PasswordChangeRequest) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return apperrors.Validation("current password is incorrect")
	}
	if req.NewPassword != req.NewPassword2 {
		return apperrors.Validation("new passwords do not match")
	}
	if err := validation.CheckPassword(req.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	return s.userRepo.Update(user)
}

// Logout revokes the presented token. The account itself is untouched.
func (s *AccountService) Logout(tokenKey string) error {
	return s.tokenRepo.DeleteByKey(tokenKey)
}

// DeleteAccount removes the caller's account, revoking their token and
// cascading to all owned quiz groups and quizzes.
func (s *AccountService) DeleteAccount(user *models.User) error {
	if err := s.tokenRepo.DeleteByUser(user.ID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	s.publishEvent("user.deleted", map[string]any{"userID": user.ID, "username": user.Username})
	return nil
}

func (s *AccountService) publishEvent(event string, payload map[string]any) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
