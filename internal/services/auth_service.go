package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/campusportal/lostfound/internal/constants"
	"github.com/campusportal/lostfound/internal/models"
	"github.com/campusportal/lostfound/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid roll number or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// usernamePattern restricts usernames to letters, digits and @.+-_ so
// they are safe to embed in stored image filenames.
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// FieldErrors maps offending form fields to messages. It is returned
// by registration and reporting so handlers can re-render the form
// with per-field feedback.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// AuthService handles registration and authentication.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsStaff  bool
}

// Register creates a new user. The username is the campus roll number
// and doubles as the login identifier. Duplicate roll numbers and
// emails come back as field-level errors with nothing persisted.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	fields := FieldErrors{}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		fields["username"] = "Roll No. is required."
	} else if len(username) > constants.MaxUsernameLength {
		fields["username"] = fmt.Sprintf("Roll No. must be %d characters or fewer.", constants.MaxUsernameLength)
	} else if !usernamePattern.MatchString(username) {
		fields["username"] = "Roll No. may contain only letters, digits and @ . + - _ characters."
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "Email is required."
	} else if !strings.Contains(email, "@") {
		fields["email"] = "Enter a valid email address."
	}

	if len(input.Password) < constants.MinPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters.", constants.MinPasswordLength)
	}

	if len(fields) > 0 {
		return nil, fields
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		fields["username"] = "A user with that Roll No. already exists."
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		fields["email"] = "A user with that email already exists."
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if len(fields) > 0 {
		return nil, fields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsStaff:      input.IsStaff,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
