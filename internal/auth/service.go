package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/config"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUserBanned       = errors.New("account is banned")
	ErrNotAdmin         = errors.New("identity is not an administrator")
	ErrInvalidToken     = errors.New("invalid token")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrTooManyAttempts  = errors.New("too many failed sign-in attempts, try again later")
)

// Service handles authentication, admin authorization and user creation.
type Service struct {
	db      *gorm.DB
	config  config.Auth
	tokens  TokenService
	limiter *loginLimiter
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
		tokens: TokenService{
			Secret:   resolveTokenSecret(cfg.TokenSecret),
			Issuer:   "sawtlib",
			Duration: cfg.TokenExpiry,
		},
		limiter: newLoginLimiter(cfg.MaxLoginAttempts, cfg.RateLimitWindow, cfg.LockoutDuration),
	}
}

// CreateUser creates a new user account with a hashed password.
func (s *Service) CreateUser(email, password, name string) (*entities.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// RFC 5321 caps addresses at 254 bytes
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	var existing entities.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		Email:            email,
		Name:             name,
		PasswordHash:     passwordHash,
		EmailConfirmedAt: &now,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. Failed
// attempts count toward a per-(ip, email) lockout window; banned
// accounts are rejected even with a correct password.
func (s *Service) Authenticate(email, password, ip string) (*entities.User, error) {
	if s.limiter.isLocked(ip, email) {
		return nil, ErrTooManyAttempts
	}

	var user entities.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.limiter.recordFailure(ip, email)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		s.limiter.recordFailure(ip, email)
		return nil, err
	}

	if user.IsBanned {
		return nil, ErrUserBanned
	}

	s.limiter.reset(ip, email)

	now := time.Now().UTC()
	s.db.Model(&user).Update("last_sign_in_at", now)
	user.LastSignInAt = &now

	return &user, nil
}

// IsAdmin reports membership in the admins table.
func (s *Service) IsAdmin(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&entities.Admin{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// AdminSignIn authenticates credentials and then authorizes against the
// admin membership table. A valid identity that is not an admin gets
// ErrNotAdmin; the caller must destroy any session it created so a
// non-admin never holds an admin session, not even momentarily.
func (s *Service) AdminSignIn(email, password, ip string) (*entities.User, error) {
	user, err := s.Authenticate(email, password, ip)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.IsAdmin(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin membership: %w", err)
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// IssueAdminToken creates a bearer token for an admin identity. Non-admin
// users cannot obtain one.
func (s *Service) IssueAdminToken(userID uint) (string, time.Time, error) {
	isAdmin, err := s.IsAdmin(userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if !isAdmin {
		return "", time.Time{}, ErrNotAdmin
	}
	return s.tokens.Sign(userID, true)
}

// ValidateAdminToken parses a bearer token and confirms the identity is
// still an admin. Revoking membership invalidates outstanding tokens.
func (s *Service) ValidateAdminToken(token string) (*entities.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	isAdmin, err := s.IsAdmin(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotAdmin
	}

	return s.GetUserByID(claims.UserID)
}
