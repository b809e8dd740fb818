package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/flexbase/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long a session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// AuthService handles user registration, login, and JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService. A non-positive ttl selects DefaultTokenTTL.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		tokenTTL:   ttl,
	}
}

// TokenTTL reports the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a new user account after validating inputs.
// Email uniqueness is checked before username uniqueness.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: All fields are required", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: Password must be at least %d characters long", domain.ErrInvalidInput, MinPasswordLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: Please enter a valid email address", domain.ErrInvalidInput)
	}
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: Username must be 3-30 letters, digits, dots, dashes or underscores", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	// The unique indexes still catch a concurrent registration.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token with its user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}

	return token, user, nil
}

// Issue signs a session token for userID.
func (s *AuthService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim, or ErrTokenExpired / ErrTokenMalformed.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}
		return 0, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrTokenMalformed
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrTokenMalformed
	}

	return userID, nil
}

// Authenticate resolves a token to its user. A valid token for a user that
// no longer exists yields ErrUserGone.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserGone
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
