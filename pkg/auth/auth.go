package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// TokenTTL is how long an issued token stays valid
const TokenTTL = 24 * time.Hour

// Claims represents the JWT claims
type Claims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns who the token speaks for
func (c *Claims) Actor() models.Actor {
	return models.Actor{ID: c.UserID, Email: c.Email}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Service logs users in and verifies their tokens
type Service struct {
	users  repository.UserRepositoryInterface
	secret []byte
	now    func() time.Time
}

// NewService creates an auth service signing tokens with secret
func NewService(users repository.UserRepositoryInterface, secret string) *Service {
	return &Service{users: users, secret: []byte(secret), now: time.Now}
}

// CreateToken creates a new JWT token for a user
func (s *Service) CreateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(s.secret)
}

// VerifyToken verifies a JWT token
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, &apperrors.AuthenticationError{Message: "invalid token"}
	}

	if !token.Valid || claims.UserID == "" {
		return nil, &apperrors.AuthenticationError{Message: "invalid token"}
	}

	return claims, nil
}

// Login checks the credentials and returns a signed token
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("could not create token: %w", err)
	}
	return token, user, nil
}

// CreateUser stores a new account with a hashed password
func CreateUser(ctx context.Context, users repository.UserRepositoryInterface, email, password string, role models.Role) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email", "email y contraseña son obligatorios")
	}
	if role == "" {
		role = models.RoleAdmin
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// EnsureAdminExists creates an owner account from the given credentials when
// there are no users at all.
func EnsureAdminExists(ctx context.Context, users repository.UserRepositoryInterface, email, password string) error {
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := CreateUser(ctx, users, email, password, models.RoleOwner)
	if err != nil {
		return err
	}
	logger.New().WithField("email", user.Email).Info("default admin user created")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
