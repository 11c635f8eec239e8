package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidRole     = errors.New("invalid role: must be Operator, Engineer, or Manager")
)

// SignUpParams is the registration input.
type SignUpParams struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// AuthService handles user auth logic
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(repo repository.Authorization, signingKey string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// SignUp validates the role, rejects duplicate emails, hashes the password
// and creates the user.
func (s *AuthService) SignUp(p SignUpParams) (int, error) {
	if !models.ValidRole(p.Role) {
		return 0, ErrInvalidRole
	}

	existing, err := s.authRepo.GetByEmail(p.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	return s.authRepo.Create(models.User{
		Email:        p.Email,
		FullName:     p.FullName,
		Role:         p.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(email, password string) (string, error) {
	u, err := s.authRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID, u.Role)
}

// ParseToken parses JWT and returns the user ID and role.
func (s *AuthService) ParseToken(accessToken string) (int, string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	return claims.UserID, claims.Role, nil
}

// GetUser loads the profile behind a parsed token.
func (s *AuthService) GetUser(id int) (*models.User, error) {
	u, err := s.authRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	})
	return token.SignedString(s.signingKey)
}
