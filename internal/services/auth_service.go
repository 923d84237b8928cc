package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against on login when the identifier matches no
// account, so the request costs one bcrypt verification either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("veritas-timing-pad"), bcrypt.DefaultCost)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	username, err := NormalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Unique constraints catch the register/register race the pre-checks miss.
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "username"):
			return nil, ErrUsernameTaken
		case strings.Contains(msg, "email"):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login authenticates by username or email and returns a signed access token.
func (s *AuthService) Login(req *dto.LoginRequest) (string, error) {
	var user models.User
	err := s.db.Where("username = ? OR email = ?", strings.ToLower(req.Identifier), req.Identifier).
		First(&user).Error
	if err != nil {
		// Burn a bcrypt comparison so unknown identifiers take as long as
		// wrong passwords.
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateAccessToken(&user)
}

// generateAccessToken issues an identity-only token: subject and expiry, no
// authorization claims. Admin status is re-read from storage on every request.
func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// CreateAdmin inserts an admin account. Used by the bootstrap CLI only; the
// HTTP surface never sets IsAdmin.
func (s *AuthService) CreateAdmin(username, email, password string) (*models.User, error) {
	user, err := s.Register(&dto.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("is_admin", true).Error; err != nil {
		return nil, fmt.Errorf("failed to promote admin: %w", err)
	}
	user.IsAdmin = true
	return user, nil
}
