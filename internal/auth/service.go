package auth

import (
	"log/slog"
	"time"

	"github.com/apontae/timesheet-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

// Repository defines the data access methods for authentication.
type Repository interface {
	GetUserByEmail(email string) (*User, string, error)
	GetUserByID(id int64) (*User, error)
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Service handles login and token validation.
type Service struct {
	repo          Repository
	secret        []byte
	tokenDuration time.Duration
	logger        *slog.Logger
}

func NewService(repo Repository, secret string, tokenDuration time.Duration, logger *slog.Logger) *Service {
	if tokenDuration <= 0 {
		tokenDuration = 15 * time.Minute
	}
	return &Service{
		repo:          repo,
		secret:        []byte(secret),
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	user, passwordHash, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	if err := VerifyPassword(passwordHash, dto.Password); err != nil {
		s.logger.Warn("login failed: password mismatch", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenDuration.Seconds()),
		User:        user,
	}, nil
}

// ValidateToken parses an access token and loads the user it names.
func (s *Service) ValidateToken(tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	return user, nil
}

func (s *Service) generateToken(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
