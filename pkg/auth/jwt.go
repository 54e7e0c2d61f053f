package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

type JWTService interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role string) (string, error)
	ValidateToken(token string) (*Claims, error)
	ValidateRefreshToken(token string) (*Claims, error)
}

type Config struct {
	Secret        string
	RefreshSecret string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type jwtService struct {
	cfg Config
}

func NewJWTService(cfg Config) JWTService {
	return &jwtService{cfg: cfg}
}

func (s *jwtService) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	return s.generate(userID, role, s.cfg.Secret, s.cfg.Expiry)
}

func (s *jwtService) GenerateRefreshToken(userID uuid.UUID, role string) (string, error) {
	return s.generate(userID, role, s.cfg.RefreshSecret, s.cfg.RefreshExpiry)
}

func (s *jwtService) generate(userID uuid.UUID, role, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(token string) (*Claims, error) {
	return s.validate(token, s.cfg.Secret)
}

func (s *jwtService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.validate(token, s.cfg.RefreshSecret)
}

func (s *jwtService) validate(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Claims{UserID: userID, Role: role}, nil
}
