package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sportsfest/sportsday-live/utils"
)

const tokenTTL = 24 * time.Hour

// AuthService выдаёт токены администраторам. Это единственный источник
// способности CanEdit: зрители токена не имеют, их Actor пустой.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
	ActorFromToken(tokenString string) (Actor, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
}

func NewAuthService(adminEmail, adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         []byte(jwtSecret),
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	if input.Email != s.adminEmail || !utils.CheckPasswordHash(input.Password, s.adminPasswordHash) {
		return "", ErrAuthInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  input.Email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ActorFromToken проверяет токен и строит Actor. Невалидный или просроченный
// токен даёт ошибку; способность CanEdit выдаётся только роли admin.
func (s *authService) ActorFromToken(tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Actor{}, fmt.Errorf("%w: invalid token", ErrForbiddenOperation)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, fmt.Errorf("%w: malformed claims", ErrForbiddenOperation)
	}
	name, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	return Actor{Name: name, CanEdit: role == "admin"}, nil
}
