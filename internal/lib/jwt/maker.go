// Package jwt реализует выпуск и проверку JWT токенов сессии.
// Идентификатор пользователя хранится в claim sub и должен быть UUID.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidSubject возвращается, если sub токена не является UUID.
var ErrInvalidSubject = errors.New("token subject is not a valid user id")

// Claims описывает данные сессии, хранящиеся в JWT.
type Claims struct {
	Role string `json:"role"` // Роль пользователя, admin или user
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из claim sub.
func (c *Claims) UserID() string {
	return c.Subject
}

// Maker выпускает и проверяет токены, подписанные HS256.
type Maker struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт Maker на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *Maker {
	return &Maker{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// GenerateToken создаёт токен для пользователя userID с ролью role.
func (m *Maker) GenerateToken(userID, role string) (string, error) {
	const op = "jwt.GenerateToken"
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidSubject)
	}
	now := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
func (m *Maker) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if _, err = uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSubject)
	}
	return claims, nil
}
