// token.go — выдача и проверка bearer-токенов (HS256 JWT).
// Токен stateless: подпись и exp — единственные механизмы инвалидации,
// списка отзыва нет, logout — отбрасывание токена на клиенте.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin — единственная роль системы.
const RoleAdmin = "admin"

// ErrInvalidToken — токен не прошёл проверку (подпись, exp, формат).
var ErrInvalidToken = errors.New("недействительный токен")

// Claims — полезная нагрузка токена: роль плюс стандартные claims.
type Claims struct {
	// Role — роль субъекта; всегда "admin"
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer выдаёт и проверяет подписанные токены.
// Секрет подписи общий для выдачи и проверки (process-wide конфигурация).
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer создаёт issuer с указанным секретом и временем жизни токенов.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue выдаёт подписанный токен с ролью admin.
// Срок действия — ttl от момента выдачи.
func (t *TokenIssuer) Issue() (string, error) {
	now := time.Now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
// Любой дефект (формат, подпись, exp, роль) — ErrInvalidToken,
// неконтролируемых ошибок наружу не выходит.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
