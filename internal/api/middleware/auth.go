// auth.go — JWT middleware аутентификации.
// Извлекает Bearer token из заголовка Authorization, проверяет подпись
// (HS256, общий секрет) и срок действия; роль помещается в контекст.
// Публичные endpoints (login, health, metrics) подключаются вне middleware.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/gofilereg/internal/api/errors"
	"github.com/bigkaa/gofilereg/internal/auth"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// contextKeyRole — ключ для роли из JWT в контексте запроса.
const contextKeyRole contextKey = "jwt_role"

// RoleFromContext возвращает роль из контекста запроса
// или пустую строку, если аутентификация не проводилась.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(contextKeyRole).(string)
	return role
}

// JWTAuth — middleware для проверки bearer-токенов.
type JWTAuth struct {
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewJWTAuth создаёт JWT middleware поверх указанного issuer'а.
// Issuer и verifier делят один секрет подписи.
func NewJWTAuth(issuer *auth.TokenIssuer, logger *slog.Logger) *JWTAuth {
	return &JWTAuth{
		issuer: issuer,
		logger: logger.With(slog.String("component", "jwt_auth")),
	}
}

// Middleware возвращает HTTP middleware аутентификации.
// Любой дефект токена (отсутствие, формат, подпись, exp) — 401,
// нижележащий обработчик не вызывается.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Требуется токен доступа")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				apierrors.Unauthorized(w, "Неверный формат Authorization: ожидается Bearer <token>")
				return
			}

			tokenString := parts[1]
			if tokenString == "" {
				apierrors.Unauthorized(w, "Пустой Bearer token")
				return
			}

			claims, err := j.issuer.Verify(tokenString)
			if err != nil {
				j.logger.Debug("JWT валидация не пройдена",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				apierrors.Unauthorized(w, "Недействительный токен")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
