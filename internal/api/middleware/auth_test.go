package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigkaa/gofilereg/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// okHandler запоминает роль из контекста и возвращает 200.
func okHandler(gotRole *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_ValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	mw := NewJWTAuth(issuer, testLogger())

	token, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue() вернул ошибку: %v", err)
	}

	var gotRole string
	handler := mw.Middleware()(okHandler(&gotRole))

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d, ожидается 200", rec.Code)
	}
	if gotRole != auth.RoleAdmin {
		t.Errorf("роль в контексте = %q, ожидается admin", gotRole)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	expiredIssuer := auth.NewTokenIssuer(testSecret, -time.Hour)
	foreignIssuer := auth.NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
	mw := NewJWTAuth(issuer, testLogger())

	expired, err := expiredIssuer.Issue()
	if err != nil {
		t.Fatalf("Issue() вернул ошибку: %v", err)
	}
	foreign, err := foreignIssuer.Issue()
	if err != nil {
		t.Fatalf("Issue() вернул ошибку: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"без заголовка", ""},
		{"не Bearer", "Basic abc123"},
		{"пустой токен", "Bearer "},
		{"мусор вместо токена", "Bearer не-jwt"},
		{"просроченный токен", "Bearer " + expired},
		{"чужая подпись", "Bearer " + foreign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotRole string
			handler := mw.Middleware()(okHandler(&gotRole))

			req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("статус = %d, ожидается 401", rec.Code)
			}
			if gotRole != "" {
				t.Error("обработчик не должен вызываться при отказе")
			}

			// Тело — единый формат {"error": "..."}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("тело ответа не JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("в теле ответа нет поля error")
			}
		})
	}
}
