// auth.go — обработчик POST /api/login.
// Единственный публичный мутирующий endpoint: пароль администратора
// обменивается на bearer-токен с 24-часовым сроком действия.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/bigkaa/gofilereg/internal/api/errors"
	"github.com/bigkaa/gofilereg/internal/service"
)

// loginRequest — тело запроса POST /api/login.
type loginRequest struct {
	Password string `json:"password"`
}

// loginResponse — тело ответа при успешном входе.
type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login — POST /api/login.
// 400 — пароль отсутствует, 401 — пароль неверен,
// 500 — пароль администратора не настроен.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, "Пароль обязателен")
		case errors.Is(err, service.ErrInvalidPassword):
			apierrors.Unauthorized(w, "Неверный пароль")
		case errors.Is(err, service.ErrNotConfigured):
			h.logger.Error("Пароль администратора не настроен")
			apierrors.InternalError(w, "Пароль администратора не настроен")
		default:
			h.logger.Error("Ошибка входа", "error", err)
			apierrors.InternalError(w, "Ошибка входа")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:   token,
		Message: "Вход выполнен",
	})
}
