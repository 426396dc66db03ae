// Пакет auth — пароли (bcrypt) и токены доступа (HS256 JWT).
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost — cost-фактор bcrypt. 12 раундов — достаточно
// против offline-перебора при единственном админском пароле.
const passwordCost = 12

// MinPasswordLength — минимальная длина пароля администратора.
const MinPasswordLength = 6

// ErrPasswordTooShort — пароль короче MinPasswordLength.
var ErrPasswordTooShort = fmt.Errorf("пароль короче %d символов", MinPasswordLength)

// HashPassword хэширует пароль через bcrypt.
// Возвращает ErrPasswordTooShort для паролей короче минимальной длины.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хэшем через bcrypt.
// Сравнение выполняется самим алгоритмом, сырые строки не сравниваются.
func VerifyPassword(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
