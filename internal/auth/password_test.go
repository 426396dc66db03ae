package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("afropop123")
	if err != nil {
		t.Fatalf("HashPassword() вернул ошибку: %v", err)
	}

	if hash == "afropop123" {
		t.Error("хэш не должен совпадать с паролем")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("хэш %q не похож на bcrypt", hash)
	}

	if !VerifyPassword("afropop123", hash) {
		t.Error("VerifyPassword() должен принять правильный пароль")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() должен отклонить неправильный пароль")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("abc")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("HashPassword(короткий) = %v, ожидается ErrPasswordTooShort", err)
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	if VerifyPassword("afropop123", "не-bcrypt-хэш") {
		t.Error("VerifyPassword() должен отклонить некорректный хэш")
	}
}
