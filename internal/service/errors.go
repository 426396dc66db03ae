// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrDataUnavailable — нарушение целостности: storage_type не
	// соответствует сохранённому содержимому (нет payload или URL).
	ErrDataUnavailable = errors.New("данные файла недоступны")
	// ErrPayloadTooLarge — файл превышает потолок прямого хранения.
	ErrPayloadTooLarge = errors.New("файл превышает допустимый размер")
	// ErrInvalidPassword — пароль не подошёл.
	ErrInvalidPassword = errors.New("неверный пароль")
	// ErrNotConfigured — пароль администратора не настроен.
	ErrNotConfigured = errors.New("пароль администратора не настроен")
)
