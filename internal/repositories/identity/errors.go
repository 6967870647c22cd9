package identity

import (
	"errors"
	"fmt"
)

// Типизированные исходы операций аутентификации. Проверяются через errors.Is,
// отображение в http статусы выполняет внешний обработчик запроса.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("email already in use")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrForbidden          = errors.New("access denied")
	ErrConfiguration      = errors.New("configuration error")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// StorageFailure - приводит ошибку хранилища к ErrStorageUnavailable, сохраняя исходную причину.
func StorageFailure(err error) error {
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w, %w", ErrStorageUnavailable, err)
}
