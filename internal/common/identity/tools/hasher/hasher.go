// hasher - пакет со вспомогательными функция для хэширования паролей.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost - стоимость bcrypt по умолчанию.
const DefaultCost = 10

// HashPassword - вычисляет соленый bcrypt хэш пароля. Соль и стоимость сохраняются внутри хэша.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password, %w", err)
	}
	return string(hash), nil
}

// Compare - пересчитывает хэш переданного пароля с параметрами сохраненного хэша и сравнивает
// их за постоянное время.
func Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
