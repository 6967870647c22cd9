// id - пакет для генерации и проверки идентификаторов учетных записей.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID - генерирует идентификатор учетной записи в виде случайного UUID.
func GenerateID() (string, error) {
	accountID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate account id, %w", err)
	}
	return accountID.String(), nil
}

// Valid - проверяет, что строка является корректным идентификатором учетной записи.
func Valid(accountID string) bool {
	_, err := uuid.Parse(accountID)
	return err == nil
}
