// verifier - пакет для проверки пары email и пароль.
package verifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/checker"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/hasher"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
)

// DefaultTimeout - время ожидания ответа хранилища по умолчанию.
const DefaultTimeout = 5 * time.Second

// dummyPassword - пароль, хэш которого сравнивается при отсутствии учетной записи.
const dummyPassword = "badgegate-dummy-password"

// Verifier - реализует identity.CredentialVerifier.
type Verifier struct {
	reader    identity.AccountReader
	timeout   time.Duration
	dummyHash string
}

// New - создает Verifier. Хэш-заглушка вычисляется с той же стоимостью bcrypt,
// что и хэши паролей пользователей, поэтому время ответа для неизвестного email
// не отличается от времени ответа при неверном пароле.
func New(reader identity.AccountReader, timeout time.Duration, cost int) (*Verifier, error) {
	dummy, err := hasher.HashPassword(dummyPassword, cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password error, %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Verifier{
		reader:    reader,
		timeout:   timeout,
		dummyHash: dummy,
	}, nil
}

// Verify - проверяет учетные данные и возвращает утверждение об identity пользователя.
// Отсутствие учетной записи, неверный пароль и отключенная учетная запись неразличимы для вызывающего:
// во всех случаях возвращается identity.ErrInvalidCredentials.
func (v *Verifier) Verify(ctx context.Context, email, password string) (identity.Claim, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return identity.Claim{}, fmt.Errorf("%w, email and password are required", identity.ErrInvalidInput)
	}
	email = checker.NormalizeEmail(email)

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	acc, ok, err := v.reader.AccountByEmail(ctx, email)
	if err != nil {
		return identity.Claim{}, identity.StorageFailure(err)
	}
	if !ok {
		hasher.Compare(v.dummyHash, password)
		return identity.Claim{}, identity.ErrInvalidCredentials
	}
	// пароль сравнивается и для отключенной учетной записи, чтобы время ответа не выдавало ее статус
	if !hasher.Compare(acc.Hash, password) || !acc.Active() {
		return identity.Claim{}, identity.ErrInvalidCredentials
	}
	return acc.Claim(), nil
}
