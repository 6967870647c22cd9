// token - пакет менеджера сессионных токенов. Токен - подписанный HS256 JWT с ограниченным сроком действия,
// который несет утверждение об identity пользователя.
package token

import (
	"fmt"
	"time"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultLifetime - каноническое время действия токена.
const DefaultLifetime = time.Hour

// Claims - структура утверждений, которая включает стандартные утверждения
// и пользовательские: идентификатор, email, роль и отображаемое имя.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Manager - выпускает и проверяет сессионные токены. Не хранит состояния кроме секрета и часов,
// поэтому безопасен для конкурентного использования.
type Manager struct {
	secretKey []byte
	lifetime  time.Duration
	now       func() time.Time
}

// Option - функциональная опция менеджера токенов.
type Option func(*Manager)

// WithClock - подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager - создает менеджер токенов. Отсутствие секретного ключа является ошибкой конфигурации,
// которая должна останавливать запуск сервера.
func NewManager(secretKey string, lifetime time.Duration, opts ...Option) (*Manager, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("%w: secret key for signing tokens is not set", identity.ErrConfiguration)
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("%w: token lifetime must be positive, got %s", identity.ErrConfiguration, lifetime)
	}
	m := &Manager{
		secretKey: []byte(secretKey),
		lifetime:  lifetime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Lifetime - время действия выпускаемых токенов.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Issue - создает подписанный токен для утверждения, полученного после проверки учетных данных.
func (m *Manager) Issue(claim identity.Claim) (string, error) {
	now := m.now()

	// создаю токен с алгоритмом подписи HS256 и утверждениями - Claims
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
		UserID: claim.ID,
		Email:  claim.Email,
		Role:   claim.Role,
		Name:   claim.Name,
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to signed JWT to string, %w", err)
	}
	return tokenString, nil
}

// Verify - проверяет подпись и срок действия токена и возвращает встроенное утверждение.
// Токен недействителен начиная с момента истечения срока. Хранилище не используется.
func (m *Manager) Verify(tokenStr string) (identity.Claim, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return identity.Claim{}, fmt.Errorf("%w, %w", identity.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == "" {
		return identity.Claim{}, identity.ErrTokenInvalid
	}

	return identity.Claim{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
		Name:  claims.Name,
	}, nil
}
