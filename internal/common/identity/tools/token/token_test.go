package token

import (
	"strings"
	"testing"
	"time"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock - управляемые часы для проверки сроков действия токена.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestManager(t *testing.T, secret string, lifetime time.Duration) (*Manager, *testClock) {
	clock := &testClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	m, err := NewManager(secret, lifetime, WithClock(clock.Now))
	require.NoError(t, err)
	return m, clock
}

func TestNewManager(t *testing.T) {
	{
		// секретный ключ не задан
		_, err := NewManager("", time.Hour)
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrConfiguration)
	}
	{
		// некорректное время жизни
		_, err := NewManager("key", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrConfiguration)
	}
	{
		m, err := NewManager("key", DefaultLifetime)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, m.Lifetime())
	}
}

func TestIssueVerify(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)

	claim := identity.Claim{
		ID:    "41614361346161346",
		Email: "jane@demo.com",
		Role:  identity.RoleAdmin,
		Name:  "Jane Doe",
	}
	tokenStr, err := m.Issue(claim)
	require.NoError(t, err)

	got, err := m.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, claim, got)

	// повторная проверка дает тот же результат
	again, err := m.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	// токен другого пользователя
	claim2 := identity.Claim{ID: "527274747542747", Email: "john@demo.com", Role: identity.RoleOfficer}
	tokenStr2, err := m.Issue(claim2)
	require.NoError(t, err)
	got2, err := m.Verify(tokenStr2)
	require.NoError(t, err)
	assert.Equal(t, claim2, got2)
	assert.NotEqual(t, got.ID, got2.ID)
}

func TestVerifyWrongSecret(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)
	tokenStr, err := m.Issue(identity.Claim{ID: "id", Email: "a@b.c", Role: identity.RoleOfficer})
	require.NoError(t, err)

	// при попытке проверить токен устанавливаю неверный секретный ключ
	other, _ := newTestManager(t, "wrong key", time.Hour)
	_, err = other.Verify(tokenStr)
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	m, clock := newTestManager(t, "test key", time.Hour)
	issuedAt := clock.now

	tokenStr, err := m.Issue(identity.Claim{ID: "id", Email: "a@b.c", Role: identity.RoleOfficer})
	require.NoError(t, err)

	// за секунду до истечения срока токен действителен
	clock.now = issuedAt.Add(time.Hour - time.Second)
	_, err = m.Verify(tokenStr)
	require.NoError(t, err)

	// в момент истечения срока токен недействителен
	clock.now = issuedAt.Add(time.Hour)
	_, err = m.Verify(tokenStr)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)

	// через 61 минуту токен недействителен
	clock.now = issuedAt.Add(61 * time.Minute)
	_, err = m.Verify(tokenStr)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage", token: "wrong token"},
		{name: "three garbage segments", token: "a.b.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, identity.ErrTokenInvalid)
		})
	}
}

func TestVerifyTampered(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)
	tokenStr, err := m.Issue(identity.Claim{ID: "id", Email: "a@b.c", Role: identity.RoleOfficer})
	require.NoError(t, err)

	// подменяю полезную нагрузку, подпись остается прежней
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "id",
		Role:             identity.RoleAdmin,
	})
	forgedStr, err := forged.SignedString([]byte("attacker key"))
	require.NoError(t, err)

	parts := strings.Split(tokenStr, ".")
	forgedParts := strings.Split(forgedStr, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "id",
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(tokenStr)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}

func TestVerifyRequiresExpiration(t *testing.T) {
	m, _ := newTestManager(t, "test key", time.Hour)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "id"})
	tokenStr, err := noExp.SignedString([]byte("test key"))
	require.NoError(t, err)

	_, err = m.Verify(tokenStr)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}
