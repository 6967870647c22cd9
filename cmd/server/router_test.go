package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/cookie"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/token"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/accounts"
	"github.com/abezemskiy/badgegate/internal/server/identity/verifier"
	"github.com/abezemskiy/badgegate/internal/server/storage/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testClock - управляемые часы менеджера токенов.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testServer struct {
	*httptest.Server
	clock   *testClock
	service *accounts.Service
}

func newTestServer(t *testing.T) *testServer {
	stor := inmemory.NewStore()
	clock := &testClock{now: time.Now()}

	tokens, err := token.NewManager("test secret", time.Hour, token.WithClock(clock.Now))
	require.NoError(t, err)
	verify, err := verifier.New(stor, time.Second, bcrypt.MinCost)
	require.NoError(t, err)
	service := accounts.NewService(stor, accounts.Options{Cost: bcrypt.MinCost})

	srv := httptest.NewServer(Router(dependencies{
		verifier: verify,
		accounts: service,
		tokens:   tokens,
	}))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, clock: clock, service: service}
}

// newClient - клиент с хранилищем cookie, который не следует перенаправлениям.
func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postJSON(t *testing.T, client *http.Client, url string, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	res, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return res
}

func get(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	res, err := client.Get(url)
	require.NoError(t, err)
	return res
}

func errorMessage(t *testing.T, res *http.Response) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body["error"]
}

func TestSignUpAndLogin(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{
		Name: "Jane Doe", Email: "Jane@Demo.com", Password: "Str0ngPass!",
	})
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		User identity.PublicAccount `json:"user"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, "jane@demo.com", created.User.Email)

	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	defer login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	// cookie с токеном открывает доступ к панели
	dashboard := get(t, client, srv.URL+"/dashboard")
	defer dashboard.Body.Close()
	assert.Equal(t, http.StatusOK, dashboard.StatusCode)

	me := get(t, client, srv.URL+"/api/auth/me")
	defer me.Body.Close()
	require.Equal(t, http.StatusOK, me.StatusCode)
	var claim identity.Claim
	require.NoError(t, json.NewDecoder(me.Body).Decode(&claim))
	assert.Equal(t, "jane@demo.com", claim.Email)
	assert.Equal(t, identity.RoleOfficer, claim.Role)
}

func TestDuplicateSignUp(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	first := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Other", Email: "JANE@demo.com", Password: "Other1!"})
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	assert.Equal(t, "Email already in use", errorMessage(t, second))

	// исходная учетная запись не изменилась
	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	login.Body.Close()
	assert.Equal(t, http.StatusOK, login.StatusCode)

	list, err := srv.service.List(context.Background(), identity.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Name)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	res.Body.Close()

	wrongPassword := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "wrong"})
	defer wrongPassword.Body.Close()
	unknownEmail := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "ghost@demo.com", Password: "wrong"})
	defer unknownEmail.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)
	assert.Equal(t, errorMessage(t, wrongPassword), errorMessage(t, unknownEmail))
}

func TestSignUpRejectsOversizedInput(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	tests := []struct {
		name    string
		data    identity.SignUpData
		message string
	}{
		{
			name:    "password longer than bcrypt accepts",
			data:    identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: strings.Repeat("p", 73)},
			message: "Password must not exceed 72 bytes",
		},
		{
			name:    "name wider than column",
			data:    identity.SignUpData{Name: strings.Repeat("J", 300), Email: "jane@demo.com", Password: "Str0ngPass!"},
			message: "Name must not exceed 256 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postJSON(t, client, srv.URL+"/api/auth/signup", tt.data)
			defer res.Body.Close()
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			msg := errorMessage(t, res)
			assert.Equal(t, tt.message, msg)
			assert.NotContains(t, msg, "bcrypt")
		})
	}

	list, err := srv.service.List(context.Background(), identity.AccountFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	srv := newTestServer(t)
	admin := newClient(t)
	officer := newClient(t)

	require.NoError(t, srv.service.EnsureAdmin(context.Background(),
		identity.SignUpData{Name: "Chief", Email: "admin@demo.com", Password: "Adm1nPass!"}))
	jane, err := srv.service.SignUp(context.Background(), identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	require.NoError(t, err)

	login := postJSON(t, admin, srv.URL+"/api/auth/login", identity.Credentials{Email: "admin@demo.com", Password: "Adm1nPass!"})
	login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	setStatus := func(status string) identity.PublicAccount {
		body, err := json.Marshal(identity.AccountUpdate{Name: "Jane Doe", Profile: identity.Profile{Role: identity.RoleOfficer, Status: status}})
		require.NoError(t, err)
		req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/admin/users/"+jane.ID, bytes.NewReader(body))
		require.NoError(t, err)
		res, err := admin.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		var acc identity.PublicAccount
		require.NoError(t, json.NewDecoder(res.Body).Decode(&acc))
		return acc
	}

	assert.Equal(t, identity.StatusInactive, setStatus(identity.StatusInactive).Status)

	// отключенная учетная запись получает тот же ответ, что и неверный пароль
	disabled := postJSON(t, officer, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	defer disabled.Body.Close()
	wrong := postJSON(t, officer, srv.URL+"/api/auth/login", identity.Credentials{Email: "admin@demo.com", Password: "wrong"})
	defer wrong.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, disabled.StatusCode)
	assert.Equal(t, errorMessage(t, wrong), errorMessage(t, disabled))

	assert.Equal(t, identity.StatusActive, setStatus(identity.StatusActive).Status)
	enabled := postJSON(t, officer, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	enabled.Body.Close()
	assert.Equal(t, http.StatusOK, enabled.StatusCode)
}

func TestOfficerCannotOpenAdminPages(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	res.Body.Close()
	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	// страница: перенаправление на панель с уведомлением, а не на страницу входа
	page := get(t, client, srv.URL+"/admin/users")
	defer page.Body.Close()
	assert.Equal(t, http.StatusSeeOther, page.StatusCode)
	assert.Equal(t, "/dashboard?notice=access_denied", page.Header.Get("Location"))

	// панель показывает уведомление
	dashboard := get(t, client, srv.URL+"/dashboard?notice=access_denied")
	defer dashboard.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(dashboard.Body).Decode(&body))
	assert.Equal(t, "You don't have permission to access this page.", body["notice"])

	// API: 403
	api := get(t, client, srv.URL+"/api/admin/users")
	defer api.Body.Close()
	assert.Equal(t, http.StatusForbidden, api.StatusCode)
}

func TestAdminManagesUsers(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	require.NoError(t, srv.service.EnsureAdmin(context.Background(),
		identity.SignUpData{Name: "Chief", Email: "admin@demo.com", Password: "Adm1nPass!"}))
	officer, err := srv.service.SignUp(context.Background(), identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	require.NoError(t, err)

	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "admin@demo.com", Password: "Adm1nPass!"})
	login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	page := get(t, client, srv.URL+"/admin/users")
	page.Body.Close()
	assert.Equal(t, http.StatusOK, page.StatusCode)

	list := get(t, client, srv.URL+"/api/admin/users?role=officer")
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)
	var users []identity.PublicAccount
	require.NoError(t, json.NewDecoder(list.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, officer.ID, users[0].ID)

	// повышение роли
	body, err := json.Marshal(identity.AccountUpdate{Name: "Jane Doe", Profile: identity.Profile{Role: identity.RoleAdmin}})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/admin/users/"+officer.ID, bytes.NewReader(body))
	require.NoError(t, err)
	patch, err := client.Do(req)
	require.NoError(t, err)
	patch.Body.Close()
	assert.Equal(t, http.StatusOK, patch.StatusCode)

	// удаление
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/users/"+officer.ID, nil)
	require.NoError(t, err)
	del, err := client.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/users/"+officer.ID, nil)
	require.NoError(t, err)
	del, err = client.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNotFound, del.StatusCode)
}

func TestExpiredTokenRedirectsToLogin(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	res.Body.Close()
	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	login.Body.Close()
	require.Equal(t, http.StatusOK, login.StatusCode)

	tokenValue, err := cookie.GetTokenFromResponse(login)
	require.NoError(t, err)

	// срок действия токена истек на 61-й минуте
	srv.clock.Advance(61 * time.Minute)

	// хранилище cookie клиента живет по реальным часам, поэтому токен отправляется вручную
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: tokenValue})
	dashboard, err := newClient(t).Do(req)
	require.NoError(t, err)
	defer dashboard.Body.Close()

	assert.Equal(t, http.StatusSeeOther, dashboard.StatusCode)
	assert.Equal(t, "/login", dashboard.Header.Get("Location"))

	// просроченная cookie удаляется
	cleared := false
	for _, c := range dashboard.Cookies() {
		if c.Name == cookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.Equal(t, true, cleared)
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res := postJSON(t, client, srv.URL+"/api/auth/signup", identity.SignUpData{Name: "Jane Doe", Email: "jane@demo.com", Password: "Str0ngPass!"})
	res.Body.Close()
	login := postJSON(t, client, srv.URL+"/api/auth/login", identity.Credentials{Email: "jane@demo.com", Password: "Str0ngPass!"})
	login.Body.Close()

	logout, err := client.Post(srv.URL+"/api/auth/logout", "application/json", nil)
	require.NoError(t, err)
	logout.Body.Close()
	assert.Equal(t, http.StatusOK, logout.StatusCode)

	// cookie удалена из хранилища клиента, панель снова недоступна
	dashboard := get(t, client, srv.URL+"/dashboard")
	defer dashboard.Body.Close()
	assert.Equal(t, http.StatusSeeOther, dashboard.StatusCode)
	assert.Equal(t, "/login", dashboard.Header.Get("Location"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := get(t, newClient(t), srv.URL+"/metrics")
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
