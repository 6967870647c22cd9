package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/cookie"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/token"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	claim := identity.Claim{ID: "id", Email: "jane@demo.com", Role: identity.RoleOfficer, Name: "Jane Doe"}

	now := time.Now()
	tokens, err := token.NewManager("success secret key", time.Hour, token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	tokenSuccess, err := tokens.Issue(claim)
	require.NoError(t, err)

	// токен, выпущенный два часа назад
	past, err := token.NewManager("success secret key", time.Hour, token.WithClock(func() time.Time { return now.Add(-2 * time.Hour) }))
	require.NoError(t, err)
	tokenExpired, err := past.Issue(claim)
	require.NoError(t, err)

	// токен, подписанный другим ключом
	other, err := token.NewManager("other secret key", time.Hour)
	require.NoError(t, err)
	tokenForeign, err := other.Issue(claim)
	require.NoError(t, err)

	testHandler := func(res http.ResponseWriter, req *http.Request) {
		// извлекаю утверждение из контекста
		got, ok := ClaimFromContext(req.Context())
		require.Equal(t, true, ok)
		assert.Equal(t, claim, got)
		res.WriteHeader(http.StatusOK)
	}

	type request struct {
		path      string
		token     string
		setCookie bool
	}
	type want struct {
		status      int
		location    string
		clearCookie bool
		body        string
	}
	tests := []struct {
		name string
		req  request
		want want
	}{
		{
			name: "page, successful authentication",
			req:  request{path: "/dashboard", token: tokenSuccess, setCookie: true},
			want: want{status: http.StatusOK},
		},
		{
			name: "page, cookie is not set",
			req:  request{path: "/dashboard"},
			want: want{status: http.StatusSeeOther, location: LoginPath},
		},
		{
			name: "page, token is expired",
			req:  request{path: "/dashboard", token: tokenExpired, setCookie: true},
			want: want{status: http.StatusSeeOther, location: LoginPath, clearCookie: true},
		},
		{
			name: "page, wrong signature",
			req:  request{path: "/dashboard", token: tokenForeign, setCookie: true},
			want: want{status: http.StatusSeeOther, location: LoginPath, clearCookie: true},
		},
		{
			name: "page, garbage token",
			req:  request{path: "/dashboard", token: "wrong token", setCookie: true},
			want: want{status: http.StatusSeeOther, location: LoginPath, clearCookie: true},
		},
		{
			name: "api, successful authentication",
			req:  request{path: "/api/me", token: tokenSuccess, setCookie: true},
			want: want{status: http.StatusOK},
		},
		{
			name: "api, cookie is not set",
			req:  request{path: "/api/me"},
			want: want{status: http.StatusUnauthorized, body: "Not authenticated"},
		},
		{
			name: "api, token is expired",
			req:  request{path: "/api/me", token: tokenExpired, setCookie: true},
			want: want{status: http.StatusUnauthorized, clearCookie: true, body: "Not authenticated"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.With(Middleware(tokens, PageResponder{}, cookie.Options{})).Get("/dashboard", testHandler)
			r.With(Middleware(tokens, APIResponder{}, cookie.Options{})).Get("/api/me", testHandler)

			request := httptest.NewRequest(http.MethodGet, tt.req.path, nil)
			if tt.req.setCookie {
				request.AddCookie(&http.Cookie{Name: cookie.Name, Value: tt.req.token})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, request)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.want.status, res.StatusCode)
			assert.Equal(t, tt.want.location, res.Header.Get("Location"))

			cleared := false
			for _, c := range res.Cookies() {
				if c.Name == cookie.Name && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.want.clearCookie, cleared)

			if tt.want.body != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
				assert.Equal(t, tt.want.body, body["error"])
				assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
			}
		})
	}
}

func TestResponders(t *testing.T) {
	{
		w := httptest.NewRecorder()
		PageResponder{}.Forbidden(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, AccessDeniedPath, w.Header().Get("Location"))
	}
	{
		w := httptest.NewRecorder()
		APIResponder{}.Forbidden(w, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())
	}
}

func TestClaimFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimFromContext(req.Context())
	assert.Equal(t, false, ok)

	claim := identity.Claim{ID: "id", Role: identity.RoleAdmin}
	got, ok := ClaimFromContext(WithClaim(req.Context(), claim))
	assert.Equal(t, true, ok)
	assert.Equal(t, claim, got)
}
