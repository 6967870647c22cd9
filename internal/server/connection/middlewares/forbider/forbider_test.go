package forbider

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// withClaim - имитирует успешную аутентификацию.
func withClaim(claim *identity.Claim) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			if claim != nil {
				req = req.WithContext(auth.WithClaim(req.Context(), *claim))
			}
			h.ServeHTTP(res, req)
		})
	}
}

func TestRequireRole(t *testing.T) {
	officer := identity.Claim{ID: "1", Role: identity.RoleOfficer}
	admin := identity.Claim{ID: "2", Role: identity.RoleAdmin}

	type request struct {
		claim     *identity.Claim
		responder auth.Responder
	}
	type want struct {
		status   int
		location string
	}
	tests := []struct {
		name string
		req  request
		want want
	}{
		{
			name: "admin on page",
			req:  request{claim: &admin, responder: auth.PageResponder{}},
			want: want{status: http.StatusOK},
		},
		{
			name: "officer on page is redirected with notice, not to login",
			req:  request{claim: &officer, responder: auth.PageResponder{}},
			want: want{status: http.StatusSeeOther, location: "/dashboard?notice=access_denied"},
		},
		{
			name: "officer on api",
			req:  request{claim: &officer, responder: auth.APIResponder{}},
			want: want{status: http.StatusForbidden},
		},
		{
			name: "claim is missing",
			req:  request{responder: auth.APIResponder{}},
			want: want{status: http.StatusUnauthorized},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.With(withClaim(tt.req.claim), RequireRole(identity.RoleAdmin, tt.req.responder)).
				Get("/admin/users", func(res http.ResponseWriter, _ *http.Request) {
					res.WriteHeader(http.StatusOK)
				})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

			assert.Equal(t, tt.want.status, w.Code)
			assert.Equal(t, tt.want.location, w.Header().Get("Location"))
		})
	}
}
