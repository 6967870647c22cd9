package handlers

import (
	"net/http"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
)

// AccessDeniedNotice - уведомление, которое показывается на панели после отказа в доступе.
const AccessDeniedNotice = "You don't have permission to access this page."

// Page - описание страницы. Разметка не формируется сервером, клиент строит интерфейс по описанию.
type Page struct {
	Name   string            `json:"page"`
	Title  string            `json:"title"`
	User   *identity.Claim   `json:"user,omitempty"`
	Notice string            `json:"notice,omitempty"`
	Form   *Form             `json:"form,omitempty"`
	Links  map[string]string `json:"links,omitempty"`
}

// Form - описание формы страницы.
type Form struct {
	Action string   `json:"action"`
	Method string   `json:"method"`
	Fields []string `json:"fields"`
}

// LoginPageHandler - страница входа.
func LoginPageHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		writeJSON(res, http.StatusOK, Page{
			Name:  "login",
			Title: "Sign in",
			Form:  &Form{Action: "/api/auth/login", Method: http.MethodPost, Fields: []string{"email", "password"}},
			Links: map[string]string{"signup": "/signup"},
		})
	}
}

// SignUpPageHandler - страница регистрации.
func SignUpPageHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		writeJSON(res, http.StatusOK, Page{
			Name:  "signup",
			Title: "Create account",
			Form:  &Form{Action: "/api/auth/signup", Method: http.MethodPost, Fields: []string{"name", "email", "password"}},
			Links: map[string]string{"login": "/login"},
		})
	}
}

// DashboardHandler - панель аутентифицированного пользователя.
// Параметр notice=access_denied добавляет уведомление об отказе в доступе.
func DashboardHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		claim, ok := auth.ClaimFromContext(req.Context())
		if !ok {
			auth.PageResponder{}.Unauthenticated(res, req)
			return
		}

		page := Page{
			Name:  "dashboard",
			Title: "Dashboard",
			User:  &claim,
			Links: map[string]string{"logout": "/api/auth/logout"},
		}
		if req.URL.Query().Get("notice") == auth.NoticeAccessDenied {
			page.Notice = AccessDeniedNotice
		}
		if claim.Role == identity.RoleAdmin {
			page.Links["users"] = "/admin/users"
		}
		writeJSON(res, http.StatusOK, page)
	}
}

// AdminUsersPageHandler - страница управления учетными записями.
func AdminUsersPageHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		claim, _ := auth.ClaimFromContext(req.Context())
		writeJSON(res, http.StatusOK, Page{
			Name:  "admin_users",
			Title: "User management",
			User:  &claim,
			Links: map[string]string{
				"users":     "/api/admin/users",
				"dashboard": "/dashboard",
			},
		})
	}
}
