package main

import (
	"net/http"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/cookie"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/connection/middlewares/forbider"
	"github.com/abezemskiy/badgegate/internal/server/handlers"
	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/metrics"
	"github.com/go-chi/chi/v5"
)

// accountService - регистрация и администрирование учетных записей.
type accountService interface {
	identity.Registrar
	identity.Administrator
}

// tokenManager - выпуск и проверка сессионных токенов.
type tokenManager interface {
	handlers.TokenIssuer
	auth.TokenVerifier
}

// dependencies - зависимости обработчиков запросов.
type dependencies struct {
	verifier identity.CredentialVerifier
	accounts accountService
	tokens   tokenManager
	secure   bool
}

// Router - дирижирует обработку http запросов к серверу.
// Страницы и API защищены одной и той же проверкой токена, отличается только реакция на отказ.
func Router(deps dependencies) chi.Router {
	session := handlers.Session{Tokens: deps.tokens, Secure: deps.secure}
	cookieOpts := cookie.Options{Secure: deps.secure}

	pageGate := auth.Middleware(deps.tokens, auth.PageResponder{}, cookieOpts)
	apiGate := auth.Middleware(deps.tokens, auth.APIResponder{}, cookieOpts)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger, metrics.Instrument)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.SignUpHandler(deps.accounts))
			r.Post("/login", handlers.LoginHandler(deps.verifier, session))
			r.Post("/logout", handlers.LogoutHandler(session))
			r.With(apiGate).Get("/me", handlers.MeHandler())
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(apiGate, forbider.RequireRole(identity.RoleAdmin, auth.APIResponder{}))
			r.Get("/", handlers.ListUsersHandler(deps.accounts))
			r.Post("/", handlers.CreateUserHandler(deps.accounts))
			r.Patch("/{id}", handlers.UpdateUserHandler(deps.accounts))
			r.Delete("/{id}", handlers.DeleteUserHandler(deps.accounts))
		})
	})

	r.Get("/login", handlers.LoginPageHandler())
	r.Get("/signup", handlers.SignUpPageHandler())
	r.With(pageGate).Get("/dashboard", handlers.DashboardHandler())
	r.With(pageGate, forbider.RequireRole(identity.RoleAdmin, auth.PageResponder{})).
		Get("/admin/users", handlers.AdminUsersPageHandler())

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Определяем маршрут по умолчанию для некорректных запросов
	r.NotFound(handlers.HandleOtherRequest())

	return r
}
