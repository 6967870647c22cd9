// auth - пакет, который реализует middleware для аутентификации пользователя по cookie с токеном.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/cookie"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/metrics"
	"go.uber.org/zap"
)

type contextKey string

// ClaimKey - ключ для установки утверждения об identity пользователя в контекст.
const ClaimKey = contextKey("claim")

const (
	LoginPath          = "/login"                          // страница входа
	AccessDeniedPath   = "/dashboard?notice=access_denied" // безопасная страница для аутентифицированного пользователя
	NoticeAccessDenied = "access_denied"                   // значение параметра notice при отказе в доступе
)

// TokenVerifier - проверка сессионного токена.
type TokenVerifier interface {
	Verify(token string) (identity.Claim, error)
}

// Responder - реакция на отказ в доступе. Страницы и API отвечают по-разному.
type Responder interface {
	Unauthenticated(res http.ResponseWriter, req *http.Request)
	Forbidden(res http.ResponseWriter, req *http.Request)
}

// PageResponder - перенаправляет пользователя: на страницу входа, если он не аутентифицирован,
// и на панель с уведомлением, если у него нет нужной роли.
type PageResponder struct{}

// Unauthenticated - перенаправление на страницу входа.
func (PageResponder) Unauthenticated(res http.ResponseWriter, req *http.Request) {
	http.Redirect(res, req, LoginPath, http.StatusSeeOther)
}

// Forbidden - перенаправление на панель с уведомлением об отказе в доступе.
func (PageResponder) Forbidden(res http.ResponseWriter, req *http.Request) {
	http.Redirect(res, req, AccessDeniedPath, http.StatusSeeOther)
}

// APIResponder - отвечает статусами 401 и 403 с телом в формате JSON.
type APIResponder struct{}

// Unauthenticated - ответ 401.
func (APIResponder) Unauthenticated(res http.ResponseWriter, _ *http.Request) {
	WriteJSONError(res, http.StatusUnauthorized, "Not authenticated")
}

// Forbidden - ответ 403.
func (APIResponder) Forbidden(res http.ResponseWriter, _ *http.Request) {
	WriteJSONError(res, http.StatusForbidden, "Forbidden")
}

// WriteJSONError - записывает ошибку в виде {"error": message}.
func WriteJSONError(res http.ResponseWriter, status int, message string) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(map[string]string{"error": message}); err != nil {
		logger.ServerLog.Error("failed to encode error response", zap.String("error", err.Error()))
	}
}

// Middleware - проверяет токен из cookie входящих запросов к серверу.
// Позволит установить доступ к ресурсам только для аутентифицированных пользователей.
// Утверждение об identity из токена устанавливается в контекст запроса.
// Невалидная cookie удаляется у клиента.
func Middleware(tokens TokenVerifier, responder Responder, opts cookie.Options) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			tokenStr, err := cookie.GetToken(req)
			if err != nil {
				logger.ServerLog.Debug("token cookie is not set", zap.String("address", req.URL.String()))
				metrics.Gate(metrics.DecisionNoToken)
				responder.Unauthenticated(res, req)
				return
			}

			claim, err := tokens.Verify(tokenStr)
			if err != nil {
				logger.ServerLog.Info("failed to verify token", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
				metrics.Gate(metrics.DecisionInvalid)
				cookie.Clear(res, opts)
				responder.Unauthenticated(res, req)
				return
			}

			metrics.Gate(metrics.DecisionAllow)
			// вызываю основной обработчик
			h.ServeHTTP(res, req.WithContext(WithClaim(req.Context(), claim)))
		})
	}
}

// WithClaim - возвращает контекст с утверждением об identity пользователя.
func WithClaim(ctx context.Context, claim identity.Claim) context.Context {
	return context.WithValue(ctx, ClaimKey, claim)
}

// ClaimFromContext - извлекает утверждение об identity пользователя из контекста.
func ClaimFromContext(ctx context.Context) (identity.Claim, bool) {
	claim, ok := ctx.Value(ClaimKey).(identity.Claim)
	return claim, ok
}
