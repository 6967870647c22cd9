// forbider - пакет с middleware авторизации по роли пользователя.
package forbider

import (
	"net/http"

	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/metrics"
	"go.uber.org/zap"
)

// RequireRole - middleware, которая запрещает действие, если роль из токена не совпадает с требуемой.
// Должна подключаться после auth.Middleware. Аутентифицированный пользователь без нужной роли
// получает отказ в доступе, а не перенаправление на страницу входа.
func RequireRole(role string, responder auth.Responder) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			// Получаю утверждение пользователя из контекста
			claim, ok := auth.ClaimFromContext(req.Context())
			if !ok {
				logger.ServerLog.Error("user claim not found in context", zap.String("address", req.URL.String()))
				responder.Unauthenticated(res, req)
				return
			}

			// Запрещаю доступ, если роль не совпадает
			if claim.Role != role {
				logger.ServerLog.Info("access denied", zap.String("address", req.URL.String()),
					zap.String("user id", claim.ID), zap.String("role", claim.Role), zap.String("required role", role))
				metrics.Gate(metrics.DecisionForbidden)
				responder.Forbidden(res, req)
				return
			}
			h.ServeHTTP(res, req)
		})
	}
}
