// guard - обработка ошибок сессии на стороне терминального клиента.
package guard

import (
	"errors"

	clientIdent "github.com/abezemskiy/badgegate/internal/client/identity"
	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/printer"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"go.uber.org/zap"
)

// SessionExpired - сообщение при отклонении cookie сервером.
const SessionExpired = "session expired, please log in again"

// Handle - показывает пользователю ошибку запроса к защищенному api.
// Недействительная сессия очищает сведения о пользователе и возвращает на страницу входа,
// недостаточная роль возвращает на главную страницу с уведомлением.
func Handle(app *app.App, info clientIdent.IUserInfoStorage, err error) {
	switch {
	case errors.Is(err, identity.ErrTokenInvalid):
		logger.ClientLog.Info("session is not valid", zap.String("error", err.Error()))
		info.Clear()
		app.SwitchTo(tui.Login)
		printer.Error(app, SessionExpired)
	case errors.Is(err, identity.ErrForbidden):
		logger.ClientLog.Info("access denied", zap.String("error", err.Error()))
		app.SwitchTo(tui.Dashboard)
		printer.Error(app, tui.AccessDeniedNotice)
	default:
		logger.ClientLog.Error("request failed", zap.String("error", err.Error()))
		printer.Error(app, err.Error())
	}
}
