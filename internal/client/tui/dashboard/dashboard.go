package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
	clientIdent "github.com/abezemskiy/badgegate/internal/client/identity"
	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/guard"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/printer"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/go-resty/resty/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Надписи кнопок главной страницы.
const (
	UsersButton   = "Пользователи"
	RefreshButton = "Обновить"
	LogoutButton  = "Выйти"
	QuitButton    = "Выход"
)

// Page - главная страница вошедшего пользователя.
// openUsers открывает раздел управления пользователями, роль проверяет сервер.
func Page(ctx context.Context, client *resty.Client, info clientIdent.IUserInfoStorage,
	openUsers func(app *app.App)) func(app *app.App) tview.Primitive {

	return func(app *app.App) tview.Primitive {
		view := tview.NewTextView().SetDynamicColors(false)
		view.SetBorder(true).SetTitle("Главная")

		// содержимое зависит от текущей сессии и обновляется при каждом показе страницы
		app.OnShow(tui.Dashboard, func() {
			view.SetText(describe(info))
		})

		buttons := tview.NewForm().
			AddButton(UsersButton, func() { openUsers(app) }).
			AddButton(RefreshButton, func() {
				claim, err := handlers.Me(ctx, client)
				if err != nil {
					guard.Handle(app, info, err)
					return
				}
				info.Set(claim)
				view.SetText(describe(info))
			}).
			AddButton(LogoutButton, func() { logout(ctx, app, client, info) }).
			AddButton(QuitButton, func() { app.Stop() })

		return tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(view, 0, 1, false).
			AddItem(buttons, 3, 1, true)
	}
}

// describe - текст главной страницы для текущего пользователя.
func describe(info clientIdent.IUserInfoStorage) string {
	claim, ok := info.Get()
	if !ok {
		return "Вход не выполнен"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Добро пожаловать, %s\n\n", claim.Name)
	fmt.Fprintf(&b, "Email: %s\n", claim.Email)
	fmt.Fprintf(&b, "Роль:  %s\n", claim.Role)
	if claim.Role == identity.RoleAdmin {
		b.WriteString("\nДоступно управление пользователями.")
	}
	return b.String()
}

// logout - выход из системы. Сведения о пользователе удаляются даже если сервер недоступен,
// cookie в этом случае истечет вместе со сроком действия токена.
func logout(ctx context.Context, app *app.App, client *resty.Client, info clientIdent.IUserInfoStorage) {
	clearIdentity, err := handlers.Logout(ctx, client)
	if err != nil {
		logger.ClientLog.Error("logout request failed", zap.String("error", err.Error()))
		clearIdentity = true
	}
	if clearIdentity {
		info.Clear()
	}
	app.SwitchTo(tui.Home)
	if err != nil {
		printer.Error(app, fmt.Sprintf("logout request failed, %v", err))
	}
}
