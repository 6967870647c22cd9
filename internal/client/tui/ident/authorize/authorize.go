package authorize

import (
	"context"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
	clientIdent "github.com/abezemskiy/badgegate/internal/client/identity"
	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/printer"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/go-resty/resty/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Подписи полей формы.
const (
	EmailLabel    = "Email"
	PasswordLabel = "Пароль"
)

// LoginPage - страница входа пользователя.
// После успешного входа сведения о пользователе сохраняются в info для отображения.
func LoginPage(ctx context.Context, client *resty.Client, info clientIdent.IUserInfoStorage) func(app *app.App) tview.Primitive {
	return func(app *app.App) tview.Primitive {
		form := newForm(ctx, app, client, info)
		return tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(form, 9, 1, true)
	}
}

func newForm(ctx context.Context, app *app.App, client *resty.Client, info clientIdent.IUserInfoStorage) *tview.Form {
	form := tview.NewForm()
	creds := identity.Credentials{}

	form.AddInputField(EmailLabel, "", 30, nil, func(text string) { creds.Email = text })
	form.AddPasswordField(PasswordLabel, "", 30, '*', func(text string) { creds.Password = text })

	form.AddButton("Войти", func() {
		claim, err := handlers.Login(ctx, client, creds)
		// пароль не хранится в форме дольше одной попытки
		form.GetFormItemByLabel(PasswordLabel).(*tview.InputField).SetText("")
		if err != nil {
			logger.ClientLog.Error("login failed", zap.String("email", creds.Email), zap.String("error", err.Error()))
			printer.Error(app, err.Error())
			return
		}

		info.Set(claim)
		logger.ClientLog.Info("user successfully logged in", zap.String("id", claim.ID), zap.String("role", claim.Role))
		app.SwitchTo(tui.Dashboard)
	})

	form.AddButton("Назад", func() { app.SwitchTo(tui.Home) })
	form.AddButton("Выход", func() { app.Stop() })

	form.SetBorder(true).SetTitle("Вход").SetTitleAlign(tview.AlignCenter)
	return form
}
