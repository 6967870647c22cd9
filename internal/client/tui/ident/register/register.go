package register

import (
	"context"
	"errors"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
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
	NameLabel     = "Имя"
	EmailLabel    = "Email"
	PasswordLabel = "Пароль"
	ConfirmLabel  = "Подтвердите пароль"
)

// Page - страница регистрации пользователя.
// Для успешной регистрации обязательно быть онлайн.
func Page(ctx context.Context, client *resty.Client) func(app *app.App) tview.Primitive {
	return func(app *app.App) tview.Primitive {
		form := newForm(ctx, app, client)
		return tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(form, 13, 1, true)
	}
}

func newForm(ctx context.Context, app *app.App, client *resty.Client) *tview.Form {
	form := tview.NewForm()
	data := identity.SignUpData{}
	var confirmPassword string

	form.AddInputField(NameLabel, "", 30, nil, func(text string) { data.Name = text })
	form.AddInputField(EmailLabel, "", 30, nil, func(text string) { data.Email = text })
	form.AddPasswordField(PasswordLabel, "", 30, '*', func(text string) { data.Password = text })
	form.AddPasswordField(ConfirmLabel, "", 30, '*', func(text string) { confirmPassword = text })

	clearPasswords := func() {
		form.GetFormItemByLabel(PasswordLabel).(*tview.InputField).SetText("")
		form.GetFormItemByLabel(ConfirmLabel).(*tview.InputField).SetText("")
	}

	form.AddButton("Зарегистрироваться", func() {
		if data.Password != confirmPassword {
			logger.ClientLog.Error("passwords do not match", zap.String("email", data.Email))
			printer.Error(app, "passwords do not match")
			clearPasswords()
			return
		}

		acc, err := handlers.SignUp(ctx, client, data)
		if err != nil {
			logger.ClientLog.Error("failed to register new user", zap.String("email", data.Email), zap.String("error", err.Error()))
			clearPasswords()

			// Email уже занят, пользователю предлагается войти
			if errors.Is(err, identity.ErrDuplicateAccount) {
				app.SwitchTo(tui.Login)
			}
			// модальное окно добавляется после переключения, иначе оно будет скрыто
			printer.Error(app, err.Error())
			return
		}

		logger.ClientLog.Info("new user successfully register", zap.String("id", acc.ID))
		form.GetFormItemByLabel(NameLabel).(*tview.InputField).SetText("")
		form.GetFormItemByLabel(EmailLabel).(*tview.InputField).SetText("")
		clearPasswords()

		app.SwitchTo(tui.Login)
		printer.Message(app, "User created, please log in")
	})

	form.AddButton("Назад", func() { app.SwitchTo(tui.Home) })
	form.AddButton("Выход", func() { app.Stop() })

	form.SetBorder(true).SetTitle("Регистрация").SetTitleAlign(tview.AlignCenter)
	return form
}
