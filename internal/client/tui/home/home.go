package home

import (
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/rivo/tview"
)

// Page - приветственное окно для входа в приложение.
func Page(app *app.App) tview.Primitive {
	list := tview.NewList().
		AddItem("Регистрация", "Создать учетную запись", 'r', func() { app.SwitchTo(tui.Register) }).
		AddItem("Вход", "Войти по email и паролю", 'l', func() { app.SwitchTo(tui.Login) }).
		AddItem("Выход", "Закрыть приложение", 'q', func() { app.Stop() })

	list.SetBorder(true).SetTitle("Добро пожаловать в badgegate")

	return list
}
