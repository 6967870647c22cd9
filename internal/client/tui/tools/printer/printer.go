package printer

import (
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/rivo/tview"
)

// Имена модальных окон.
const (
	ErrorPage   = "error"
	MessagePage = "message"
)

// Error - функция для вывода ошибок на экран пользователя.
func Error(app *app.App, message string) {
	show(app, ErrorPage, "Ошибка: "+message)
}

// Message - функция для вывода сообщения на экран пользователя.
func Message(app *app.App, message string) {
	show(app, MessagePage, "Сообщение: "+message)
}

func show(app *app.App, page, text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			app.Pages.RemovePage(page)
		})
	app.Pages.AddPage(page, modal, true, true)
}
