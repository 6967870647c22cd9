package register

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/printer"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/gdamore/tcell/v2"
	"github.com/go-resty/resty/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, status int, body string) (*resty.Client, *int) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		calls++
		assert.Equal(t, handlers.SignUpPath, req.URL.Path)
		var data identity.SignUpData
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&data))
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(status)
		_, _ = res.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return resty.New().SetBaseURL(srv.URL), &calls
}

func newTestApp() *app.App {
	return app.NewApp([]app.Primitives{
		{Name: tui.Register, Prim: func(*app.App) tview.Primitive { return tview.NewBox() }},
		{Name: tui.Home, Prim: func(*app.App) tview.Primitive { return tview.NewBox() }},
		{Name: tui.Login, Prim: func(*app.App) tview.Primitive { return tview.NewBox() }},
	})
}

func fill(form *tview.Form, values ...string) {
	for i, v := range values {
		form.GetFormItem(i).(*tview.InputField).SetText(v)
	}
}

func press(form *tview.Form, label string) {
	idx := form.GetButtonIndex(label)
	form.GetButton(idx).InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}

func TestRegisterForm(t *testing.T) {
	a := newTestApp()
	client, _ := newClient(t, http.StatusCreated, `{}`)
	form := newForm(context.Background(), a, client)

	// Проверяю количество и названия полей
	require.Equal(t, 4, form.GetFormItemCount())
	assert.Equal(t, NameLabel, form.GetFormItem(0).GetLabel())
	assert.Equal(t, EmailLabel, form.GetFormItem(1).GetLabel())
	assert.Equal(t, PasswordLabel, form.GetFormItem(2).GetLabel())
	assert.Equal(t, ConfirmLabel, form.GetFormItem(3).GetLabel())

	// Проверяю кнопки
	require.Equal(t, 3, form.GetButtonCount())
	assert.Equal(t, "Зарегистрироваться", form.GetButton(0).GetLabel())
	assert.Equal(t, "Назад", form.GetButton(1).GetLabel())
	assert.Equal(t, "Выход", form.GetButton(2).GetLabel())
}

func TestRegisterSuccess(t *testing.T) {
	a := newTestApp()
	client, calls := newClient(t, http.StatusCreated,
		`{"message":"User created","user":{"id":"new-id","name":"Jane Doe","email":"jane@demo.com","role":"officer"}}`)
	form := newForm(context.Background(), a, client)

	fill(form, "Jane Doe", "jane@demo.com", "password123", "password123")
	press(form, "Зарегистрироваться")

	assert.Equal(t, 1, *calls)
	assert.Equal(t, false, a.Pages.HasPage(printer.ErrorPage))
	assert.Equal(t, true, a.Pages.HasPage(printer.MessagePage))

	// поля формы очищены
	for i := 0; i < form.GetFormItemCount(); i++ {
		assert.Equal(t, "", form.GetFormItem(i).(*tview.InputField).GetText())
	}
}

func TestRegisterPasswordsDoNotMatch(t *testing.T) {
	a := newTestApp()
	client, calls := newClient(t, http.StatusCreated, `{}`)
	form := newForm(context.Background(), a, client)

	fill(form, "Jane Doe", "jane@demo.com", "password123", "password321")
	press(form, "Зарегистрироваться")

	// запрос на сервер не отправлялся
	assert.Equal(t, 0, *calls)
	assert.Equal(t, true, a.Pages.HasPage(printer.ErrorPage))
	assert.Equal(t, "", form.GetFormItemByLabel(PasswordLabel).(*tview.InputField).GetText())
	assert.Equal(t, "jane@demo.com", form.GetFormItemByLabel(EmailLabel).(*tview.InputField).GetText())
}

func TestRegisterDuplicate(t *testing.T) {
	a := newTestApp()
	client, calls := newClient(t, http.StatusConflict, `{"error":"Email already in use"}`)
	form := newForm(context.Background(), a, client)

	fill(form, "Jane Doe", "jane@demo.com", "password123", "password123")
	press(form, "Зарегистрироваться")

	assert.Equal(t, 1, *calls)
	assert.Equal(t, true, a.Pages.HasPage(printer.ErrorPage))
	name, _ := a.Pages.GetFrontPage()
	assert.Equal(t, printer.ErrorPage, name)
}
