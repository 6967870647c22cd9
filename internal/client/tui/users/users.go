package users

import (
	"context"
	"fmt"

	"github.com/abezemskiy/badgegate/internal/client/handlers"
	clientIdent "github.com/abezemskiy/badgegate/internal/client/identity"
	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/client/tui"
	"github.com/abezemskiy/badgegate/internal/client/tui/app"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/guard"
	"github.com/abezemskiy/badgegate/internal/client/tui/tools/printer"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/gdamore/tcell/v2"
	"github.com/go-resty/resty/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Подписи полей форм.
const (
	SearchLabel     = "Поиск"
	RoleLabel       = "Роль"
	NameLabel       = "Имя"
	EmailLabel      = "Email"
	PasswordLabel   = "Пароль"
	DepartmentLabel = "Отдел"
	TitleLabel      = "Должность"
	BadgeLabel      = "Номер значка"
	PhoneLabel      = "Телефон"
)

// StatusButton - кнопка формы изменения, включающая или отключающая вход пользователя.
const StatusButton = "Вкл/Откл вход"

// anyRole - вариант фильтра без ограничения по роли.
const anyRole = "любая"

var (
	roles       = []string{identity.RoleOfficer, identity.RoleAdmin}
	filterRoles = []string{anyRole, identity.RoleOfficer, identity.RoleAdmin}
	columns     = []string{"Имя", "Email", "Роль", "Статус", "Отдел", "Должность", "Значок"}
)

// Users - раздел администратора для управления учетными записями.
// Состоит из трех экранов: таблица пользователей, изменение и создание учетной записи.
type Users struct {
	ctx    context.Context
	client *resty.Client
	info   clientIdent.IUserInfoStorage

	filter identity.AccountFilter
	users  []identity.PublicAccount

	// выбранная в таблице учетная запись и ее изменения
	selected identity.PublicAccount
	upd      identity.AccountUpdate
	created  identity.NewAccountData

	table  *tview.Table
	edit   *tview.Form
	create *tview.Form
}

// New - фабричная функция раздела Users.
func New(ctx context.Context, client *resty.Client, info clientIdent.IUserInfoStorage) *Users {
	return &Users{
		ctx:    ctx,
		client: client,
		info:   info,
	}
}

// Open - загружает список пользователей и показывает таблицу.
// Если роль не позволяет, сервер отвечает 403 и пользователь возвращается на главную страницу с уведомлением.
func (u *Users) Open(app *app.App) {
	if err := u.load(); err != nil {
		guard.Handle(app, u.info, err)
		return
	}
	app.SwitchTo(tui.Users)
}

func (u *Users) load() error {
	users, err := handlers.ListUsers(u.ctx, u.client, u.filter)
	if err != nil {
		return err
	}
	u.users = users
	if u.table != nil {
		u.render()
	}
	return nil
}

// render - заполняет таблицу загруженными учетными записями.
func (u *Users) render() {
	u.table.Clear()
	for col, title := range columns {
		u.table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}
	for i, acc := range u.users {
		row := i + 1
		for col, value := range []string{acc.Name, acc.Email, acc.Role, acc.Status, acc.Department, acc.Title, acc.BadgeID} {
			u.table.SetCell(row, col, tview.NewTableCell(value))
		}
	}
	u.table.ScrollToBeginning()
}

// ListPage - экран со списком пользователей, поиском и фильтром по роли.
func (u *Users) ListPage(app *app.App) tview.Primitive {
	u.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	u.table.SetBorder(true).SetTitle("Пользователи")
	u.table.SetSelectedFunc(func(row, _ int) {
		if row < 1 || row > len(u.users) {
			return
		}
		u.selectAccount(u.users[row-1])
		app.SwitchTo(tui.EditUser)
	})
	u.render()

	filter := tview.NewForm().
		SetHorizontal(true).
		AddInputField(SearchLabel, "", 30, nil, func(text string) { u.filter.Search = text }).
		AddDropDown(RoleLabel, filterRoles, 0, func(option string, _ int) {
			u.filter.Role = option
			if option == anyRole {
				u.filter.Role = ""
			}
		}).
		AddButton("Найти", func() {
			if err := u.load(); err != nil {
				guard.Handle(app, u.info, err)
				return
			}
			app.App.SetFocus(u.table)
		}).
		AddButton("Создать", func() {
			u.resetCreate()
			app.SwitchTo(tui.NewUser)
		}).
		AddButton("Назад", func() { app.SwitchTo(tui.Dashboard) })

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(filter, 3, 1, false).
		AddItem(u.table, 0, 1, true)
}

// selectAccount - переносит выбранную учетную запись в форму изменения.
func (u *Users) selectAccount(acc identity.PublicAccount) {
	u.selected = acc
	u.upd = updateFrom(acc)
	if u.edit == nil {
		return
	}
	u.edit.SetTitle(fmt.Sprintf("Пользователь %s", acc.Email))
	// значения копируются заранее, так как SetText вызывает обработчик изменения поля
	upd := u.upd
	u.edit.GetFormItemByLabel(NameLabel).(*tview.InputField).SetText(upd.Name)
	u.edit.GetFormItemByLabel(DepartmentLabel).(*tview.InputField).SetText(upd.Department)
	u.edit.GetFormItemByLabel(TitleLabel).(*tview.InputField).SetText(upd.Title)
	u.edit.GetFormItemByLabel(BadgeLabel).(*tview.InputField).SetText(upd.BadgeID)
	u.edit.GetFormItemByLabel(PhoneLabel).(*tview.InputField).SetText(upd.Phone)
	u.edit.GetFormItemByLabel(RoleLabel).(*tview.DropDown).SetCurrentOption(roleIndex(upd.Role))
}

// EditPage - экран изменения и удаления выбранной учетной записи.
func (u *Users) EditPage(app *app.App) tview.Primitive {
	form := tview.NewForm()
	form.AddInputField(NameLabel, "", 30, nil, func(text string) { u.upd.Name = text })
	form.AddDropDown(RoleLabel, roles, 0, func(option string, _ int) { u.upd.Role = option })
	form.AddInputField(DepartmentLabel, "", 40, nil, func(text string) { u.upd.Department = text })
	form.AddInputField(TitleLabel, "", 30, nil, func(text string) { u.upd.Title = text })
	form.AddInputField(BadgeLabel, "", 20, nil, func(text string) { u.upd.BadgeID = text })
	form.AddInputField(PhoneLabel, "", 20, nil, func(text string) { u.upd.Phone = text })

	form.AddButton("Сохранить", func() {
		acc, err := handlers.UpdateUser(u.ctx, u.client, u.selected.ID, u.upd)
		if err != nil {
			guard.Handle(app, u.info, err)
			return
		}
		logger.ClientLog.Info("user updated", zap.String("id", acc.ID), zap.String("role", acc.Role))
		u.reopen(app, "User updated")
	})
	form.AddButton(StatusButton, func() {
		// меняется только статус, несохраненные правки формы не отправляются
		upd := updateFrom(u.selected)
		upd.Status = identity.StatusInactive
		if u.selected.Status == identity.StatusInactive {
			upd.Status = identity.StatusActive
		}
		acc, err := handlers.UpdateUser(u.ctx, u.client, u.selected.ID, upd)
		if err != nil {
			guard.Handle(app, u.info, err)
			return
		}
		logger.ClientLog.Info("user status changed", zap.String("id", acc.ID), zap.String("status", acc.Status))
		if acc.Status == identity.StatusInactive {
			u.reopen(app, "User deactivated")
			return
		}
		u.reopen(app, "User activated")
	})
	form.AddButton("Удалить", func() {
		if err := handlers.DeleteUser(u.ctx, u.client, u.selected.ID); err != nil {
			guard.Handle(app, u.info, err)
			return
		}
		logger.ClientLog.Info("user deleted", zap.String("id", u.selected.ID))
		u.reopen(app, "User deleted")
	})
	form.AddButton("Отмена", func() { app.SwitchTo(tui.Users) })

	form.SetBorder(true).SetTitle("Пользователь").SetTitleAlign(tview.AlignCenter)
	u.edit = form
	return form
}

// NewPage - экран создания учетной записи администратором.
func (u *Users) NewPage(app *app.App) tview.Primitive {
	form := tview.NewForm()
	form.AddInputField(NameLabel, "", 30, nil, func(text string) { u.created.Name = text })
	form.AddInputField(EmailLabel, "", 30, nil, func(text string) { u.created.Email = text })
	form.AddPasswordField(PasswordLabel, "", 30, '*', func(text string) { u.created.Password = text })
	form.AddDropDown(RoleLabel, roles, 0, func(option string, _ int) { u.created.Role = option })
	form.AddInputField(DepartmentLabel, "", 40, nil, func(text string) { u.created.Department = text })
	form.AddInputField(TitleLabel, "", 30, nil, func(text string) { u.created.Title = text })
	form.AddInputField(BadgeLabel, "", 20, nil, func(text string) { u.created.BadgeID = text })
	form.AddInputField(PhoneLabel, "", 20, nil, func(text string) { u.created.Phone = text })

	form.AddButton("Создать", func() {
		acc, err := handlers.CreateUser(u.ctx, u.client, u.created)
		// пароль не хранится в форме дольше одной попытки
		form.GetFormItemByLabel(PasswordLabel).(*tview.InputField).SetText("")
		if err != nil {
			guard.Handle(app, u.info, err)
			return
		}
		logger.ClientLog.Info("user created", zap.String("id", acc.ID), zap.String("role", acc.Role))
		u.reopen(app, "User created")
	})
	form.AddButton("Отмена", func() { app.SwitchTo(tui.Users) })

	form.SetBorder(true).SetTitle("Новый пользователь").SetTitleAlign(tview.AlignCenter)
	u.create = form
	return form
}

// resetCreate - очищает форму создания учетной записи.
func (u *Users) resetCreate() {
	u.created = identity.NewAccountData{Profile: identity.Profile{Role: identity.RoleOfficer}}
	if u.create == nil {
		return
	}
	for _, label := range []string{NameLabel, EmailLabel, PasswordLabel, DepartmentLabel, TitleLabel, BadgeLabel, PhoneLabel} {
		u.create.GetFormItemByLabel(label).(*tview.InputField).SetText("")
	}
	u.create.GetFormItemByLabel(RoleLabel).(*tview.DropDown).SetCurrentOption(0)
}

// reopen - перечитывает список после изменения и возвращает к таблице.
func (u *Users) reopen(app *app.App, message string) {
	if err := u.load(); err != nil {
		guard.Handle(app, u.info, err)
		return
	}
	app.SwitchTo(tui.Users)
	printer.Message(app, message)
}

// updateFrom - изменяемые поля учетной записи в виде запроса на изменение.
func updateFrom(acc identity.PublicAccount) identity.AccountUpdate {
	return identity.AccountUpdate{
		Name: acc.Name,
		Profile: identity.Profile{
			Role:       acc.Role,
			Department: acc.Department,
			Title:      acc.Title,
			BadgeID:    acc.BadgeID,
			Phone:      acc.Phone,
			Status:     acc.Status,
		},
	}
}

func roleIndex(role string) int {
	for i, r := range roles {
		if r == role {
			return i
		}
	}
	return 0
}
