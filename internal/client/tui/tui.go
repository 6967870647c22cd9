// tui - имена экранов терминального клиента.
package tui

// Имена страниц, между которыми переключается приложение.
const (
	Home      = "home"
	Register  = "register"
	Login     = "login"
	Dashboard = "dashboard"
	Users     = "users"
	EditUser  = "edit user"
	NewUser   = "new user"
)

// AccessDeniedNotice - уведомление, которое показывается на главной странице
// после попытки открыть раздел без необходимой роли.
const AccessDeniedNotice = "You don't have permission to access this page."
