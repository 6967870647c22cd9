package checker

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
)

// Предельные длины полей учетной записи в символах, совпадают с шириной столбцов таблицы accounts.
const (
	MaxNameLength    = 256
	MaxEmailLength   = 320
	MaxProfileLength = 256 // отдел и должность
	MaxBadgeLength   = 64
	MaxPhoneLength   = 64
)

// MaxPasswordBytes - bcrypt не принимает пароли длиннее 72 байт.
const MaxPasswordBytes = 72

// NormalizeEmail - приводит email к каноническому виду: без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckEmail - функция для проверки корректности email.
func CheckEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// отбрасываю формы вида "Имя <email>"
	return addr.Address == email
}

// CheckPassword - функция для проверки корректности пароля.
func CheckPassword(password string) bool {
	// проверяю, что пароль не является пустой строкой и помещается в bcrypt
	return password != "" && len(password) <= MaxPasswordBytes
}

// CheckLength - значение не длиннее max символов.
func CheckLength(value string, max int) bool {
	return utf8.RuneCountInString(value) <= max
}

// CheckName - функция для проверки корректности отображаемого имени.
func CheckName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// CheckRole - функция для проверки корректности роли.
func CheckRole(role string) bool {
	return identity.ValidRole(role)
}
