package identity

import (
	"context"
	"time"
)

const (
	RoleOfficer = "officer" // роль по умолчанию для зарегистрированного пользователя
	RoleAdmin   = "admin"   // роль администратора
)

// ValidRole - проверяет, что роль входит в фиксированный набор ролей системы.
func ValidRole(role string) bool {
	return role == RoleOfficer || role == RoleAdmin
}

const (
	StatusActive   = "active"   // учетная запись может входить в систему
	StatusInactive = "inactive" // вход отключен администратором
)

// ValidStatus - проверяет значение статуса учетной записи.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

// Account - зарегистрированная учетная запись пользователя.
// Поле Hash содержит bcrypt хэш пароля и никогда не передается клиенту.
type Account struct {
	ID         string
	Name       string
	Email      string
	Hash       string
	Role       string
	Department string
	Title      string
	BadgeID    string
	Phone      string
	Status     string
	CreatedAt  time.Time
}

// Active - учетная запись не отключена администратором.
func (a Account) Active() bool {
	return a.Status != StatusInactive
}

// PublicAccount - публичные поля учетной записи, которые разрешено отдавать клиенту.
type PublicAccount struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	Title      string    `json:"title,omitempty"`
	BadgeID    string    `json:"badge_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public - возвращает представление учетной записи без хэша пароля.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		Department: a.Department,
		Title:      a.Title,
		BadgeID:    a.BadgeID,
		Phone:      a.Phone,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

// Claim - минимальный набор сведений об аутентифицированном пользователе.
type Claim struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Claim - возвращает утверждение об identity для учетной записи.
func (a Account) Claim() Claim {
	return Claim{
		ID:    a.ID,
		Email: a.Email,
		Role:  a.Role,
		Name:  a.Name,
	}
}

// SignUpData - данные для регистрации нового пользователя.
type SignUpData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials - данные для входа пользователя в систему.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAccountData - данные для создания учетной записи администратором.
type NewAccountData struct {
	SignUpData
	Profile
}

// Profile - изменяемые администратором поля учетной записи.
// Пустой Status при создании означает активную запись, при изменении - статус не меняется.
type Profile struct {
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
	BadgeID    string `json:"badge_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status,omitempty"`
}

// AccountUpdate - данные для изменения учетной записи администратором.
type AccountUpdate struct {
	Name string `json:"name"`
	Profile
}

// AccountFilter - параметры выборки учетных записей.
type AccountFilter struct {
	Search string // подстрока для поиска по имени, email, отделу, должности и номеру значка
	Role   string // точное совпадение роли, пустая строка - любые роли
}

type (
	// AccountReader - интерфейс для поиска учетной записи по email.
	AccountReader interface {
		AccountByEmail(ctx context.Context, email string) (acc Account, ok bool, err error)
	}

	// Identifier - интерфейс хранилища для регистрации и авторизации пользователя.
	Identifier interface {
		AccountReader
		Register(ctx context.Context, acc Account) error // Метод для регистрации пользователя.
	}

	// AccountManager - интерфейс хранилища для управления учетными записями администратором.
	AccountManager interface {
		AccountByID(ctx context.Context, id string) (acc Account, ok bool, err error)
		ListAccounts(ctx context.Context, filter AccountFilter) ([]Account, error)
		UpdateAccount(ctx context.Context, id string, upd AccountUpdate) (acc Account, ok bool, err error)
		DeleteAccount(ctx context.Context, id string) (bool, error)
	}
)

type (
	// CredentialVerifier - проверка пары email и пароль.
	CredentialVerifier interface {
		Verify(ctx context.Context, email, password string) (Claim, error)
	}

	// Registrar - регистрация нового пользователя.
	Registrar interface {
		SignUp(ctx context.Context, data SignUpData) (Account, error)
	}

	// Administrator - операции администратора над учетными записями.
	Administrator interface {
		List(ctx context.Context, filter AccountFilter) ([]Account, error)
		Create(ctx context.Context, data NewAccountData) (Account, error)
		Update(ctx context.Context, id string, upd AccountUpdate) (Account, error)
		Delete(ctx context.Context, actorID, id string) error
	}
)
