package storage

import (
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
)

// IAccountStorage - интерфейс сервера для хранения учетных записей пользователей.
// Уникальность email обеспечивается самим хранилищем, а не проверкой перед вставкой.
type IAccountStorage interface {
	identity.Identifier
	identity.AccountManager
}
