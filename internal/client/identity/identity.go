package identity

import "github.com/abezemskiy/badgegate/internal/repositories/identity"

// IUserInfoStorage - интерфейс для хранения сведений о текущем пользователе в оперативной памяти.
// Сведения используются только для отображения, права доступа проверяет сервер по cookie.
type IUserInfoStorage interface {
	Set(claim identity.Claim)             // сохраняет утверждение, полученное при входе.
	Get() (claim identity.Claim, ok bool) // возвращает утверждение, ok == false если вход не выполнен.
	Clear()                               // удаляет сведения при выходе или истечении сессии.
}
