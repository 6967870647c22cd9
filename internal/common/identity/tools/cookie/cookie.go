// cookie - пакет для передачи сессионного токена клиенту через cookie.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Name - имя cookie, в которой хранится сериализованный токен.
const Name = "token"

// ErrNoToken - в запросе отсутствует cookie с токеном.
var ErrNoToken = errors.New("token cookie is not set")

// Options - атрибуты cookie с токеном.
type Options struct {
	Secure bool          // устанавливается в production окружении
	MaxAge time.Duration // совпадает со временем действия токена
}

// Set - устанавливает cookie с токеном в ответ сервера.
func Set(res http.ResponseWriter, token string, opts Options) {
	http.SetCookie(res, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear - удаляет cookie с токеном у клиента, устанавливая немедленное истечение срока.
func Clear(res http.ResponseWriter, opts Options) {
	http.SetCookie(res, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetToken - функция для получения токена из cookie запроса.
func GetToken(req *http.Request) (string, error) {
	c, err := req.Cookie(Name)
	if err != nil {
		return "", ErrNoToken
	}
	if c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

// GetTokenFromResponse - извлекает токен из cookie в ответе сервера.
// Необходима для тестирования хэндлеров сервера, имитирует получение токена клиентом.
func GetTokenFromResponse(res *http.Response) (string, error) {
	for _, c := range res.Cookies() {
		if c.Name == Name {
			if c.Value == "" {
				return "", fmt.Errorf("token cookie is cleared")
			}
			return c.Value, nil
		}
	}
	return "", ErrNoToken
}
