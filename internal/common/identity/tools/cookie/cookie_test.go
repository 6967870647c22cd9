package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	type want struct {
		secure bool
		maxAge int
	}
	tests := []struct {
		name string
		opts Options
		want want
	}{
		{
			name: "development",
			opts: Options{Secure: false, MaxAge: time.Hour},
			want: want{secure: false, maxAge: 3600},
		},
		{
			name: "production",
			opts: Options{Secure: true, MaxAge: time.Hour},
			want: want{secure: true, maxAge: 3600},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/cookie", func(res http.ResponseWriter, _ *http.Request) {
				Set(res, "some token", tt.opts)
			})

			request := httptest.NewRequest(http.MethodPost, "/cookie", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, request)

			result := w.Result()
			defer result.Body.Close()

			cookies := result.Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]
			assert.Equal(t, Name, c.Name)
			assert.Equal(t, "some token", c.Value)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, true, c.HttpOnly)
			assert.Equal(t, tt.want.secure, c.Secure)
			assert.Equal(t, tt.want.maxAge, c.MaxAge)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

			getToken, err := GetTokenFromResponse(result)
			require.NoError(t, err)
			assert.Equal(t, "some token", getToken)
		})
	}
}

func TestClear(t *testing.T) {
	w := httptest.NewRecorder()
	Clear(w, Options{})

	result := w.Result()
	defer result.Body.Close()

	cookies := result.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, Name, cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)

	_, err := GetTokenFromResponse(result)
	require.Error(t, err)
}

func TestGetToken(t *testing.T) {
	{
		// Тест с успешным извлечением токена
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: Name, Value: "254735724613466"})

		res, err := GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "254735724613466", res)
	}
	{
		// Cookie отсутствует
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := GetToken(r)
		assert.ErrorIs(t, err, ErrNoToken)
	}
	{
		// Cookie с другим именем
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "254735724613466"})
		_, err := GetToken(r)
		assert.ErrorIs(t, err, ErrNoToken)
	}
	{
		// Пустое значение
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: Name, Value: ""})
		_, err := GetToken(r)
		assert.ErrorIs(t, err, ErrNoToken)
	}
}
