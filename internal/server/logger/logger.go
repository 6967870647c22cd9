package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServerLog будет доступен всему коду как синглтон.
// Никакой код, кроме функции Initialize, не должен модифицировать эту переменную.
// По умолчанию установлен no-op-логер, который не выводит никаких сообщений.
var ServerLog *zap.Logger = zap.NewNop()

// Initialize - инициализирует синглтон логера с необходимым уровнем логирования.
func Initialize(level string) error {
	// преобразую текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	// создаю новую конфигурацию логера
	cfg := zap.NewProductionConfig()
	// устанавливаю уровень
	cfg.Level = lvl
	// создаю логер на основе конфигурации
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	// устанавливаю синглтон
	ServerLog = zl.With(zap.String("role", "server"))
	return nil
}

type (
	// responseData - сведения об ответе сервера.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter - реализация http.ResponseWriter, которая запоминает статус и размер ответа.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// RequestLogger - middleware-логер для входящих HTTP-запросов.
// Тело запроса не логируется, так как может содержать пароль.
func RequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()

		respData := &responseData{
			status: http.StatusOK,
		}
		lw := loggingResponseWriter{
			ResponseWriter: res,
			responseData:   respData,
		}
		h.ServeHTTP(&lw, req)

		ServerLog.Info("got incoming HTTP request",
			zap.String("method", req.Method),
			zap.String("uri", req.RequestURI),
			zap.Int("status", respData.status),
			zap.Int("size", respData.size),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
