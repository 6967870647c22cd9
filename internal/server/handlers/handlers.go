package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/abezemskiy/badgegate/internal/common/identity/tools/cookie"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/abezemskiy/badgegate/internal/server/metrics"
	"go.uber.org/zap"
)

// Тексты ответов, которые видит клиент.
const (
	MessageInvalidBody        = "Invalid request body"
	MessageInvalidCredentials = "Invalid credentials"
	MessageEmailInUse         = "Email already in use"
	MessageNotFound           = "User not found"
	MessageNotAuthenticated   = "Not authenticated"
	MessageForbidden          = "Forbidden"
	MessageServerError        = "Server error"
)

// TokenIssuer - выпуск сессионного токена.
type TokenIssuer interface {
	Issue(claim identity.Claim) (string, error)
	Lifetime() time.Duration
}

// Session - параметры выдачи сессии клиенту.
type Session struct {
	Tokens TokenIssuer
	Secure bool // флаг Secure для cookie, устанавливается в production окружении
}

func (s Session) cookieOptions() cookie.Options {
	return cookie.Options{Secure: s.Secure, MaxAge: s.Tokens.Lifetime()}
}

// SignUpResponse - ответ на успешную регистрацию.
type SignUpResponse struct {
	Message string                 `json:"message"`
	User    identity.PublicAccount `json:"user"`
}

// LoginResponse - ответ на успешный вход. Утверждение передается клиенту только для отображения.
type LoginResponse struct {
	Message string         `json:"message"`
	User    identity.Claim `json:"user"`
}

// LogoutResponse - ответ на выход из системы. Флаг ClearIdentity сообщает клиенту,
// что сохраненные для отображения сведения о пользователе необходимо удалить.
type LogoutResponse struct {
	Message       string `json:"message"`
	ClearIdentity bool   `json:"clear_identity"`
}

// MessageResponse - ответ, содержащий только сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignUp - хэндлер для регистрации пользователя в системе.
func SignUp(res http.ResponseWriter, req *http.Request, reg identity.Registrar) {
	defer req.Body.Close()

	var data identity.SignUpData
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		logger.ServerLog.Info("failed to parse sign up data", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		metrics.SignUp(metrics.ResultInvalidInput)
		auth.WriteJSONError(res, http.StatusBadRequest, MessageInvalidBody)
		return
	}

	acc, err := reg.SignUp(req.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidInput):
			metrics.SignUp(metrics.ResultInvalidInput)
		case errors.Is(err, identity.ErrDuplicateAccount):
			metrics.SignUp(metrics.ResultRejected)
		default:
			metrics.SignUp(metrics.ResultError)
		}
		writeError(res, req, err)
		return
	}

	logger.ServerLog.Info("user registered", zap.String("user id", acc.ID), zap.String("email", acc.Email))
	metrics.SignUp(metrics.ResultSuccess)
	writeJSON(res, http.StatusCreated, SignUpResponse{Message: "User created", User: acc.Public()})
}

// SignUpHandler - обертка над функцией SignUp.
func SignUpHandler(reg identity.Registrar) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		SignUp(res, req, reg)
	}
}

// Login - хэндлер для входа пользователя в систему. При успешной проверке учетных данных
// токен пользователя устанавливается в cookie.
func Login(res http.ResponseWriter, req *http.Request, verifier identity.CredentialVerifier, session Session) {
	defer req.Body.Close()

	var creds identity.Credentials
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		logger.ServerLog.Info("failed to parse credentials", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		metrics.Login(metrics.ResultInvalidInput)
		auth.WriteJSONError(res, http.StatusBadRequest, MessageInvalidBody)
		return
	}

	claim, err := verifier.Verify(req.Context(), creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidInput):
			metrics.Login(metrics.ResultInvalidInput)
		case errors.Is(err, identity.ErrInvalidCredentials):
			metrics.Login(metrics.ResultRejected)
		default:
			metrics.Login(metrics.ResultError)
		}
		writeError(res, req, err)
		return
	}

	// генерирую токен
	token, err := session.Tokens.Issue(claim)
	if err != nil {
		metrics.Login(metrics.ResultError)
		writeError(res, req, err)
		return
	}
	// устанавливаю токен в cookie
	cookie.Set(res, token, session.cookieOptions())

	logger.ServerLog.Info("user logged in", zap.String("user id", claim.ID))
	metrics.Login(metrics.ResultSuccess)
	writeJSON(res, http.StatusOK, LoginResponse{Message: "Login successful", User: claim})
}

// LoginHandler - обертка над функцией Login.
func LoginHandler(verifier identity.CredentialVerifier, session Session) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		Login(res, req, verifier, session)
	}
}

// LogoutHandler - удаляет cookie с токеном и просит браузер очистить локальное хранилище.
// Токен не отзывается на сервере и остается действительным до истечения срока.
func LogoutHandler(session Session) http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		cookie.Clear(res, session.cookieOptions())
		res.Header().Set("Clear-Site-Data", `"storage"`)
		writeJSON(res, http.StatusOK, LogoutResponse{Message: "Logged out", ClearIdentity: true})
	}
}

// MeHandler - возвращает утверждение аутентифицированного пользователя.
func MeHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		claim, ok := auth.ClaimFromContext(req.Context())
		if !ok {
			auth.WriteJSONError(res, http.StatusUnauthorized, MessageNotAuthenticated)
			return
		}
		writeJSON(res, http.StatusOK, claim)
	}
}

// HandleOtherRequest - обработка нераспознанных http запросов к сервису.
func HandleOtherRequest() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		auth.WriteJSONError(res, http.StatusNotFound, "Not found")
	}
}

// writeError - единое место отображения ошибок в статусы ответа.
// Подробности ошибок хранилища записываются в лог и не передаются клиенту.
func writeError(res http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidInput):
		auth.WriteJSONError(res, http.StatusBadRequest, inputMessage(err))
	case errors.Is(err, identity.ErrInvalidCredentials):
		auth.WriteJSONError(res, http.StatusUnauthorized, MessageInvalidCredentials)
	case errors.Is(err, identity.ErrDuplicateAccount):
		auth.WriteJSONError(res, http.StatusConflict, MessageEmailInUse)
	case errors.Is(err, identity.ErrAccountNotFound):
		auth.WriteJSONError(res, http.StatusNotFound, MessageNotFound)
	case errors.Is(err, identity.ErrTokenInvalid):
		auth.WriteJSONError(res, http.StatusUnauthorized, MessageNotAuthenticated)
	case errors.Is(err, identity.ErrForbidden):
		auth.WriteJSONError(res, http.StatusForbidden, MessageForbidden)
	default:
		logger.ServerLog.Error("request failed", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		auth.WriteJSONError(res, http.StatusInternalServerError, MessageServerError)
	}
}

// inputMessage - текст ошибки проверки входных данных без префикса identity.ErrInvalidInput.
func inputMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), identity.ErrInvalidInput.Error())
	msg = strings.TrimLeft(msg, ", :")
	if msg == "" {
		return "Invalid input"
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(v); err != nil {
		logger.ServerLog.Error("failed to encode response", zap.String("error", err.Error()))
	}
}
