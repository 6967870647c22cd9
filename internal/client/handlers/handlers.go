package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/abezemskiy/badgegate/internal/client/logger"
	"github.com/abezemskiy/badgegate/internal/common/identity/tools/checker"
	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Пути api сервера.
const (
	SignUpPath = "/api/auth/signup"
	LoginPath  = "/api/auth/login"
	LogoutPath = "/api/auth/logout"
	MePath     = "/api/auth/me"
	UsersPath  = "/api/admin/users"
)

// errorResponse - тело ответа сервера с описанием ошибки.
type errorResponse struct {
	Error string `json:"error"`
}

type signUpResponse struct {
	Message string                 `json:"message"`
	User    identity.PublicAccount `json:"user"`
}

type loginResponse struct {
	Message string         `json:"message"`
	User    identity.Claim `json:"user"`
}

type logoutResponse struct {
	Message       string `json:"message"`
	ClearIdentity bool   `json:"clear_identity"`
}

// SignUp - хэндлер для регистрации нового пользователя.
// Пароль проверяется только на непустоту, остальные проверки выполняет сервер.
func SignUp(ctx context.Context, client *resty.Client, data identity.SignUpData) (identity.PublicAccount, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = checker.NormalizeEmail(data.Email)
	if data.Name == "" || data.Email == "" || data.Password == "" {
		return identity.PublicAccount{}, fmt.Errorf("%w, all fields are required", identity.ErrInvalidInput)
	}
	if !checker.CheckEmail(data.Email) {
		return identity.PublicAccount{}, fmt.Errorf("%w, email is not valid", identity.ErrInvalidInput)
	}

	var result signUpResponse
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post(SignUpPath)
	if err != nil {
		logger.ClientLog.Error("sending sign up request failed", zap.String("error", err.Error()))
		return identity.PublicAccount{}, fmt.Errorf("sending sign up request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return identity.PublicAccount{}, responseError(resp, identity.ErrTokenInvalid)
	}

	logger.ClientLog.Info("new user successfully has been registered", zap.String("email", data.Email))
	return result.User, nil
}

// Login - хэндлер для входа пользователя в систему.
// Сессионный токен сервер возвращает в cookie, которую сохраняет cookie jar resty клиента.
// Возвращаемое утверждение предназначено только для отображения.
func Login(ctx context.Context, client *resty.Client, creds identity.Credentials) (identity.Claim, error) {
	creds.Email = checker.NormalizeEmail(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return identity.Claim{}, fmt.Errorf("%w, email and password are required", identity.ErrInvalidInput)
	}

	var result loginResponse
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post(LoginPath)
	if err != nil {
		logger.ClientLog.Error("sending login request failed", zap.String("error", err.Error()))
		return identity.Claim{}, fmt.Errorf("sending login request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		// на этапе входа 401 означает неверную пару email и пароль
		return identity.Claim{}, responseError(resp, identity.ErrInvalidCredentials)
	}

	logger.ClientLog.Info("user successfully logged in", zap.String("email", result.User.Email))
	return result.User, nil
}

// Logout - хэндлер для выхода из системы. Сервер удаляет cookie, клиент обязан очистить
// сохраненные сведения о пользователе, если в ответе установлен флаг clear_identity.
func Logout(ctx context.Context, client *resty.Client) (clearIdentity bool, err error) {
	var result logoutResponse
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post(LogoutPath)
	if err != nil {
		logger.ClientLog.Error("sending logout request failed", zap.String("error", err.Error()))
		return false, fmt.Errorf("sending logout request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, responseError(resp, identity.ErrTokenInvalid)
	}
	logger.ClientLog.Debug("user logged out")
	return result.ClearIdentity, nil
}

// Me - получаю утверждение текущей сессии. Используется для проверки, что сессия еще действительна.
func Me(ctx context.Context, client *resty.Client) (identity.Claim, error) {
	var claim identity.Claim
	resp, err := client.R().
		SetContext(ctx).
		SetResult(&claim).
		SetError(&errorResponse{}).
		Get(MePath)
	if err != nil {
		return identity.Claim{}, fmt.Errorf("sending me request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return identity.Claim{}, responseError(resp, identity.ErrTokenInvalid)
	}
	return claim, nil
}

// ListUsers - выгружает учетные записи. Доступно только администратору.
func ListUsers(ctx context.Context, client *resty.Client, filter identity.AccountFilter) ([]identity.PublicAccount, error) {
	var users []identity.PublicAccount
	req := client.R().
		SetContext(ctx).
		SetResult(&users).
		SetError(&errorResponse{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		req.SetQueryParam("search", search)
	}
	if filter.Role != "" {
		req.SetQueryParam("role", filter.Role)
	}

	resp, err := req.Get(UsersPath)
	if err != nil {
		logger.ClientLog.Error("sending list users request failed", zap.String("error", err.Error()))
		return nil, fmt.Errorf("sending list users request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp, identity.ErrTokenInvalid)
	}
	if users == nil {
		users = []identity.PublicAccount{}
	}
	return users, nil
}

// CreateUser - создает учетную запись от имени администратора.
func CreateUser(ctx context.Context, client *resty.Client, data identity.NewAccountData) (identity.PublicAccount, error) {
	var acc identity.PublicAccount
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		SetResult(&acc).
		SetError(&errorResponse{}).
		Post(UsersPath)
	if err != nil {
		logger.ClientLog.Error("sending create user request failed", zap.String("error", err.Error()))
		return identity.PublicAccount{}, fmt.Errorf("sending create user request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return identity.PublicAccount{}, responseError(resp, identity.ErrTokenInvalid)
	}
	logger.ClientLog.Info("user created by administrator", zap.String("id", acc.ID))
	return acc, nil
}

// UpdateUser - изменяет роль и профиль учетной записи.
func UpdateUser(ctx context.Context, client *resty.Client, id string, upd identity.AccountUpdate) (identity.PublicAccount, error) {
	var acc identity.PublicAccount
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(upd).
		SetResult(&acc).
		SetError(&errorResponse{}).
		Patch(UsersPath + "/{id}")
	if err != nil {
		logger.ClientLog.Error("sending update user request failed", zap.String("error", err.Error()))
		return identity.PublicAccount{}, fmt.Errorf("sending update user request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return identity.PublicAccount{}, responseError(resp, identity.ErrTokenInvalid)
	}
	logger.ClientLog.Info("user updated by administrator", zap.String("id", id), zap.String("role", acc.Role))
	return acc, nil
}

// DeleteUser - удаляет учетную запись.
func DeleteUser(ctx context.Context, client *resty.Client, id string) error {
	resp, err := client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&errorResponse{}).
		Delete(UsersPath + "/{id}")
	if err != nil {
		logger.ClientLog.Error("sending delete user request failed", zap.String("error", err.Error()))
		return fmt.Errorf("sending delete user request failed, %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return responseError(resp, identity.ErrTokenInvalid)
	}
	logger.ClientLog.Info("user deleted by administrator", zap.String("id", id))
	return nil
}

// responseError - переводит статус ответа сервера в ошибку из таксономии identity.
// unauthorized - ошибка, которой соответствует статус 401 для данного запроса.
func responseError(resp *resty.Response, unauthorized error) error {
	msg := http.StatusText(resp.StatusCode())
	if e, ok := resp.Error().(*errorResponse); ok && e.Error != "" {
		msg = e.Error
	}

	var kind error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		kind = identity.ErrInvalidInput
	case http.StatusUnauthorized:
		kind = unauthorized
	case http.StatusForbidden:
		kind = identity.ErrForbidden
	case http.StatusNotFound:
		kind = identity.ErrAccountNotFound
	case http.StatusConflict:
		kind = identity.ErrDuplicateAccount
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		kind = identity.ErrStorageUnavailable
	default:
		logger.ClientLog.Error("bad server status", zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("bad server status %d, %s", resp.StatusCode(), msg)
	}

	logger.ClientLog.Debug("server rejected request", zap.Int("status", resp.StatusCode()), zap.String("message", msg))
	return fmt.Errorf("%w: %s", kind, msg)
}
