package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/abezemskiy/badgegate/internal/repositories/identity"
	"github.com/abezemskiy/badgegate/internal/server/identity/auth"
	"github.com/abezemskiy/badgegate/internal/server/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListUsers - выборка учетных записей. Параметры запроса: search - подстрока поиска, role - роль.
func ListUsers(res http.ResponseWriter, req *http.Request, adm identity.Administrator) {
	filter := identity.AccountFilter{
		Search: req.URL.Query().Get("search"),
		Role:   req.URL.Query().Get("role"),
	}
	list, err := adm.List(req.Context(), filter)
	if err != nil {
		writeError(res, req, err)
		return
	}

	users := make([]identity.PublicAccount, 0, len(list))
	for _, acc := range list {
		users = append(users, acc.Public())
	}
	writeJSON(res, http.StatusOK, users)
}

// ListUsersHandler - обертка над функцией ListUsers.
func ListUsersHandler(adm identity.Administrator) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ListUsers(res, req, adm)
	}
}

// CreateUser - создание учетной записи администратором.
func CreateUser(res http.ResponseWriter, req *http.Request, adm identity.Administrator) {
	defer req.Body.Close()

	var data identity.NewAccountData
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		auth.WriteJSONError(res, http.StatusBadRequest, MessageInvalidBody)
		return
	}

	acc, err := adm.Create(req.Context(), data)
	if err != nil {
		writeError(res, req, err)
		return
	}
	logger.ServerLog.Info("account created by administrator", zap.String("user id", acc.ID), zap.String("actor", actorID(req)))
	writeJSON(res, http.StatusCreated, acc.Public())
}

// CreateUserHandler - обертка над функцией CreateUser.
func CreateUserHandler(adm identity.Administrator) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		CreateUser(res, req, adm)
	}
}

// UpdateUser - изменение имени, роли и профиля учетной записи.
func UpdateUser(res http.ResponseWriter, req *http.Request, adm identity.Administrator) {
	defer req.Body.Close()

	var upd identity.AccountUpdate
	if err := json.NewDecoder(req.Body).Decode(&upd); err != nil {
		auth.WriteJSONError(res, http.StatusBadRequest, MessageInvalidBody)
		return
	}

	accountID := chi.URLParam(req, "id")
	acc, err := adm.Update(req.Context(), accountID, upd)
	if err != nil {
		writeError(res, req, err)
		return
	}
	logger.ServerLog.Info("account updated by administrator", zap.String("user id", acc.ID),
		zap.String("role", acc.Role), zap.String("actor", actorID(req)))
	writeJSON(res, http.StatusOK, acc.Public())
}

// UpdateUserHandler - обертка над функцией UpdateUser.
func UpdateUserHandler(adm identity.Administrator) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		UpdateUser(res, req, adm)
	}
}

// DeleteUser - удаление учетной записи администратором.
func DeleteUser(res http.ResponseWriter, req *http.Request, adm identity.Administrator) {
	accountID := chi.URLParam(req, "id")
	if err := adm.Delete(req.Context(), actorID(req), accountID); err != nil {
		writeError(res, req, err)
		return
	}
	logger.ServerLog.Info("account deleted by administrator", zap.String("user id", accountID), zap.String("actor", actorID(req)))
	writeJSON(res, http.StatusOK, MessageResponse{Message: "User deleted"})
}

// DeleteUserHandler - обертка над функцией DeleteUser.
func DeleteUserHandler(adm identity.Administrator) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		DeleteUser(res, req, adm)
	}
}

func actorID(req *http.Request) string {
	claim, _ := auth.ClaimFromContext(req.Context())
	return claim.ID
}
