package handler

import (
	"net/http"

	"github.com/cradoe/banking-api/internal/context"
	"github.com/cradoe/banking-api/internal/request"
	"github.com/cradoe/banking-api/internal/response"
)

const activityPageSize = 50

func (h *RouteHandler) HandleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	query := retrieveUrlQueryValues(r)

	accounts, err := h.Service.AdminListAccounts(r.Context(), context.ContextGetAuthenticatedAccount(r), query.Limit, query.Offset)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, newAccountView(&accounts[i]))
	}

	err = response.JSONOkResponse(w, views, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var input profileUpdateInput

	err := request.DecodeJSONStrict(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	account, err := h.Service.AdminUpdateAccount(r.Context(), context.ContextGetAuthenticatedAccount(r), accountID, input.update())
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newAccountView(account), "Account updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminDeactivateUser(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err := h.Service.AdminDeactivate(r.Context(), context.ContextGetAuthenticatedAccount(r), accountID)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, nil, "Account deactivated", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminUnblockUser(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	account, err := h.Service.AdminUnblock(r.Context(), context.ContextGetAuthenticatedAccount(r), accountID)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newAccountView(account), "Account unblocked", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminUserActivity(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	logs, err := h.Service.AdminAccountActivity(r.Context(), context.ContextGetAuthenticatedAccount(r), accountID, activityPageSize)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newActivityViews(logs), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
