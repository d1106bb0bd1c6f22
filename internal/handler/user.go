package handler

import (
	"net/http"

	"github.com/cradoe/banking-api/internal/context"
	"github.com/cradoe/banking-api/internal/request"
	"github.com/cradoe/banking-api/internal/response"
	"github.com/cradoe/banking-api/internal/service"
)

type profileUpdateInput struct {
	Username         *string `json:"username"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Email            *string `json:"email"`
	PhoneNumber      *string `json:"phone_number"`
	PermanentAddress *string `json:"permanent_address"`
	DateOfBirth      *string `json:"date_of_birth"`
	Password         *string `json:"password"`
	Role             *string `json:"role"`
}

func (in profileUpdateInput) update() service.ProfileUpdate {
	return service.ProfileUpdate{
		Username:         in.Username,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		PermanentAddress: in.PermanentAddress,
		DateOfBirth:      in.DateOfBirth,
		Password:         in.Password,
		Role:             in.Role,
	}
}

func (h *RouteHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	account := context.ContextGetAuthenticatedAccount(r)

	err := response.JSONOkResponse(w, newAccountView(account), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var input profileUpdateInput

	err := request.DecodeJSONStrict(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	account, err := h.Service.UpdateSelf(r.Context(), context.ContextGetAuthenticatedAccount(r), input.update())
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newAccountView(account), "Profile updated successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
