package handler

import (
	"net/http"
	"time"

	"github.com/cradoe/banking-api/internal/request"
	"github.com/cradoe/banking-api/internal/response"
	"github.com/cradoe/banking-api/internal/service"
	"github.com/cradoe/banking-api/internal/validator"
)

// HandleAuthRegister creates a user account. Field rules, password strength and
// uniqueness are all enforced by the account service.
func (h *RouteHandler) HandleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username         string `json:"username"`
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
		Email            string `json:"email"`
		PhoneNumber      string `json:"phone_number"`
		PermanentAddress string `json:"permanent_address"`
		DateOfBirth      string `json:"date_of_birth"`
		Password         string `json:"password"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	account, err := h.Service.Register(r.Context(), service.RegisterInput{
		Profile: service.Profile{
			Username:         input.Username,
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			Email:            input.Email,
			PhoneNumber:      input.PhoneNumber,
			PermanentAddress: input.PermanentAddress,
			DateOfBirth:      input.DateOfBirth,
		},
		Password: input.Password,
	})
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	message := "Account created successfully"

	err = response.JSONCreatedResponse(w, newAccountView(account), message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.NotBlank(input.Password), "Password is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	result, err := h.Service.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	data := map[string]string{
		"auth_token":   result.Token,
		"token_type":   "bearer",
		"token_expiry": result.ExpiresAt.Format(time.RFC3339),
	}
	message := "Login successful"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
