package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cradoe/banking-api/internal/context"
	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/request"
	"github.com/cradoe/banking-api/internal/response"
	"github.com/cradoe/banking-api/internal/service"
)

func (h *RouteHandler) HandleGetKYC(w http.ResponseWriter, r *http.Request) {
	account := context.ContextGetAuthenticatedAccount(r)

	err := response.JSONOkResponse(w, newKYCView(account), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleSubmitKYC accepts a multipart form with aadhaar, pan and a document file.
func (h *RouteHandler) HandleSubmitKYC(w http.ResponseWriter, r *http.Request) {
	actor := context.ContextGetAuthenticatedAccount(r)

	// approved is terminal, so the upload is not read at all
	if actor.KYCStatus == models.KYCStatusApproved {
		h.ErrHandler.ServiceError(w, r, service.ErrKYCAlreadyApproved)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	err := r.ParseMultipartForm(h.MaxUploadBytes)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			h.ErrHandler.BadRequest(w, r, fmt.Errorf("document must not be larger than %d bytes", maxBytesError.Limit))
			return
		}
		h.ErrHandler.BadRequest(w, r, errors.New("invalid request data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	submission := service.KYCSubmission{
		Aadhaar: r.FormValue("aadhaar"),
		Pan:     r.FormValue("pan"),
	}

	// a missing file is left for the service to report after its account checks
	file, fileHeader, err := r.FormFile("document")
	if err == nil {
		defer file.Close()
		submission.Document = file
		submission.DocumentName = fileHeader.Filename
	}

	account, err := h.Service.SubmitKYC(r.Context(), actor, submission)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newKYCView(account), "KYC submitted for review", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAdminDecideKYC(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	var input struct {
		Decision string `json:"decision"`
	}

	err := request.DecodeJSONStrict(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	account, err := h.Service.AdjudicateKYC(r.Context(), context.ContextGetAuthenticatedAccount(r), accountID, input.Decision)
	if err != nil {
		h.ErrHandler.ServiceError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newKYCView(account), "KYC "+account.KYCStatus, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
