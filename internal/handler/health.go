package handler

import (
	"net/http"

	"github.com/cradoe/banking-api/internal/response"
	"github.com/cradoe/banking-api/internal/version"
)

func (h *RouteHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Ping(r.Context()); err != nil {
		h.ErrHandler.ReportServerError(r, err)
		err = response.JSONErrorResponse(w, nil, "Database unavailable", http.StatusServiceUnavailable, nil)
		if err != nil {
			h.ErrHandler.ReportServerError(r, err)
		}
		return
	}

	data := map[string]any{
		"status":  "OK",
		"version": version.Get(),
	}

	err := response.JSONOkResponse(w, data, "Up and grateful", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
