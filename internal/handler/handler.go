package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/cradoe/banking-api/internal/errHandler"
	"github.com/cradoe/banking-api/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouteHandler struct {
	ErrHandler *errHandler.ErrorRepository
	Service    *service.Service
	DB         Pinger
	// MaxUploadBytes caps the multipart body of a KYC submission.
	MaxUploadBytes int64
}

func NewRouteHandler(handler *RouteHandler) *RouteHandler {
	return &RouteHandler{
		ErrHandler:     handler.ErrHandler,
		Service:        handler.Service,
		DB:             handler.DB,
		MaxUploadBytes: handler.MaxUploadBytes,
	}
}

type queryStringValues struct {
	Limit  int
	Offset int
}

func retrieveUrlQueryValues(r *http.Request) *queryStringValues {
	var queryValues = &queryStringValues{}

	// Parse pagination params
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("page")

	// Default pagination values
	offset := 0
	limit := 10

	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}
	queryValues.Limit = limit

	if offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 1 {
			// pages past the addressable range read as empty instead of overflowing
			if parsedOffset-1 > math.MaxInt/limit {
				offset = math.MaxInt
			} else {
				offset = (parsedOffset - 1) * limit
			}
		}
	}
	queryValues.Offset = offset

	return queryValues
}

// accountIDFromPath reads the {id} wildcard. ok is false when it is not a positive integer.
func accountIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
