package app

import (
	"net/http"

	"github.com/cradoe/banking-api/internal/handler"
	"github.com/cradoe/banking-api/internal/middleware"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	mid := middleware.New(app.errorHandler, app.Logger, app.Service, app.Cache, app.Config.LoginRateLimit)

	routeHandler := handler.NewRouteHandler(&handler.RouteHandler{
		ErrHandler:     app.errorHandler,
		Service:        app.Service,
		DB:             app.DB,
		MaxUploadBytes: app.Config.Kyc.MaxUploadBytes,
	})

	mux.HandleFunc("GET /status", routeHandler.HandleHealthCheck)

	mux.Handle("POST /users", mid.RateLimit("register", http.HandlerFunc(routeHandler.HandleAuthRegister)))
	mux.Handle("POST /login", mid.RateLimit("login", http.HandlerFunc(routeHandler.HandleAuthLogin)))

	mux.Handle("GET /users/me", mid.RequireAuthenticatedUser(http.HandlerFunc(routeHandler.HandleGetMe)))
	mux.Handle("PUT /users/me", mid.RequireAuthenticatedUser(http.HandlerFunc(routeHandler.HandleUpdateMe)))
	mux.Handle("GET /users/me/kyc", mid.RequireAuthenticatedUser(http.HandlerFunc(routeHandler.HandleGetKYC)))
	mux.Handle("POST /users/me/kyc", mid.RequireAuthenticatedUser(http.HandlerFunc(routeHandler.HandleSubmitKYC)))

	mux.Handle("GET /admin/users", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminListUsers)))
	mux.Handle("PUT /admin/users/{id}", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminUpdateUser)))
	mux.Handle("DELETE /admin/users/{id}", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminDeactivateUser)))
	mux.Handle("POST /admin/users/{id}/unblock", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminUnblockUser)))
	mux.Handle("POST /admin/users/{id}/kyc", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminDecideKYC)))
	mux.Handle("GET /admin/users/{id}/activity", mid.RequireAdmin(http.HandlerFunc(routeHandler.HandleAdminUserActivity)))

	return mid.LogAccess(mid.RecoverPanic(mid.Authenticate(mux)))
}
