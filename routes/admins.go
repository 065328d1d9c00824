package routes

import (
	"net/http"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/controllers/admins"
	"github.com/alxsaunders/FutureMove-sub003/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)

	// Community request moderation
	adminRouter.Handle("/community-requests", http.HandlerFunc(admins.ListRequests)).Methods(http.MethodGet)
	adminRouter.Handle("/community-requests/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveRequest)).Methods(http.MethodPost)
	adminRouter.Handle("/community-requests/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectRequest)).Methods(http.MethodPost)
}
