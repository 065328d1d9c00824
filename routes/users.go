package routes

import (
	"net/http"
	"time"

	"github.com/alxsaunders/FutureMove-sub003/controllers/achievements"
	"github.com/alxsaunders/FutureMove-sub003/controllers/auth"
	"github.com/alxsaunders/FutureMove-sub003/controllers/users"
	"github.com/alxsaunders/FutureMove-sub003/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers all user-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Rate limiter for login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Rate limiter per session: 120 reads and 60 writes per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	authed := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", authed(auth.LogoutHandler)).Methods(http.MethodPost)

	// Profile
	api.Handle("/users/info", authed(users.InfoHandler)).Methods(http.MethodGet)
	api.Handle("/users/profile", authed(users.UpdateProfileHandler)).Methods(http.MethodPut)
	api.Handle("/users/profile/image", authed(users.DeleteProfileImageHandler)).Methods(http.MethodDelete)

	// Streaks
	api.Handle("/users/streak", authed(users.GetStreakHandler)).Methods(http.MethodGet)

	// Goals
	api.Handle("/goals", authed(users.GoalListHandler)).Methods(http.MethodGet)
	api.Handle("/goals", authed(users.CreateGoalHandler)).Methods(http.MethodPost)
	api.Handle("/goals/{id:[0-9]+}", authed(users.GetGoalHandler)).Methods(http.MethodGet)
	api.Handle("/goals/{id:[0-9]+}", authed(users.UpdateGoalHandler)).Methods(http.MethodPut)
	api.Handle("/goals/{id:[0-9]+}", authed(users.DeleteGoalHandler)).Methods(http.MethodDelete)
	api.Handle("/goals/{id:[0-9]+}/progress", authed(users.UpdateGoalProgressHandler)).Methods(http.MethodPut)

	// Sub-goals
	api.Handle("/goals/{id:[0-9]+}/subgoals", authed(users.CreateSubGoalHandler)).Methods(http.MethodPost)
	api.Handle("/subgoals/{id:[0-9]+}", authed(users.UpdateSubGoalHandler)).Methods(http.MethodPut)
	api.Handle("/subgoals/{id:[0-9]+}", authed(users.DeleteSubGoalHandler)).Methods(http.MethodDelete)

	// Routines
	api.Handle("/routines", authed(users.RoutineListHandler)).Methods(http.MethodGet)
	api.Handle("/routines", authed(users.CreateRoutineHandler)).Methods(http.MethodPost)
	api.Handle("/routines/{id:[0-9]+}", authed(users.UpdateRoutineHandler)).Methods(http.MethodPut)
	api.Handle("/routines/{id:[0-9]+}", authed(users.DeleteRoutineHandler)).Methods(http.MethodDelete)
	api.Handle("/routines/{id:[0-9]+}/complete", authed(users.CompleteRoutineHandler)).Methods(http.MethodPost)

	// Achievements. The structure endpoint is public, everything else is
	// scoped to the authenticated user.
	api.Handle("/achievements/structure", userLimiter.Middleware(http.HandlerFunc(achievements.StructureHandler))).Methods(http.MethodGet)
	api.Handle("/achievements/users/{userId}/achievements", authed(achievements.ListHandler)).Methods(http.MethodGet)
	api.Handle("/achievements/users/{userId}/achievements/check", authed(achievements.CheckHandler)).Methods(http.MethodPost)
	api.Handle("/achievements/users/{userId}/achievements/summary", authed(achievements.SummaryHandler)).Methods(http.MethodGet)
	api.Handle("/achievements/users/{userId}/achievements/category/{category}", authed(achievements.CategoryHandler)).Methods(http.MethodGet)

	// Community feed
	api.Handle("/posts", authed(users.PostFeedHandler)).Methods(http.MethodGet)
	api.Handle("/posts", authed(users.CreatePostHandler)).Methods(http.MethodPost)
	api.Handle("/posts/{id:[0-9]+}", authed(users.DeletePostHandler)).Methods(http.MethodDelete)
	api.Handle("/posts/{id:[0-9]+}/like", authed(users.TogglePostLikeHandler)).Methods(http.MethodPost)
	api.Handle("/posts/{id:[0-9]+}/comments", authed(users.ListCommentsHandler)).Methods(http.MethodGet)
	api.Handle("/posts/{id:[0-9]+}/comments", authed(users.CreateCommentHandler)).Methods(http.MethodPost)
	api.Handle("/comments/{id:[0-9]+}", authed(users.DeleteCommentHandler)).Methods(http.MethodDelete)

	// Community requests
	api.Handle("/community-requests", authed(users.CreateCommunityRequestHandler)).Methods(http.MethodPost)
	api.Handle("/community-requests", authed(users.ListCommunityRequestsHandler)).Methods(http.MethodGet)
}
