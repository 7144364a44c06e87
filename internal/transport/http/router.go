package http

import (
	"net/http"

	"go.uber.org/zap"
)

// Router sets up HTTP routes
type Router struct {
	trackerHandler *TrackerHandler
	authHandler    *AuthHandler
	authMiddleware *AuthMiddleware
	logger         *zap.Logger
	mux            *http.ServeMux
}

// NewRouter creates a new router. authHandler may be nil when the
// service runs against the local backend.
func NewRouter(trackerHandler *TrackerHandler, authHandler *AuthHandler, authMiddleware *AuthMiddleware, logger *zap.Logger) *Router {
	return &Router{
		trackerHandler: trackerHandler,
		authHandler:    authHandler,
		authMiddleware: authMiddleware,
		logger:         logger,
		mux:            http.NewServeMux(),
	}
}

// Setup configures all routes
func (r *Router) Setup() http.Handler {
	if r.authHandler != nil {
		r.mux.HandleFunc("/api/v1/auth/register", r.authHandler.Register)
		r.mux.HandleFunc("/api/v1/auth/login", r.authHandler.Login)
		r.mux.HandleFunc("/api/v1/auth/logout", r.authMiddleware.Auth(r.authHandler.Logout))
	}

	r.mux.HandleFunc("/api/v1/babies/create", r.authMiddleware.Auth(r.trackerHandler.CreateBaby))
	r.mux.HandleFunc("/api/v1/babies/list", r.authMiddleware.Auth(r.trackerHandler.ListBabies))
	r.mux.HandleFunc("/api/v1/babies/update", r.authMiddleware.Auth(r.trackerHandler.UpdateBaby))
	r.mux.HandleFunc("/api/v1/babies/delete", r.authMiddleware.Auth(r.trackerHandler.DeleteBaby))
	r.mux.HandleFunc("/api/v1/babies/select", r.authMiddleware.Auth(r.trackerHandler.SelectBaby))
	r.mux.HandleFunc("/api/v1/babies/current", r.authMiddleware.Auth(r.trackerHandler.CurrentBaby))

	r.mux.HandleFunc("/api/v1/naps/start", r.authMiddleware.Auth(r.trackerHandler.StartNap))
	r.mux.HandleFunc("/api/v1/naps/end", r.authMiddleware.Auth(r.trackerHandler.EndNap))
	r.mux.HandleFunc("/api/v1/naps/add", r.authMiddleware.Auth(r.trackerHandler.AddNap))
	r.mux.HandleFunc("/api/v1/naps/delete", r.authMiddleware.Auth(r.trackerHandler.DeleteNap))
	r.mux.HandleFunc("/api/v1/naps/list", r.authMiddleware.Auth(r.trackerHandler.ListNaps))
	r.mux.HandleFunc("/api/v1/naps/active", r.authMiddleware.Auth(r.trackerHandler.ActiveNaps))

	r.mux.HandleFunc("/api/v1/feeds/add", r.authMiddleware.Auth(r.trackerHandler.AddFeed))
	r.mux.HandleFunc("/api/v1/feeds/delete", r.authMiddleware.Auth(r.trackerHandler.DeleteFeed))
	r.mux.HandleFunc("/api/v1/feeds/list", r.authMiddleware.Auth(r.trackerHandler.ListFeeds))

	r.mux.HandleFunc("/api/v1/ratings/add", r.authMiddleware.Auth(r.trackerHandler.AddRating))
	r.mux.HandleFunc("/api/v1/ratings/list", r.authMiddleware.Auth(r.trackerHandler.ListRatings))

	r.mux.HandleFunc("/api/v1/summary/today", r.authMiddleware.Auth(r.trackerHandler.TodaySummary))
	r.mux.HandleFunc("/api/v1/summary/week", r.authMiddleware.Auth(r.trackerHandler.WeekSummary))

	r.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = r.mux

	handler = Logging(r.logger)(handler)

	handler = RateLimit(120)(handler)

	return handler
}
