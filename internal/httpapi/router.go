package httpapi

// #region imports
import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// #endregion

// #region router

// NewRouter builds the REST + WebSocket route tree.
func NewRouter(h *Handler, ws *WSHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/focus", func(r chi.Router) {
			r.Post("/analyze", h.Analyze)
			r.Post("/plan", h.GeneratePlan)
			r.Post("/plan/adapt", h.AdaptPlan)
		})
		r.Route("/antigravity", func(r chi.Router) {
			r.Get("/decisions/{userID}", h.Decisions)
			r.Get("/events/{userID}", h.Events)
			r.Get("/teaching-readiness/{userID}", h.TeachingReadiness)
			r.Get("/student-model/{userID}", h.StudentModel)
		})
	})

	r.Get("/ws/focus/{userID}", ws.ServeHTTP)

	return r
}

// #endregion router
