package routes

import (
	"net/http"

	"github.com/voxology/assistant-backend/internal/api/handlers"
	"github.com/voxology/assistant-backend/internal/api/middleware"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler  *handlers.SearchHandler
	verifyHandler  *handlers.VerifyHandler
	bookingHandler *handlers.BookingHandler
	timeHandler    *handlers.TimeHandler
	sseHandler     *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	verifyHandler *handlers.VerifyHandler,
	bookingHandler *handlers.BookingHandler,
	timeHandler *handlers.TimeHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		searchHandler:  searchHandler,
		verifyHandler:  verifyHandler,
		bookingHandler: bookingHandler,
		timeHandler:    timeHandler,
		sseHandler:     sseHandler,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Assistant tool endpoints
	r.mux.HandleFunc("POST /api/tools/search", r.searchHandler.Search)
	r.mux.HandleFunc("POST /api/tools/verify", r.verifyHandler.Verify)
	r.mux.HandleFunc("POST /api/tools/book", r.bookingHandler.Book)
	r.mux.HandleFunc("GET /api/tools/time", r.timeHandler.CurrentTime)

	// Display surface stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/results", r.sseHandler.StreamSearchResults)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflights never hit the tool handlers
	handler = middleware.CORSMiddleware(handler)

	return handler
}
