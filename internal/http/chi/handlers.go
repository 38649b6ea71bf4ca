package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/twitch-relay/eventsub"
)

// Options configures the router
type Options struct {
	// CallbackURL is registered upstream on subscribe; derived from the request when empty
	CallbackURL string
	// Metrics serves /metrics when set
	Metrics http.Handler
}

// Handlers sets up the EventSub routes: GET manages subscriptions, POST receives deliveries
func Handlers(ctx context.Context, service eventsub.UseCase, opts Options) *chi.Mux {
	logger := httplog.NewLogger("twitch-relay", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	for _, path := range []string{"/", "/webhook"} {
		r.Method(http.MethodGet, path, getSubscription(service, opts.CallbackURL))
		r.Method(http.MethodPost, path, postNotification(service))
	}

	return r
}
