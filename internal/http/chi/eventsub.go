package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/twitch-relay/eventsub"
)

/* HTTP layer DTOs for the EventSub endpoint
 * Separate from domain entities to avoid leaking internal structure
 */

type subscriptionResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Type      string            `json:"type"`
	Version   string            `json:"version"`
	Condition map[string]string `json:"condition"`
	Transport transportResponse `json:"transport"`
	CreatedAt string            `json:"created_at,omitempty"`
	Cost      int               `json:"cost"`
}

type transportResponse struct {
	Method   string `json:"method"`
	Callback string `json:"callback,omitempty"`
}

func newSubscriptionResponse(sub eventsub.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		ID:        sub.ID,
		Status:    sub.Status,
		Type:      sub.Type,
		Version:   sub.Version,
		Condition: sub.Condition,
		Transport: transportResponse{
			Method:   sub.Transport.Method,
			Callback: sub.Transport.Callback,
		},
		Cost: sub.Cost,
	}
	if !sub.CreatedAt.IsZero() {
		resp.CreatedAt = sub.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

// getSubscription handles GET ?action=&type=
func getSubscription(service eventsub.UseCase, callbackURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		callback := callbackURL
		if callback == "" {
			callback = requestURL(r)
		}

		sub, err := service.Manage(r.Context(), query.Get("action"), query.Get("type"), callback)
		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newSubscriptionResponse(sub)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// postNotification handles POST deliveries
func postNotification(service eventsub.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The signature covers the raw bytes, read them untouched
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result, err := service.Dispatch(r.Context(), eventsub.NewNotification(r.Header, body))
		if err != nil {
			writeError(w, r, err)
			return
		}

		if result.ContentType != "" {
			w.Header().Set("Content-Type", result.ContentType)
		}
		w.WriteHeader(result.StatusCode)
		if len(result.Body) > 0 {
			w.Write(result.Body)
		}
	})
}

// writeError writes the client message as is, without a trailing newline
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := eventsub.HTTPError(err)

	oplog := httplog.LogEntry(r.Context())
	oplog.Warn().Err(err).Int("status", code).Msg("eventsub request failed")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

// requestURL rebuilds the public URL the request arrived at
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host + r.URL.Path
}
