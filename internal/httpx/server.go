package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

// statusFor maps a backend rejection message to an HTTP status. Backend hanya
// mengirim string error, jadi pemetaan ini best-effort; pesan tetap diteruskan
// apa adanya ke klien.
func statusFor(errMsg string) int {
	low := strings.ToLower(errMsg)
	switch {
	case strings.Contains(low, "access denied"):
		return http.StatusForbidden
	case strings.Contains(low, "not found"):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
