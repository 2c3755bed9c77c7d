package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type RouterConfig struct {
	AllowedOrigins []string
	// access log destination; nil disables it
	AccessLog io.Writer
}

// NewRouter wires the routes behind the gorilla middleware chain. The access
// log is outermost and panic recovery innermost.
func NewRouter(handler *TryOnHandler, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	// full paths on the root router so a wrong method answers 405, not 404
	r.HandleFunc("/api/try-on", handler.HandleTryOn).Methods(http.MethodPost)
	r.HandleFunc("/api/measurements", handler.HandleMeasurements).Methods(http.MethodPost)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(r)

	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)

	if cfg.AccessLog != nil {
		h = handlers.CombinedLoggingHandler(cfg.AccessLog, h)
	}

	return h
}

// recoveryLogger routes recovered handler panics to slog.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("handler panic recovered", "detail", v)
}
