package identify

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"fishlog-identify/internal/common/errors"
	"fishlog-identify/internal/common/logger"
	"fishlog-identify/internal/common/middleware"
	"fishlog-identify/internal/common/validation"
	"fishlog-identify/internal/models"
)

// RequestSchema is the JSON schema of the inbound body.
const RequestSchema = `{
	"type": "object",
	"properties": {
		"image": {"type": "string", "minLength": 1}
	},
	"required": ["image"]
}`

const defaultMaxBodyBytes = 15 << 20

// ReadinessCheck reports the state of one dependency.
type ReadinessCheck func(ctx context.Context) error

// Handler serves the identification HTTP endpoints.
type Handler struct {
	config    *Config
	service   *Service
	validator *validation.Validator
	errors    *errors.ErrorHandler
	logger    logger.Logger
}

// NewHandler creates a Handler. A zero MaxBodyBytes takes the 15 MiB default.
func NewHandler(config *Config, service *Service, log logger.Logger) *Handler {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		config:    config,
		service:   service,
		validator: validation.MustValidator(RequestSchema),
		errors:    errors.NewErrorHandler(log),
		logger:    log,
	}
}

// Identify serves POST /identify.
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	if len(h.config.MissingCredentials) > 0 {
		h.errors.Write(w, r, errors.NewConfigurationMissingError(h.config.MissingCredentials))
		return
	}

	req, err := h.decode(w, r)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	resp, err := h.service.Identify(r.Context(), req.Image)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*models.IdentifyRequest, error) {
	body := http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.NewInvalidRequestError(fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
		}
		return nil, errors.NewInvalidRequestError("unreadable body")
	}

	result, err := h.validator.Validate(raw)
	if err != nil {
		return nil, errors.NewInvalidRequestError("body is not valid JSON")
	}
	if !result.Valid {
		if result.HasErrors("image") || result.HasErrors("(root)") {
			return nil, errors.NewMissingImageError()
		}
		return nil, errors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var req models.IdentifyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, errors.NewInvalidRequestError("body is not valid JSON")
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, errors.NewMissingImageError()
	}
	return &req, nil
}

// Health serves GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready serves GET /ready. A failing check is reported but never turns
// the response into an error: a directory outage only degrades the
// pipeline.
func (h *Handler) Ready(checks map[string]ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		var (
			mu   sync.Mutex
			g    errgroup.Group
			deps = make(map[string]string, len(checks))
		)
		for name, check := range checks {
			g.Go(func() error {
				state := "ok"
				if err := check(ctx); err != nil {
					state = "unavailable: " + err.Error()
				}
				mu.Lock()
				deps[name] = state
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		errors.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":       "ready",
			"configured":   len(h.config.MissingCredentials) == 0,
			"dependencies": deps,
		})
	}
}

// RouterOptions carries optional collaborators of the router.
type RouterOptions struct {
	RateLimiter *middleware.RateLimiter
	Checks      map[string]ReadinessCheck
}

// NewRouter wires every endpoint. Wrong methods on /identify are answered
// with a JSON 405.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.errors.Write(w, req, errors.NewMethodNotAllowedError(req.Method))
	})

	var identify http.Handler = http.HandlerFunc(h.Identify)
	if opts.RateLimiter != nil {
		identify = opts.RateLimiter.Middleware(h.errors.Write)(identify)
	}
	r.Handle("/identify", identify).Methods(http.MethodPost)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Ready(opts.Checks)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return middleware.RequestID(r)
}
