package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"greenpass/internal/certificate"
	"greenpass/internal/validator"
	"greenpass/pkg/platform/httputil"
	"greenpass/pkg/requestcontext"
)

// Service defines the validator operations exposed over HTTP.
//
//go:generate mockgen -source=handler.go -destination=mocks/validator-mocks.go -package=mocks Service
type Service interface {
	Validate(ctx context.Context, c *certificate.Certificate, mode validator.Mode) (*validator.Response, error)
	CheckRules(ctx context.Context, c *certificate.Certificate, mode validator.Mode) (*validator.Result, error)
	CheckSignature(ctx context.Context, c *certificate.Certificate) (bool, error)
}

// Handler wires validation endpoints to the validator service.
type Handler struct {
	service     Service
	logger      *slog.Logger
	defaultMode validator.Mode
}

// New constructs a validation handler. defaultMode applies to requests
// without a mode.
func New(service Service, logger *slog.Logger, defaultMode validator.Mode) *Handler {
	if defaultMode == "" {
		defaultMode = validator.ModeNormal
	}
	return &Handler{service: service, logger: logger, defaultMode: defaultMode}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/validate", h.HandleValidate)
	r.Post("/v1/validate/rules", h.HandleCheckRules)
	r.Post("/v1/validate/signature", h.HandleCheckSignature)
}

// HandleValidate handles POST /v1/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	mode := req.ModeOr(h.defaultMode)

	resp, err := h.service.Validate(ctx, req.Certificate, mode)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation failed",
			"request_id", requestID,
			"mode", mode,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "validation served",
		"request_id", requestID,
		"mode", mode,
		"code", resp.Code,
		"client", requestcontext.Client(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleCheckRules handles POST /v1/validate/rules.
func (h *Handler) HandleCheckRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CheckRules(ctx, req.Certificate, req.ModeOr(h.defaultMode))
	if err != nil {
		h.logger.ErrorContext(ctx, "rule check failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// SignatureResponse is returned by POST /v1/validate/signature.
type SignatureResponse struct {
	Verified bool `json:"verified"`
}

// HandleCheckSignature handles POST /v1/validate/signature.
func (h *Handler) HandleCheckSignature(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	verified, err := h.service.CheckSignature(ctx, req.Certificate)
	if err != nil {
		h.logger.ErrorContext(ctx, "signature check failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SignatureResponse{Verified: verified})
}
