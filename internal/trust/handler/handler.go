package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"greenpass/internal/validator/ports"
	"greenpass/pkg/platform/httputil"
	"greenpass/pkg/platform/middleware/adminauth"
	"greenpass/pkg/requestcontext"
)

// Service defines the trust store maintenance operations.
//
//go:generate mockgen -source=handler.go -destination=mocks/trust-mocks.go -package=mocks Service
type Service interface {
	ReplaceRules(ctx context.Context, rules []ports.Rule) error
	ReplaceKeys(ctx context.Context, keys map[string][]byte) error
	ApplyCRL(ctx context.Context, revoked, deleted []string) error
	CleanCRL(ctx context.Context) error
}

// Handler serves admin endpoints for trust data.
type Handler struct {
	service  Service
	verifier *adminauth.Verifier
	logger   *slog.Logger
}

// New constructs an admin handler. Every route requires a bearer token with
// the trust:write scope.
func New(service Service, verifier *adminauth.Verifier, logger *slog.Logger) *Handler {
	return &Handler{service: service, verifier: verifier, logger: logger}
}

// Register mounts admin routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(adminauth.RequireScope(h.verifier, adminauth.ScopeTrustWrite, h.logger))
		r.Put("/v1/admin/rules", h.HandleReplaceRules)
		r.Put("/v1/admin/keys", h.HandleReplaceKeys)
		r.Post("/v1/admin/crl", h.HandleApplyCRL)
		r.Delete("/v1/admin/crl", h.HandleCleanCRL)
	})
}

// UpdateResponse acknowledges a trust data change.
type UpdateResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

// HandleReplaceRules handles PUT /v1/admin/rules.
func (h *Handler) HandleReplaceRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ReplaceRulesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.ReplaceRules(ctx, req.Rules); err != nil {
		h.logFailure(ctx, "replace rules failed", err)
		httputil.WriteError(w, err)
		return
	}
	h.audit(ctx, "rules_replaced", len(req.Rules))
	httputil.WriteJSON(w, http.StatusOK, UpdateResponse{Status: "replaced", Count: len(req.Rules)})
}

// HandleReplaceKeys handles PUT /v1/admin/keys.
func (h *Handler) HandleReplaceKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ReplaceKeysRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.ReplaceKeys(ctx, req.bytes()); err != nil {
		h.logFailure(ctx, "replace keys failed", err)
		httputil.WriteError(w, err)
		return
	}
	h.audit(ctx, "keys_replaced", len(req.Keys))
	httputil.WriteJSON(w, http.StatusOK, UpdateResponse{Status: "replaced", Count: len(req.Keys)})
}

// HandleApplyCRL handles POST /v1/admin/crl.
func (h *Handler) HandleApplyCRL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ApplyCRLRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.ApplyCRL(ctx, req.Revoked, req.Deleted); err != nil {
		h.logFailure(ctx, "apply crl failed", err)
		httputil.WriteError(w, err)
		return
	}
	h.audit(ctx, "crl_applied", len(req.Revoked)+len(req.Deleted))
	httputil.WriteJSON(w, http.StatusOK, UpdateResponse{Status: "applied", Count: len(req.Revoked) + len(req.Deleted)})
}

// HandleCleanCRL handles DELETE /v1/admin/crl.
func (h *Handler) HandleCleanCRL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.CleanCRL(ctx); err != nil {
		h.logFailure(ctx, "clean crl failed", err)
		httputil.WriteError(w, err)
		return
	}
	h.audit(ctx, "crl_cleaned", 0)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"subject", requestcontext.Subject(ctx),
		"error", err,
	)
}

func (h *Handler) audit(ctx context.Context, action string, count int) {
	h.logger.InfoContext(ctx, "trust data changed",
		"action", action,
		"count", count,
		"request_id", requestcontext.RequestID(ctx),
		"subject", requestcontext.Subject(ctx),
	)
}
