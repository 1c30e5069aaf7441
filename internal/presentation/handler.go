package presentation

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vertexinsure/insurance-connector/internal/application"
	"github.com/vertexinsure/insurance-connector/internal/logger"
	"github.com/vertexinsure/insurance-connector/internal/presentation/helpers"
	"github.com/vertexinsure/insurance-connector/internal/signature"
)

// SignatureHeader carries the sender's HMAC digest. Protocol constant agreed
// with Shopify, not configurable.
const SignatureHeader = "X-Shopify-Hmac-Sha256"

// MaxBodySize caps webhook bodies at 1 MiB. Shopify order payloads are a few
// KiB; anything near the cap is not a legitimate delivery.
const MaxBodySize = 1 << 20

type WebhookHandler struct {
	svc      *application.ManifestService
	verifier *signature.Verifier
}

func NewWebhookHandler(svc *application.ManifestService, verifier *signature.Verifier) *WebhookHandler {
	return &WebhookHandler{svc: svc, verifier: verifier}
}

func (h *WebhookHandler) Register(r chi.Router) {
	r.Get("/", h.Health)
	r.Post("/webhook/orders/create", h.OrderCreated)
	r.Get("/manifests/{id}", h.GetManifest)
}

func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "vertex-insurance-connector",
	})
}

// OrderCreated is the webhook entry point: verify the HMAC over the raw body,
// then hand the untouched bytes to the ingestor. The body must be captured
// before any JSON decoding — the signature covers the exact byte stream.
func (h *WebhookHandler) OrderCreated(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		helpers.HttpError(w, http.StatusInternalServerError, "unexpected_fault")
		return
	}
	if len(rawBody) > MaxBodySize {
		helpers.HttpError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	// Missing header and wrong signature get the same response: the sender
	// must not learn which check failed.
	if !h.verifier.Verify(rawBody, r.Header.Get(SignatureHeader)) {
		logger.Warn("webhook rejected", "reason", "authentication")
		helpers.HttpError(w, http.StatusUnauthorized, "authentication_failure")
		return
	}

	id, err := h.svc.Ingest(r.Context(), rawBody)
	switch {
	case err == nil:
	case errors.Is(err, application.ErrMalformedPayload):
		helpers.HttpError(w, http.StatusBadRequest, "malformed_payload")
		return
	case errors.Is(err, application.ErrInvalidPayload):
		helpers.HttpError(w, http.StatusBadRequest, "invalid_payload")
		return
	case errors.Is(err, application.ErrPersistence):
		logger.Error("manifest insert failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "persistence_failure")
		return
	default:
		logger.Error("webhook ingestion fault", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "unexpected_fault")
		return
	}

	logger.Info("order manifest persisted", "database_id", id)
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "order queued for insurance manifest",
		"database_id": id,
	})
}

// GetManifest reads back a persisted manifest by its identifier.
func (h *WebhookHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	m, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("manifest lookup failed", "id", id, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "persistence_failure")
		return
	}
	if m == nil {
		helpers.HttpError(w, http.StatusNotFound, "not_found")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}
