// file: internal/gateway/handler.go

// Package gateway implements the verification endpoint consulted by the
// reverse proxy's auth_request subrequests. Every inbound request resolves to
// exactly one of two statuses: 200 (accept) or 401 (deny). All deny paths are
// observably identical so a caller learns nothing about which check failed.
package gateway

import (
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pjkundert/hp-admin-crypto/internal/logger"
	"github.com/pjkundert/hp-admin-crypto/internal/metrics"
	"github.com/pjkundert/hp-admin-crypto/internal/payload"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

// Headers set by the proxy on each subrequest. The original URI header carries
// the request-target of the proxied request, not this daemon's own path; the
// signature header carries the admin's detached signature.
const (
	HeaderOriginalURI = "X-Original-URI"
	HeaderSignature   = "X-Hpos-Admin-Signature"
)

// VerificationPath is the single recognized endpoint. Every other path denies,
// indistinguishably from a failed verification.
const VerificationPath = "/"

// Handler decides accept/deny for proxied admin requests. It holds no mutable
// state; the verifier's key is shared read-only across all requests.
type Handler struct {
	logger       *logger.Logger
	metrics      *metrics.Metrics
	verifier     *verify.Verifier
	maxBodyBytes int64
}

// NewHandler creates the verification handler.
func NewHandler(log *logger.Logger, m *metrics.Metrics, verifier *verify.Verifier, maxBodyBytes int64) *Handler {
	return &Handler{
		logger:       log,
		metrics:      m,
		verifier:     verifier,
		maxBodyBytes: maxBodyBytes,
	}
}

// ServeHTTP resolves the request to a decision and writes the empty-body
// status that nginx's auth_request expects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	defer r.Body.Close()

	accepted, reason := h.decide(r)

	outcome := metrics.OutcomeDeny
	status := http.StatusUnauthorized
	if accepted {
		outcome = metrics.OutcomeAccept
		status = http.StatusOK
	}
	w.WriteHeader(status)

	// Log only request descriptors and the coarse reason; payload bytes,
	// signature bytes, and key material must never reach the log.
	h.logger.Debug("authorization decision",
		"requestID", requestID,
		"method", r.Method,
		"originalURI", r.Header.Get(HeaderOriginalURI),
		"outcome", outcome,
		"reason", reason,
		"remoteAddr", r.RemoteAddr)

	if h.metrics != nil {
		h.metrics.IncAuthRequests(outcome, reason)
		h.metrics.ObserveRequestDuration(time.Since(start).Seconds())
	}
}

// decide runs the gateway checks in order; the first failing check determines
// the outcome. Malformed proxy-forwarded input (missing original-URI header,
// non-UTF-8 body) resolves to a deny like every other validation failure, it
// never aborts request handling.
func (h *Handler) decide(r *http.Request) (accepted bool, reason string) {
	if r.URL.Path != VerificationPath {
		return false, metrics.ReasonUnknownPath
	}

	originalURI := r.Header.Get(HeaderOriginalURI)
	if originalURI == "" {
		return false, metrics.ReasonMissingURI
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodyBytes+1))
	if err != nil || int64(len(body)) > h.maxBodyBytes || !utf8.Valid(body) {
		return false, metrics.ReasonBadBody
	}

	signature := r.Header.Get(HeaderSignature)
	if signature == "" {
		return false, metrics.ReasonMissingSignature
	}

	message, err := payload.Canonicalize(r.Method, originalURI, body)
	if err != nil {
		return false, metrics.ReasonBadBody
	}

	verifyStart := time.Now()
	ok := h.verifier.Verify(message, signature)
	if h.metrics != nil {
		h.metrics.ObserveVerificationDuration(time.Since(verifyStart).Seconds())
	}

	if !ok {
		return false, metrics.ReasonBadSignature
	}
	return true, metrics.ReasonVerified
}
