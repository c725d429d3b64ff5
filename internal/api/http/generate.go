package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/partypulse/partygen/internal/api/respond"
	"github.com/partypulse/partygen/internal/llm"
	"github.com/partypulse/partygen/internal/model"
)

// Generator is the pipeline surface the handler depends on.
type Generator interface {
	Generate(ctx context.Context, req *model.GenerationRequest, clientID string) (*model.GenerationResult, error)
}

// GenerateHandler handles POST /api/generate
type GenerateHandler struct {
	svc Generator
}

// NewGenerateHandler instantiates the handler with its service.
func NewGenerateHandler(svc Generator) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// generateRequest is the inbound JSON body. Optional fields are pointers so
// absent values can be defaulted without masking explicit zeros.
type generateRequest struct {
	Mode        string  `json:"mode"`
	Style       string  `json:"style"`
	Locale      *string `json:"locale,omitempty"`
	Count       *int    `json:"count,omitempty"`
	AudienceAge *string `json:"audienceAge,omitempty"`
	Intensity   *string `json:"intensity,omitempty"`
	Seed        *int    `json:"seed,omitempty"`
}

// HandleGenerate decodes the request, applies defaults and runs the pipeline.
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body", "INVALID_BODY")
		return
	}

	req := &model.GenerationRequest{
		Mode:        model.Mode(body.Mode),
		Style:       body.Style,
		Locale:      "zh-CN",
		Count:       1,
		AudienceAge: "adult",
		Intensity:   "medium",
		Seed:        1,
	}
	if body.Locale != nil {
		req.Locale = *body.Locale
	}
	if body.Count != nil {
		req.Count = *body.Count
	}
	if body.AudienceAge != nil {
		req.AudienceAge = *body.AudienceAge
	}
	if body.Intensity != nil {
		req.Intensity = *body.Intensity
	}
	if body.Seed != nil {
		req.Seed = *body.Seed
	}

	result, err := h.svc.Generate(r.Context(), req, clientIP(r))
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// writeGenerateError maps pipeline errors onto status codes and stable
// machine-readable codes so callers can tell failure classes apart.
func writeGenerateError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		respond.WriteBadRequest(w, ve.Message, ve.Kind)
		return
	}
	if errors.Is(err, model.ErrRateLimited) {
		respond.WriteTooManyRequests(w, "too many requests, slow down")
		return
	}

	var ce *llm.ConfigError
	if errors.As(err, &ce) {
		respond.WriteInternalError(w, "LLM service misconfigured, contact the operator", "LLM_CONFIG_ERROR")
		return
	}
	var pe *llm.ParseError
	if errors.As(err, &pe) {
		respond.WriteInternalError(w, "model response was unusable, try again", "LLM_PARSE_ERROR")
		return
	}
	if errors.Is(err, model.ErrEmptyResponse) {
		respond.WriteInternalError(w, "model returned no content, try again", "LLM_PARSE_ERROR")
		return
	}
	var te *llm.TransportError
	if errors.As(err, &te) {
		switch te.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			respond.WriteInternalError(w, "LLM service authentication failed", "LLM_AUTH_ERROR")
		case http.StatusTooManyRequests:
			respond.WriteInternalError(w, "LLM service rate limit hit, try again later", "LLM_RATE_LIMIT")
		default:
			respond.WriteInternalError(w, "LLM service unavailable, try again later", "LLM_SERVICE_ERROR")
		}
		return
	}

	log.Error().Err(err).Msg("generate failed")
	respond.WriteInternalError(w, "generation failed", "GENERATION_FAILED")
}

// clientIP extracts the caller identity for rate limiting: first hop of
// X-Forwarded-For, then X-Real-IP, then the connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
