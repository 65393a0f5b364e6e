package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"grokmcp/model"

	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
)

// mapError converts an SDK error into the model.Error taxonomy. Every vendor
// failure is an UpstreamError carrying the vendor's message.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return model.UpstreamError(op, apierr.StatusCode, vendorMessage(apierr), err)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return model.UpstreamError(op, 0, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return model.UpstreamError(op, 0, "request cancelled", err)
	}

	return model.UpstreamError(op, 0, err.Error(), err)
}

// mapStoredError is mapError for calls keyed by a stored response id: an
// unknown or expired id becomes NotFound.
func mapStoredError(op, responseID string, err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) && isMissingResponse(apierr) {
		return model.NotFound(op, responseID, err)
	}
	return mapError(op, err)
}

func isMissingResponse(apierr *openai.Error) bool {
	switch apierr.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return true
	case http.StatusBadRequest:
		msg := strings.ToLower(vendorMessage(apierr))
		return strings.Contains(msg, "not found") || strings.Contains(msg, "expired")
	}
	return false
}

// vendorMessage extracts the human-readable message. xAI bodies look like
// {"code": "...", "error": "..."} while OpenAI-shaped ones nest it under
// error.message; fall back to the raw body.
func vendorMessage(apierr *openai.Error) string {
	if apierr.Message != "" {
		return apierr.Message
	}

	raw := apierr.RawJSON()
	if v := gjson.Parse(raw); v.Type == gjson.String && v.String() != "" {
		return v.String()
	}
	for _, path := range []string{"error.message", "error", "message", "detail"} {
		if v := gjson.Get(raw, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}

	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	return http.StatusText(apierr.StatusCode)
}
