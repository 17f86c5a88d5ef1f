package logging

import (
	"log/slog"
	"net/http"
	"time"
)

type loggingTransport struct {
	base http.RoundTripper
}

// Logs every outgoing request with the logger from the request context
func NewLoggingTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base}
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	start := time.Now()

	resp, err := t.base.RoundTrip(r)

	logger := FromContext(ctx).With(
		slog.String("method", r.Method),
		slog.String("host", r.URL.Host),
		slog.String("path", r.URL.Path),
		slog.Int64("durationMs", time.Since(start).Milliseconds()),
	)
	if err != nil {
		logger.WarnContext(ctx, "Outgoing request failed", slog.String("error", err.Error()))
		return resp, err
	}

	logger.InfoContext(ctx, "Outgoing request", slog.Int("status", resp.StatusCode))
	return resp, nil
}
