package mojang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Amund211/mojangid/internal/constants"
	"github.com/Amund211/mojangid/internal/domain"
	"github.com/Amund211/mojangid/internal/logging"
	"github.com/Amund211/mojangid/internal/reporting"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// How a 204 response is treated. The lookups keyed by a name or uuid get 204 for unknown keys.
type noContentHandling bool

const (
	noContentIsSuccess  noContentHandling = false
	noContentIsNotFound noContentHandling = true
)

// Performs a GET request and returns the body of a successful response.
//
// Errors wrap domain.ErrTransport or domain.ErrHTTPStatus.
func (c *Client) get(ctx context.Context, operation string, url string, noContent noContentHandling) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "Mojang.get")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err := fmt.Errorf("%w: failed to create request: %w", domain.ErrTransport, err)
		reporting.Report(ctx, err)
		return nil, err
	}

	if !c.limiter.Consume(req.URL.Host) {
		c.metrics.recordRequest(ctx, operation, "rate_limited")
		logging.FromContext(ctx).WarnContext(ctx, "Did not send request due to rate limiting", "host", req.URL.Host)
		return nil, fmt.Errorf("%w: %w: too many requests to %s", domain.ErrTransport, domain.ErrTemporarilyUnavailable, req.URL.Host)
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.recordRequest(ctx, operation, "transport_error")
		err := fmt.Errorf("%w: failed to send request: %w", domain.ErrTransport, err)
		reporting.Report(ctx, err)
		return nil, err
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.recordRequest(ctx, operation, "transport_error")
		err := fmt.Errorf("%w: failed to read response body: %w", domain.ErrTransport, err)
		reporting.Report(ctx, err)
		return nil, err
	}

	c.metrics.recordRequest(ctx, operation, strconv.Itoa(resp.StatusCode))

	if err := checkStatus(resp.StatusCode, noContent); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Pass through error but don't report
			return nil, err
		}
		reporting.Report(ctx, err, map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(resp.StatusCode),
		})
		return nil, err
	}

	return data, nil
}

func checkStatus(statusCode int, noContent noContentHandling) error {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w: mojang API returned status code %d", domain.ErrHTTPStatus, domain.ErrTemporarilyUnavailable, statusCode)
	}

	// The API has answered unknown names with both of these
	if statusCode == http.StatusNotFound || (statusCode == http.StatusNoContent && noContent == noContentIsNotFound) {
		return fmt.Errorf("%w: %w: mojang API returned status code %d", domain.ErrHTTPStatus, domain.ErrNotFound, statusCode)
	}

	if statusCode < 200 || statusCode > 299 {
		return fmt.Errorf("%w: mojang API returned status code %d", domain.ErrHTTPStatus, statusCode)
	}

	return nil
}

// Reports unexpected parse failures along with the raw response
func reportParseError(ctx context.Context, err error, data []byte) {
	reporting.Report(ctx, err, map[string]string{
		"data": string(data),
	})
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
