package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/scambait/honeypot/pkg/logging"
)

var transportTracer = otel.Tracer("honeypot/callback-transport")

// Transport delivers a report to the monitoring endpoint.
type Transport interface {
	Deliver(ctx context.Context, report *Report) error
}

// HTTPTransport posts reports as JSON. It is fire-and-forget from the
// orchestrator's perspective: delivery failures are returned for
// logging but never influence the reply path.
type HTTPTransport struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewHTTPTransport builds the transport with a bounded timeout.
func NewHTTPTransport(url string, timeout time.Duration, logger *logging.Logger) *HTTPTransport {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPTransport{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Deliver posts the report and checks for a 2xx acknowledgment.
func (t *HTTPTransport) Deliver(ctx context.Context, report *Report) error {
	ctx, span := transportTracer.Start(ctx, "callback.deliver")
	defer span.End()

	body, err := json.Marshal(report)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("callback: failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("callback: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("callback: delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("callback: endpoint returned HTTP %d", resp.StatusCode)
		span.RecordError(err)
		return err
	}

	t.logger.Info("callback delivered",
		"session_id", report.SessionID,
		"turn", report.TotalMessagesExchanged,
		"status", resp.StatusCode,
	)
	return nil
}
