package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// UserAgent is the User-Agent header value used for all HTTP requests
	UserAgent = "discordnotify/1.0"
	// DefaultHTTPTimeout bounds a single webhook call
	DefaultHTTPTimeout = 5 * time.Second
)

// HTTPNotifier provides common functionality for HTTP-based notifiers
type HTTPNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewHTTPNotifier creates a new HTTP notifier with the given webhook URL and optional HTTP client
func NewHTTPNotifier(webhookURL string, httpClient *http.Client, logger *logrus.Entry) *HTTPNotifier {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultHTTPTimeout,
		}
	}

	return &HTTPNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// PostJSON posts payload as JSON to the webhook URL and returns the response status code.
// The response body is drained and discarded.
func (n *HTTPNotifier) PostJSON(ctx context.Context, payload interface{}) (int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	n.logger.WithField("bytes", len(jsonData)).Debug("Sending HTTP notification")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			n.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	// Drain so the connection can be reused
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		n.logger.WithError(err).Debug("Failed to drain response body")
	}

	return resp.StatusCode, nil
}
