// Package frontend mirrors scoring status to the external front-end service.
// Pushes are best effort: a failed push is reported as false, never as an
// error, so callers can distinguish business failures from mirror failures.
package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Processing statuses mirrored to the front end.
const (
	StatusWorking   = "WORKING"
	StatusProcessed = "PROCESSED"
	StatusError     = "ERROR"
)

// StatusUpdate is the payload pushed to the front end for one application.
type StatusUpdate struct {
	CompanyID        int64  `json:"companyId"`
	ProcessingStatus string `json:"processingStatus"`
	Progress         int    `json:"processingStatusProgress"`
	Score            string `json:"score,omitempty"`
	ScoreSummary     string `json:"scoreSummary,omitempty"`
	CandidateName    string `json:"candidateName,omitempty"`
	CandidateEmail   string `json:"candidateEmail,omitempty"`
	CandidatePhone   string `json:"candidatePhone,omitempty"`
	CandidateTitle   string `json:"candidateTitle,omitempty"`
}

// Notifier pushes status updates to the front-end mirror.
type Notifier interface {
	// NotifyApplication pushes a status update for one job application.
	// Returns false on any failure (network, non-2xx); never returns an error.
	NotifyApplication(ctx context.Context, clientApplicationID string, update StatusUpdate) bool
}

// NopNotifier drops every push and reports success. Used when no front-end
// mirror is configured.
type NopNotifier struct{}

// NotifyApplication implements Notifier.
func (NopNotifier) NotifyApplication(context.Context, string, StatusUpdate) bool { return true }

// HTTPNotifier is the production Notifier over the front-end REST API.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPNotifier constructs a notifier for the given front-end base URL.
func NewHTTPNotifier(baseURL string, logger *zap.Logger) *HTTPNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// NotifyApplication implements Notifier.
func (n *HTTPNotifier) NotifyApplication(ctx context.Context, clientApplicationID string, update StatusUpdate) bool {
	body, err := json.Marshal(update)
	if err != nil {
		n.logger.Warn("failed to marshal front-end update", zap.Error(err))
		return false
	}

	url := fmt.Sprintf("%s/job-applications/%s/status", n.baseURL, clientApplicationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("failed to build front-end request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("front-end push failed",
			zap.String("client_application_id", clientApplicationID), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("front-end push rejected",
			zap.String("client_application_id", clientApplicationID),
			zap.Int("status", resp.StatusCode))
		return false
	}

	return true
}
