package tablequery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Action describes one row-level mutation as a {method, url, body}
// triple, e.g. delete, toggle-published, duplicate.
type Action struct {
	Method string
	URL    string
	Body   interface{}
}

// ActionResult is the mutation endpoint envelope.
type ActionResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ActionRunner issues row and bulk mutations and invalidates the
// endpoint's cached list pages after anything succeeded.
type ActionRunner struct {
	baseURL    string
	httpClient *http.Client
	client     QueryClient
	authToken  string
}

func NewActionRunner(baseURL string, client QueryClient) *ActionRunner {
	return &ActionRunner{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		client:     client,
	}
}

// SetAuthToken attaches a bearer token to subsequent requests.
func (r *ActionRunner) SetAuthToken(token string) {
	r.authToken = token
}

// SetHTTPClient overrides the transport (tests).
func (r *ActionRunner) SetHTTPClient(h *http.Client) {
	r.httpClient = h
}

// Do performs one action. A transport failure or a success=false envelope
// both come back as a single error, already shaped for a toast.
func (r *ActionRunner) Do(ctx context.Context, a Action) (*ActionResult, error) {
	var body io.Reader
	if a.Body != nil {
		raw, err := json.Marshal(a.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, a.Method, r.baseURL+a.URL, body)
	if err != nil {
		return nil, err
	}
	if a.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result ActionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("action %s %s failed with status %d", a.Method, a.URL, resp.StatusCode)
		}
		return nil, fmt.Errorf("action %s %s: malformed response: %w", a.Method, a.URL, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &result, fmt.Errorf("action %s %s failed: %s", a.Method, a.URL, msg)
	}
	return &result, nil
}

// RunBulk executes the selected rows' actions sequentially inside one
// user-visible pending state. The batch reports a single aggregate
// outcome; there is no per-row rollback. Cached pages of the endpoint are
// invalidated as soon as anything succeeded, so the table refetches even
// after a partial failure.
func (r *ActionRunner) RunBulk(ctx context.Context, endpoint string, actions []Action) error {
	if len(actions) == 0 {
		return nil
	}

	var failed int
	var firstErr error
	for _, a := range actions {
		if _, err := r.Do(ctx, a); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			logrus.Errorf("bulk action failed: %v", err)
		}
	}

	if failed < len(actions) && r.client != nil {
		if err := r.client.Invalidate(ctx, endpoint); err != nil {
			logrus.Errorf("bulk action cache invalidation failed: %v", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d actions failed: %w", failed, len(actions), firstErr)
	}
	return nil
}
