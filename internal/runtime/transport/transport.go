// Package transport performs one authenticated HTTP submission to a
// collector endpoint, transparently recovering from expired credentials.
//
// Authentication failure is the only retried failure class. The budget is
// small because a persistent 401/403 indicates a real credential problem,
// not transient load; every other 4xx/5xx surfaces immediately so real
// API errors are never masked behind silent retries.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/avast/retry-go"

	"github.com/drblury/obsflow/internal/runtime/auth"
	errspkg "github.com/drblury/obsflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/obsflow/internal/runtime/logging"
)

// MaxAuthRetries bounds how many credential refreshes a single submission
// may trigger.
const MaxAuthRetries = 2

// Responses are diagnostic only; cap how much of them we keep.
const maxResponseBytes = 64 << 10

// Submitter delivers one JSON payload to a collector endpoint.
type Submitter interface {
	Submit(ctx context.Context, url string, payload []byte, operation string) error
}

// TokenSource supplies bearer tokens and replaces them when the remote
// side reports them expired. Implemented by auth.Gcloud.
type TokenSource interface {
	Token(ctx context.Context, kind auth.TokenKind) (string, error)
	Refresh(ctx context.Context) error
}

// HTTP submits payloads over net/http with bearer-token authentication.
type HTTP struct {
	client *http.Client
	tokens TokenSource
	logger loggingpkg.ServiceLogger
}

// NewHTTP builds a transport around the given HTTP client and token
// source. A nil client falls back to http.DefaultClient.
func NewHTTP(client *http.Client, tokens TokenSource, logger loggingpkg.ServiceLogger) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = loggingpkg.NewNopLogger()
	}
	return &HTTP{client: client, tokens: tokens, logger: logger}
}

// Submit POSTs the payload to url. On a 401 or 403 response it forces a
// credential refresh and retries, at most MaxAuthRetries times; any other
// failure is returned as-is after the first attempt.
func (t *HTTP) Submit(ctx context.Context, url string, payload []byte, operation string) error {
	attempts := 0

	attempt := func() error {
		if attempts > 0 {
			t.logger.Debug("submission rejected, refreshing credentials", loggingpkg.LogFields{
				"operation": operation,
				"attempt":   attempts + 1,
			})
			if err := t.tokens.Refresh(ctx); err != nil {
				return err
			}
		}
		attempts++

		token, err := t.tokens.Token(ctx, auth.AccessToken)
		if err != nil {
			return err
		}
		return t.post(ctx, url, payload, operation, token)
	}

	return retry.Do(attempt,
		retry.Attempts(MaxAuthRetries+1),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(0),
		retry.LastErrorOnly(true),
		retry.RetryIf(isAuthStatus),
	)
}

func (t *HTTP) post(ctx context.Context, url string, payload []byte, operation, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &errspkg.APIError{Operation: operation, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := t.client.Do(req)
	if err != nil {
		return &errspkg.APIError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return &errspkg.APIError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// isAuthStatus reports whether the submission failed with a status that
// signals an expired or rejected credential.
func isAuthStatus(err error) bool {
	var apiErr *errspkg.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
