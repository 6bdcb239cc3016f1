// Package auth obtains and refreshes bearer tokens by shelling out to the
// gcloud CLI. Token validity is never tracked locally; expiry is
// discovered reactively when a token fetch or an HTTP submission fails,
// and recovery re-activates the service account.
package auth

import (
	"context"
	"errors"
	"strings"

	errspkg "github.com/drblury/obsflow/internal/runtime/errors"
	"github.com/drblury/obsflow/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/obsflow/internal/runtime/logging"
)

// TokenKind selects which bearer token gcloud prints.
type TokenKind string

const (
	AccessToken   TokenKind = "access"
	IdentityToken TokenKind = "identity"
)

// Gcloud drives the gcloud CLI: activating a service account, binding the
// target project, verifying active identities, and printing tokens.
type Gcloud struct {
	binary    string
	keyFile   string
	projectID string
	runner    Runner
	logger    loggingpkg.ServiceLogger
}

// NewGcloud builds an authenticator for the given service-account key and
// project. The runner defaults to ExecRunner and the logger to a no-op.
func NewGcloud(binary, keyFile, projectID string, runner Runner, logger loggingpkg.ServiceLogger) *Gcloud {
	if binary == "" {
		binary = "gcloud"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = loggingpkg.NewNopLogger()
	}
	return &Gcloud{
		binary:    binary,
		keyFile:   keyFile,
		projectID: projectID,
		runner:    runner,
		logger:    logger,
	}
}

// EnsureInstalled checks that the gcloud binary responds and attempts a
// best-effort install when it does not.
func (g *Gcloud) EnsureInstalled(ctx context.Context) error {
	if _, _, err := g.runner.Run(ctx, g.binary, "version"); err == nil {
		return nil
	}

	g.logger.Info("gcloud not found, attempting install", nil)
	_, _, err := g.runner.Run(ctx, "sh", "-c", "curl https://sdk.cloud.google.com | bash")
	if err != nil {
		return &errspkg.SetupError{
			Reason: "failed to install gcloud CLI, install manually from https://cloud.google.com/sdk/docs/install",
			Err:    err,
		}
	}
	return nil
}

// Activate registers the service-account key with gcloud. It doubles as
// the refresh routine: re-running it replaces an expired credential.
func (g *Gcloud) Activate(ctx context.Context) error {
	_, stderr, err := g.runner.Run(ctx, g.binary,
		"auth", "activate-service-account", "--key-file", g.keyFile)
	if err != nil {
		return &errspkg.AuthenticationError{
			Reason: "failed to activate service account: " + strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return nil
}

// Refresh re-activates the service account to replace an expired token.
func (g *Gcloud) Refresh(ctx context.Context) error {
	g.logger.Debug("refreshing gcloud credentials", nil)
	return g.Activate(ctx)
}

// BindProject points the active gcloud configuration at the target project.
func (g *Gcloud) BindProject(ctx context.Context) error {
	_, stderr, err := g.runner.Run(ctx, g.binary, "config", "set", "project", g.projectID)
	if err != nil {
		return &errspkg.AuthenticationError{
			Reason: "failed to set project: " + strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return nil
}

// Verify confirms at least one active identity is registered with gcloud.
func (g *Gcloud) Verify(ctx context.Context) error {
	stdout, _, err := g.runner.Run(ctx, g.binary, "auth", "list", "--format=json")
	if err != nil {
		return &errspkg.AuthenticationError{Reason: "authentication verification failed", Err: err}
	}

	var accounts []struct {
		Account string `json:"account"`
		Status  string `json:"status"`
	}
	if err := jsoncodec.Unmarshal(stdout, &accounts); err != nil {
		return &errspkg.AuthenticationError{Reason: "could not parse gcloud auth list output", Err: err}
	}
	if len(accounts) == 0 {
		return &errspkg.AuthenticationError{Reason: "no active gcloud identities registered"}
	}
	return nil
}

// Token returns a bearer token of the requested kind. When the failure
// message signals an expired or missing login, the service account is
// re-activated and the fetch retried exactly once; any other failure
// surfaces unchanged.
func (g *Gcloud) Token(ctx context.Context, kind TokenKind) (string, error) {
	token, err := g.printToken(ctx, kind)
	if err == nil {
		return token, nil
	}
	if !isExpirySignal(err) {
		return "", err
	}

	if err := g.Refresh(ctx); err != nil {
		return "", err
	}
	return g.printToken(ctx, kind)
}

func (g *Gcloud) printToken(ctx context.Context, kind TokenKind) (string, error) {
	arg := "print-access-token"
	if kind == IdentityToken {
		arg = "print-identity-token"
	}

	stdout, stderr, err := g.runner.Run(ctx, g.binary, "auth", arg)
	if err != nil {
		return "", &errspkg.AuthenticationError{
			Reason: "failed to get " + string(kind) + " token: " + strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return strings.TrimSpace(string(stdout)), nil
}

// isExpirySignal reports whether the gcloud failure output indicates the
// cached credential is gone or stale, the only failure class worth a
// refresh. Only the CLI's own message is inspected, never our wrapping.
func isExpirySignal(err error) bool {
	var authErr *errspkg.AuthenticationError
	if !errors.As(err, &authErr) {
		return false
	}
	msg := authErr.Reason
	return strings.Contains(msg, "not logged in") ||
		strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "expired")
}
