package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	authpkg "github.com/drblury/obsflow/internal/runtime/auth"
	configpkg "github.com/drblury/obsflow/internal/runtime/config"
	errspkg "github.com/drblury/obsflow/internal/runtime/errors"
	idspkg "github.com/drblury/obsflow/internal/runtime/ids"
	loggingpkg "github.com/drblury/obsflow/internal/runtime/logging"
	transportpkg "github.com/drblury/obsflow/internal/runtime/transport"
)

// Authenticator is the credential lifecycle the Client drives: the
// mandatory construction handshake (EnsureInstalled, Activate,
// BindProject, Verify, in that order) plus the token operations the
// transport needs. Implemented by auth.Gcloud.
type Authenticator interface {
	EnsureInstalled(ctx context.Context) error
	Activate(ctx context.Context) error
	BindProject(ctx context.Context) error
	Verify(ctx context.Context) error
	Token(ctx context.Context, kind authpkg.TokenKind) (string, error)
	Refresh(ctx context.Context) error
}

// Delivery is the shared, read-only view every command execution sees.
// It is owned by the worker and never mutated after construction.
type Delivery struct {
	Conf      *configpkg.Config
	Submitter transportpkg.Submitter
	Logger    loggingpkg.ServiceLogger
}

// Dependencies holds the optional collaborators a Client can use. Leave
// fields nil to use the gcloud-backed defaults.
type Dependencies struct {
	Authenticator Authenticator          // replaces the gcloud authenticator
	Submitter     transportpkg.Submitter // replaces the HTTP transport
	HTTPClient    *http.Client           // used by the default transport
	Runner        authpkg.Runner         // subprocess seam for the default authenticator
	Metrics       *DispatchMetrics       // nil disables dispatch metrics
}

type queuedCommand struct {
	id  string
	cmd Command
}

// Client is the telemetry dispatch core. Fire-and-forget sends enqueue a
// command onto a bounded queue drained by a single background worker;
// the ...Context variants deliver in the caller's goroutine instead.
type Client struct {
	conf     *configpkg.Config
	logger   loggingpkg.ServiceLogger
	auth     Authenticator
	delivery *Delivery
	metrics  *DispatchMetrics

	queue chan queuedCommand
	done  chan struct{}
}

// NewClient authenticates and starts the background worker. The
// initialization handshake is sequential and atomic: if any step fails
// the worker is never started and the returned error is the only thing
// the caller gets.
func NewClient(ctx context.Context, conf *configpkg.Config, logger loggingpkg.ServiceLogger, deps Dependencies) (*Client, error) {
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if logger == nil {
		logger = loggingpkg.NewNopLogger()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	authenticator := deps.Authenticator
	if authenticator == nil {
		authenticator = authpkg.NewGcloud(
			conf.GcloudBinary(), conf.ServiceAccountPath, conf.ProjectID, deps.Runner, logger)
	}

	if err := authenticator.EnsureInstalled(ctx); err != nil {
		return nil, err
	}
	if err := authenticator.Activate(ctx); err != nil {
		return nil, err
	}
	if err := authenticator.BindProject(ctx); err != nil {
		return nil, err
	}
	if err := authenticator.Verify(ctx); err != nil {
		return nil, err
	}

	submitter := deps.Submitter
	if submitter == nil {
		httpClient := deps.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: conf.HTTPTimeout}
		}
		submitter = transportpkg.NewHTTP(httpClient, authenticator, logger)
	}

	c := &Client{
		conf:    conf,
		logger:  logger,
		auth:    authenticator,
		metrics: deps.Metrics,
		queue:   make(chan queuedCommand, conf.Capacity()),
		done:    make(chan struct{}),
	}
	c.delivery = &Delivery{Conf: conf, Submitter: submitter, Logger: logger}

	logger.Info("starting dispatch worker", loggingpkg.LogFields{
		"project_id":     conf.ProjectID,
		"queue_capacity": conf.Capacity(),
	})
	go c.worker()

	return c, nil
}

// worker is the single background execution context. It pulls commands
// in FIFO order and runs each to completion before considering the next.
func (c *Client) worker() {
	defer close(c.done)

	for qc := range c.queue {
		start := time.Now()
		err := qc.cmd.Execute(context.Background(), c.delivery)

		switch {
		case err == nil:
			c.metrics.recordDelivered(qc.cmd.Kind(), time.Since(start))
		case errors.Is(err, errspkg.ErrShutdown):
			// Remaining queued items are dropped, not drained.
			c.metrics.recordDelivered(qc.cmd.Kind(), time.Since(start))
			c.logger.Info("dispatch worker shutting down", loggingpkg.LogFields{"command_id": qc.id})
			return
		default:
			// Fire-and-forget: background failures never reach the
			// original caller.
			c.metrics.recordFailed(qc.cmd.Kind(), time.Since(start))
			c.logger.Debug("background delivery failed", loggingpkg.LogFields{
				"command_id": qc.id,
				"kind":       qc.cmd.Kind(),
				"error":      err.Error(),
			})
		}
	}
}

// enqueue hands a command to the worker without ever blocking the caller.
func (c *Client) enqueue(cmd Command) error {
	select {
	case <-c.done:
		c.metrics.recordDropped(cmd.Kind(), "closed")
		return errspkg.ErrQueueClosed
	default:
	}

	select {
	case c.queue <- queuedCommand{id: idspkg.CreateULID(), cmd: cmd}:
		c.metrics.recordEnqueued(cmd.Kind())
		return nil
	default:
		c.metrics.recordDropped(cmd.Kind(), "full")
		return errspkg.ErrQueueFull
	}
}

// SendLog enqueues a log entry. The returned error only reports whether
// the entry was accepted into the queue, never its delivery outcome.
func (c *Client) SendLog(entry LogEntry) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return c.enqueue(entry)
}

// SendMetric enqueues a metric point, fire-and-forget.
func (c *Client) SendMetric(data MetricData) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return c.enqueue(data)
}

// SendTrace enqueues a trace span, fire-and-forget.
func (c *Client) SendTrace(span TraceSpan) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return c.enqueue(span)
}

// Shutdown enqueues the shutdown command. Commands accepted before it
// are still delivered; anything enqueued after it is dropped when the
// worker exits.
func (c *Client) Shutdown() error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return c.enqueue(shutdownCommand{})
}

// Done is closed once the worker loop has terminated.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close requests shutdown and waits for the worker to terminate or the
// context to expire.
func (c *Client) Close(ctx context.Context) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	if err := c.Shutdown(); err != nil && !errors.Is(err, errspkg.ErrQueueClosed) {
		return err
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendLogContext delivers the entry in the caller's goroutine, bypassing
// the queue, and returns the delivery outcome.
func (c *Client) SendLogContext(ctx context.Context, entry LogEntry) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return entry.Execute(ctx, c.delivery)
}

// SendMetricContext delivers the metric point synchronously.
func (c *Client) SendMetricContext(ctx context.Context, data MetricData) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return data.Execute(ctx, c.delivery)
}

// SendTraceContext delivers the span synchronously.
func (c *Client) SendTraceContext(ctx context.Context, span TraceSpan) error {
	if c == nil {
		return errspkg.ErrNilClient
	}
	return span.Execute(ctx, c.delivery)
}

// Infof enqueues an INFO log entry built from the format string.
func (c *Client) Infof(format string, args ...any) error {
	return c.SendLog(NewLogEntry("INFO", fmt.Sprintf(format, args...)))
}

// Warnf enqueues a WARNING log entry built from the format string.
func (c *Client) Warnf(format string, args ...any) error {
	return c.SendLog(NewLogEntry("WARNING", fmt.Sprintf(format, args...)))
}

// Errorf enqueues an ERROR log entry built from the format string.
func (c *Client) Errorf(format string, args ...any) error {
	return c.SendLog(NewLogEntry("ERROR", fmt.Sprintf(format, args...)))
}

// IdentityToken returns a fresh identity token from the authenticator,
// for callers hitting IAP-protected or Cloud Run endpoints themselves.
func (c *Client) IdentityToken(ctx context.Context) (string, error) {
	if c == nil {
		return "", errspkg.ErrNilClient
	}
	return c.auth.Token(ctx, authpkg.IdentityToken)
}

// Submitter exposes the transport so collaborators built on top of the
// client (for example the pubsub publisher) can reuse it.
func (c *Client) Submitter() transportpkg.Submitter {
	return c.delivery.Submitter
}

// GenerateTraceID returns a 32-character hex trace identifier.
func GenerateTraceID() string { return idspkg.CreateTraceID() }

// GenerateSpanID returns a 16-character hex span identifier.
func GenerateSpanID() string { return idspkg.CreateSpanID() }
