package obsflow

import (
	runtimepkg "github.com/drblury/obsflow/internal/runtime"
	authpkg "github.com/drblury/obsflow/internal/runtime/auth"
	configpkg "github.com/drblury/obsflow/internal/runtime/config"
	errspkg "github.com/drblury/obsflow/internal/runtime/errors"
	loggingpkg "github.com/drblury/obsflow/internal/runtime/logging"
	pubsubpkg "github.com/drblury/obsflow/internal/runtime/pubsub"
	transportpkg "github.com/drblury/obsflow/internal/runtime/transport"
)

type (
	Config       = configpkg.Config
	Client       = runtimepkg.Client
	Dependencies = runtimepkg.Dependencies
	Delivery     = runtimepkg.Delivery

	Command    = runtimepkg.Command
	LogEntry   = runtimepkg.LogEntry
	MetricData = runtimepkg.MetricData
	TraceSpan  = runtimepkg.TraceSpan
	SpanStatus = runtimepkg.SpanStatus

	Authenticator = runtimepkg.Authenticator
	TokenKind     = authpkg.TokenKind
	Runner        = authpkg.Runner
	Submitter     = transportpkg.Submitter
	TokenSource   = transportpkg.TokenSource

	DispatchMetrics = runtimepkg.DispatchMetrics

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	AuthenticationError = errspkg.AuthenticationError
	APIError            = errspkg.APIError
	SetupError          = errspkg.SetupError

	PubSubPublisher = pubsubpkg.Publisher
)

const (
	AccessToken   = authpkg.AccessToken
	IdentityToken = authpkg.IdentityToken

	DefaultQueueCapacity = configpkg.DefaultQueueCapacity
	MaxAuthRetries       = transportpkg.MaxAuthRetries
)

var (
	NewClient      = runtimepkg.NewClient
	ValidateConfig = configpkg.ValidateConfig

	NewLogEntry   = runtimepkg.NewLogEntry
	NewMetricData = runtimepkg.NewMetricData
	NewTraceSpan  = runtimepkg.NewTraceSpan

	GenerateTraceID = runtimepkg.GenerateTraceID
	GenerateSpanID  = runtimepkg.GenerateSpanID
	SpanFromContext = runtimepkg.SpanFromContext

	NewSlogServiceLogger = loggingpkg.NewSlogServiceLogger
	NewNopLogger         = loggingpkg.NewNopLogger

	NewDispatchMetrics = runtimepkg.NewDispatchMetrics

	NewGcloudAuthenticator = authpkg.NewGcloud
	NewHTTPTransport       = transportpkg.NewHTTP

	NewPubSubPublisher = pubsubpkg.NewPublisher

	CredentialsPathFromEnv = configpkg.CredentialsPathFromEnv
	ResolveProjectID       = configpkg.ResolveProjectID

	ErrShutdown    = errspkg.ErrShutdown
	ErrQueueFull   = errspkg.ErrQueueFull
	ErrQueueClosed = errspkg.ErrQueueClosed
)
