package runtime

import (
	"context"
	"time"

	errspkg "github.com/drblury/obsflow/internal/runtime/errors"
	idspkg "github.com/drblury/obsflow/internal/runtime/ids"
)

// Command is one unit of work for the dispatch worker. Implementations
// build their provider payload from their own fields and delegate the
// submission to the Delivery's transport. A command is executed at most
// once and never mutated after it has been enqueued.
type Command interface {
	// Kind names the telemetry kind for logging and metrics labels.
	Kind() string
	Execute(ctx context.Context, d *Delivery) error
}

// LogEntry is a structured log record destined for Cloud Logging.
// Severity and Message are always present; ServiceName and LogName are
// optional and fall back to the client defaults at delivery time.
type LogEntry struct {
	Severity    string
	Message     string
	ServiceName string
	LogName     string
}

// NewLogEntry builds a log entry with the mandatory fields.
func NewLogEntry(severity, message string) LogEntry {
	return LogEntry{Severity: severity, Message: message}
}

func (e LogEntry) WithServiceName(serviceName string) LogEntry {
	e.ServiceName = serviceName
	return e
}

func (e LogEntry) WithLogName(logName string) LogEntry {
	e.LogName = logName
	return e
}

func (e LogEntry) Kind() string { return "log" }

func (e LogEntry) Execute(ctx context.Context, d *Delivery) error {
	payload, err := buildLogPayload(e, d)
	if err != nil {
		return err
	}
	return d.Submitter.Submit(ctx, d.Conf.LoggingURL(), payload, "Logging")
}

// MetricData is one custom metric point destined for Cloud Monitoring.
// ValueType selects the populated JSON value field (for example INT64 or
// DOUBLE); MetricKind is typically GAUGE.
type MetricData struct {
	MetricType string
	Value      float64
	ValueType  string
	MetricKind string
	Labels     map[string]string
}

// NewMetricData builds a metric point with the mandatory fields.
func NewMetricData(metricType string, value float64, valueType, metricKind string) MetricData {
	return MetricData{
		MetricType: metricType,
		Value:      value,
		ValueType:  valueType,
		MetricKind: metricKind,
	}
}

func (m MetricData) WithLabels(labels map[string]string) MetricData {
	m.Labels = labels
	return m
}

func (m MetricData) Kind() string { return "metric" }

func (m MetricData) Execute(ctx context.Context, d *Delivery) error {
	payload, err := buildMetricPayload(m)
	if err != nil {
		return err
	}
	return d.Submitter.Submit(ctx, d.Conf.MonitoringURL(), payload, "Monitoring")
}

// TraceSpan is one timed operation within a distributed trace, destined
// for Cloud Trace. TraceID is shared by every span of one logical trace;
// SpanID is unique per process.
type TraceSpan struct {
	TraceID      string
	SpanID       string
	DisplayName  string
	StartTime    time.Time
	Duration     time.Duration
	ParentSpanID string
	Attributes   map[string]string
	Status       *SpanStatus
}

// SpanStatus carries a gRPC status code (0=OK, 2=UNKNOWN, ...) and an
// optional message.
type SpanStatus struct {
	Code    int32
	Message string
}

// NewTraceSpan builds a span with the mandatory fields.
func NewTraceSpan(traceID, spanID, displayName string, startTime time.Time, duration time.Duration) TraceSpan {
	return TraceSpan{
		TraceID:     traceID,
		SpanID:      spanID,
		DisplayName: displayName,
		StartTime:   startTime,
		Duration:    duration,
	}
}

func (s TraceSpan) WithParentSpanID(parentSpanID string) TraceSpan {
	s.ParentSpanID = parentSpanID
	return s
}

func (s TraceSpan) WithAttribute(key, value string) TraceSpan {
	attrs := make(map[string]string, len(s.Attributes)+1)
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	attrs[key] = value
	s.Attributes = attrs
	return s
}

func (s TraceSpan) WithStatus(code int32, message string) TraceSpan {
	s.Status = &SpanStatus{Code: code, Message: message}
	return s
}

// WithStatusError marks the span failed with the generic UNKNOWN code.
func (s TraceSpan) WithStatusError(message string) TraceSpan {
	return s.WithStatus(2, message)
}

// Child derives a span in the same trace, parented to s, with a freshly
// generated span id.
func (s TraceSpan) Child(name string, startTime time.Time, duration time.Duration) TraceSpan {
	return TraceSpan{
		TraceID:      s.TraceID,
		SpanID:       idspkg.CreateSpanID(),
		ParentSpanID: s.SpanID,
		DisplayName:  name,
		StartTime:    startTime,
		Duration:     duration,
	}
}

func (s TraceSpan) Kind() string { return "trace" }

func (s TraceSpan) Execute(ctx context.Context, d *Delivery) error {
	payload, err := buildTracePayload(s, d)
	if err != nil {
		return err
	}
	return d.Submitter.Submit(ctx, d.Conf.TraceURL(), payload, "Tracing")
}

// shutdownCommand terminates the worker loop. Its error return is a
// control signal, not a failure.
type shutdownCommand struct{}

func (shutdownCommand) Kind() string { return "shutdown" }

func (shutdownCommand) Execute(context.Context, *Delivery) error {
	return errspkg.ErrShutdown
}
