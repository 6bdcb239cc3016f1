package runtime

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	idspkg "github.com/drblury/obsflow/internal/runtime/ids"
)

// SpanFromContext builds a TraceSpan inside the trace carried by an
// active OpenTelemetry span context: same trace id, parented to the
// current span, with a freshly generated span id. The second return is
// false when the context carries no valid span.
func SpanFromContext(ctx context.Context, name string, startTime time.Time, duration time.Duration) (TraceSpan, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return TraceSpan{}, false
	}

	span := NewTraceSpan(sc.TraceID().String(), idspkg.CreateSpanID(), name, startTime, duration)
	return span.WithParentSpanID(sc.SpanID().String()), true
}
