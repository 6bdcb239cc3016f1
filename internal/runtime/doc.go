/*
Package runtime provides the telemetry dispatch core for obsflow.

# Architecture Overview

The runtime package implements a fire-and-forget dispatch pipeline: any
number of producer goroutines enqueue commands onto one bounded channel,
and a single worker goroutine drains it, executing each command against
the shared delivery context. All blocking I/O (token fetches, HTTP
submissions) happens inside the worker.

# Package Structure

## Client & Worker (client.go)

The Client struct owns the dispatch queue and the worker goroutine. Its
constructor runs the mandatory authentication handshake (ensure gcloud,
activate service account, bind project, verify identity) and fails
atomically when any step does.

## Commands (commands.go, payloads.go)

Each telemetry kind is a Command that builds its own collector payload:
  - LogEntry: Cloud Logging entries:write
  - MetricData: Cloud Monitoring timeSeries
  - TraceSpan: Cloud Trace traces:batchWrite
  - shutdown: terminates the worker loop via a sentinel error

## Metrics (dispatch_metrics.go)

Optional Prometheus collectors for queue and delivery outcomes.

## OpenTelemetry Bridge (otel.go)

SpanFromContext derives a TraceSpan from an active OTel span context so
applications already instrumented with OpenTelemetry can feed the same
trace into Cloud Trace.

# Sub-packages

  - auth/: gcloud-CLI-backed authenticator with a subprocess seam
  - config/: client configuration, validation, and env resolution
  - errors/: sentinel errors and error types
  - ids/: ULID, trace-id, and span-id generation
  - jsoncodec/: JSON marshaling utilities
  - logging/: logger interface and adapters
  - pubsub/: REST Pub/Sub publisher on top of the shared transport
  - transport/: authenticated HTTP submission with 401/403 refresh-retry
*/
package runtime
