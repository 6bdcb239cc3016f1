// Package obsflow is a small client-side dispatch core for Google Cloud
// observability: application code enqueues log entries, metric points,
// and trace spans, and a single background worker drains the queue,
// authenticates through the gcloud CLI, and submits each record to the
// Cloud Logging, Cloud Monitoring, and Cloud Trace REST APIs.
//
// The fire-and-forget methods (SendLog, SendMetric, SendTrace) never
// block and never surface delivery failures; they only report whether
// the record was accepted into the bounded dispatch queue. When a caller
// needs the delivery outcome, the ...Context variants bypass the queue
// and run the submission in the calling goroutine.
//
// # Architecture
//
// Exactly two kinds of execution context exist: any number of producer
// goroutines calling the enqueue surface, and one worker goroutine that
// owns all blocking I/O. Commands are executed strictly sequentially in
// queue-arrival order, and a shutdown command terminates the worker
// without draining whatever is still queued.
//
// # Authentication
//
// Tokens come from the gcloud CLI. Expiry is never tracked locally:
// a 401/403 response forces a service-account re-activation and the
// submission is retried, at most twice. Construction performs the
// mandatory handshake (activate the service account, bind the project,
// verify an active identity) and fails atomically if any step does.
//
// # Quick start
//
//	conf := &obsflow.Config{
//		ProjectID:          "my-project",
//		ServiceAccountPath: "/path/to/service-account.json",
//		ServiceName:        "api-server",
//	}
//	client, err := obsflow.NewClient(ctx, conf, logger, obsflow.Dependencies{})
//	if err != nil {
//		return err
//	}
//	client.SendLog(obsflow.NewLogEntry("INFO", "application started"))
//	client.SendMetric(obsflow.NewMetricData("custom.googleapis.com/requests_total", 42, "INT64", "GAUGE"))
//
//	span := obsflow.NewTraceSpan(obsflow.GenerateTraceID(), obsflow.GenerateSpanID(),
//		"HTTP Request", time.Now(), 150*time.Millisecond)
//	client.SendTrace(span)
//	client.Close(ctx)
//
// See examples/ for runnable programs.
package obsflow
