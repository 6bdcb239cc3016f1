package runtime

import (
	"fmt"
	"strings"
	"time"

	configpkg "github.com/drblury/obsflow/internal/runtime/config"
	"github.com/drblury/obsflow/internal/runtime/jsoncodec"
)

// Timestamp layout the collector endpoints accept (UTC, millisecond
// precision).
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// --- Cloud Logging entries:write ---

type logWritePayload struct {
	Entries []logEntryPayload `json:"entries"`
}

type logEntryPayload struct {
	LogName     string            `json:"logName"`
	Resource    resourcePayload   `json:"resource"`
	Timestamp   string            `json:"timestamp"`
	Severity    string            `json:"severity"`
	TextPayload string            `json:"textPayload"`
	Labels      map[string]string `json:"labels"`
}

type resourcePayload struct {
	Type   string            `json:"type"`
	Labels map[string]string `json:"labels,omitempty"`
}

func buildLogPayload(e LogEntry, d *Delivery) ([]byte, error) {
	labels := map[string]string{}
	if service := firstNonEmpty(e.ServiceName, d.Conf.ServiceName); service != "" {
		labels["service_name"] = service
	}

	logName := firstNonEmpty(e.LogName, configpkg.DefaultLogName)

	return jsoncodec.Marshal(logWritePayload{
		Entries: []logEntryPayload{{
			LogName:     fmt.Sprintf("projects/%s/logs/%s", d.Conf.ProjectID, logName),
			Resource:    resourcePayload{Type: "global"},
			Timestamp:   formatTimestamp(time.Now()),
			Severity:    e.Severity,
			TextPayload: e.Message,
			Labels:      labels,
		}},
	})
}

// --- Cloud Monitoring timeSeries ---

type timeSeriesPayload struct {
	TimeSeries []timeSeriesEntry `json:"timeSeries"`
}

type timeSeriesEntry struct {
	Metric     metricPayload   `json:"metric"`
	Resource   resourcePayload `json:"resource"`
	MetricKind string          `json:"metricKind,omitempty"`
	Points     []pointPayload  `json:"points"`
}

type metricPayload struct {
	Type   string            `json:"type"`
	Labels map[string]string `json:"labels"`
}

type pointPayload struct {
	Interval intervalPayload `json:"interval"`
	Value    map[string]any  `json:"value"`
}

type intervalPayload struct {
	EndTime string `json:"endTime"`
}

func buildMetricPayload(m MetricData) ([]byte, error) {
	labels := m.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	// The value-type tag selects which JSON value field is populated.
	valueKey := strings.ToLower(m.ValueType) + "Value"
	var value any = m.Value
	if strings.EqualFold(m.ValueType, "INT64") {
		value = int64(m.Value)
	}

	return jsoncodec.Marshal(timeSeriesPayload{
		TimeSeries: []timeSeriesEntry{{
			Metric:     metricPayload{Type: m.MetricType, Labels: labels},
			Resource:   resourcePayload{Type: "global", Labels: map[string]string{}},
			MetricKind: m.MetricKind,
			Points: []pointPayload{{
				Interval: intervalPayload{EndTime: formatTimestamp(time.Now())},
				Value:    map[string]any{valueKey: value},
			}},
		}},
	})
}

// --- Cloud Trace traces:batchWrite ---

type traceBatchPayload struct {
	Spans []spanPayload `json:"spans"`
}

type spanPayload struct {
	Name         string             `json:"name"`
	SpanID       string             `json:"spanId"`
	DisplayName  truncatableString  `json:"displayName"`
	StartTime    string             `json:"startTime"`
	EndTime      string             `json:"endTime"`
	Attributes   spanAttributes     `json:"attributes"`
	ParentSpanID string             `json:"parentSpanId,omitempty"`
	Status       *spanStatusPayload `json:"status,omitempty"`
}

type truncatableString struct {
	Value string `json:"value"`
}

type spanAttributes struct {
	AttributeMap map[string]attributeValue `json:"attributeMap,omitempty"`
}

type attributeValue struct {
	StringValue truncatableString `json:"string_value"`
}

type spanStatusPayload struct {
	Code    int32  `json:"code"`
	Message string `json:"message,omitempty"`
}

func buildTracePayload(s TraceSpan, d *Delivery) ([]byte, error) {
	span := spanPayload{
		Name: fmt.Sprintf("projects/%s/traces/%s/spans/%s",
			d.Conf.ProjectID, s.TraceID, s.SpanID),
		SpanID:       s.SpanID,
		DisplayName:  truncatableString{Value: s.DisplayName},
		StartTime:    formatTimestamp(s.StartTime),
		EndTime:      formatTimestamp(s.StartTime.Add(s.Duration)),
		ParentSpanID: s.ParentSpanID,
	}

	if len(s.Attributes) > 0 {
		attrMap := make(map[string]attributeValue, len(s.Attributes))
		for key, value := range s.Attributes {
			attrMap[key] = attributeValue{StringValue: truncatableString{Value: value}}
		}
		span.Attributes = spanAttributes{AttributeMap: attrMap}
	}

	if s.Status != nil {
		span.Status = &spanStatusPayload{Code: s.Status.Code, Message: s.Status.Message}
	}

	return jsoncodec.Marshal(traceBatchPayload{Spans: []spanPayload{span}})
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
