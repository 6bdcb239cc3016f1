package pubsub

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"

	configpkg "github.com/drblury/obsflow/internal/runtime/config"
	"github.com/drblury/obsflow/internal/runtime/jsoncodec"
)

type capturedSubmission struct {
	URL       string
	Payload   []byte
	Operation string
}

type captureSubmitter struct {
	mu       sync.Mutex
	captured []capturedSubmission
	err      error
}

func (c *captureSubmitter) Submit(_ context.Context, url string, payload []byte, operation string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captured = append(c.captured, capturedSubmission{URL: url, Payload: payload, Operation: operation})
	return c.err
}

func testPublisher(submitter *captureSubmitter) *Publisher {
	conf := &configpkg.Config{ProjectID: "proj", ServiceAccountPath: "/tmp/key.json"}
	return NewPublisher(conf, "instance-1", []string{"events", "audit"}, submitter, nil)
}

func TestTopicExpansion(t *testing.T) {
	publisher := testPublisher(&captureSubmitter{})

	path, ok := publisher.TopicPath("events")
	if !ok {
		t.Fatal("expected registered topic")
	}
	if path != "projects/proj/topics/events-instance-1" {
		t.Fatalf("unexpected topic path %q", path)
	}
	if _, ok := publisher.TopicPath("missing"); ok {
		t.Fatal("expected unknown topic to be absent")
	}
}

func TestPublishEncodesMessage(t *testing.T) {
	submitter := &captureSubmitter{}
	publisher := testPublisher(submitter)

	type event struct {
		Kind string `json:"kind"`
		N    int    `json:"n"`
	}
	if err := publisher.Publish(context.Background(), "events", event{Kind: "created", N: 7}, "order-42"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(submitter.captured) != 1 {
		t.Fatalf("expected one submission, got %d", len(submitter.captured))
	}
	got := submitter.captured[0]
	wantURL := "https://pubsub.googleapis.com/v1/projects/proj/topics/events-instance-1:publish"
	if got.URL != wantURL {
		t.Fatalf("unexpected URL %q", got.URL)
	}
	if got.Operation != "PubSub" {
		t.Fatalf("unexpected operation %q", got.Operation)
	}

	var body struct {
		Messages []struct {
			Data        string `json:"data"`
			OrderingKey string `json:"orderingKey"`
		} `json:"messages"`
	}
	if err := jsoncodec.Unmarshal(got.Payload, &body); err != nil {
		t.Fatalf("failed to decode publish body: %v", err)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(body.Messages))
	}
	if body.Messages[0].OrderingKey != "order-42" {
		t.Fatalf("unexpected ordering key %q", body.Messages[0].OrderingKey)
	}

	raw, err := base64.StdEncoding.DecodeString(body.Messages[0].Data)
	if err != nil {
		t.Fatalf("data is not valid base64: %v", err)
	}
	var decoded event
	if err := jsoncodec.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("data is not the JSON payload: %v", err)
	}
	if decoded.Kind != "created" || decoded.N != 7 {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestPublishUnknownTopic(t *testing.T) {
	publisher := testPublisher(&captureSubmitter{})
	if err := publisher.Publish(context.Background(), "missing", map[string]string{}, ""); err == nil {
		t.Fatal("expected error for unregistered topic")
	}
}
