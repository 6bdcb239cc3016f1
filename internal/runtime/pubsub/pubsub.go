// Package pubsub publishes JSON payloads to Google Cloud Pub/Sub through
// the same authenticated transport the telemetry dispatch core uses. It
// is a collaborator on top of the core, not part of the worker pipeline.
package pubsub

import (
	"context"
	"encoding/base64"
	"fmt"

	configpkg "github.com/drblury/obsflow/internal/runtime/config"
	"github.com/drblury/obsflow/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/obsflow/internal/runtime/logging"
	transportpkg "github.com/drblury/obsflow/internal/runtime/transport"
)

// Publisher resolves short topic names to full Pub/Sub topic paths and
// publishes messages to them over REST.
type Publisher struct {
	conf       *configpkg.Config
	instanceID string
	topics     map[string]string
	submitter  transportpkg.Submitter
	logger     loggingpkg.ServiceLogger
}

// NewPublisher expands each topic name into
// projects/{project}/topics/{name}-{instance} and keeps the mapping for
// lookups at publish time.
func NewPublisher(conf *configpkg.Config, instanceID string, topics []string, submitter transportpkg.Submitter, logger loggingpkg.ServiceLogger) *Publisher {
	if logger == nil {
		logger = loggingpkg.NewNopLogger()
	}

	expanded := make(map[string]string, len(topics))
	for _, name := range topics {
		expanded[name] = fmt.Sprintf("projects/%s/topics/%s-%s", conf.ProjectID, name, instanceID)
	}

	return &Publisher{
		conf:       conf,
		instanceID: instanceID,
		topics:     expanded,
		submitter:  submitter,
		logger:     logger,
	}
}

// TopicPath returns the full path registered for a topic name.
func (p *Publisher) TopicPath(name string) (string, bool) {
	path, ok := p.topics[name]
	return path, ok
}

type publishPayload struct {
	Messages []pubsubMessage `json:"messages"`
}

type pubsubMessage struct {
	Data        string `json:"data"`
	OrderingKey string `json:"orderingKey,omitempty"`
}

// Publish serializes the payload to JSON and publishes it to the named
// topic, waiting for the outcome.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any, orderingKey string) error {
	path, ok := p.topics[topic]
	if !ok {
		return fmt.Errorf("obsflow: publisher %q not found", topic)
	}

	data, err := jsoncodec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("obsflow: failed to serialize payload for topic %q: %w", topic, err)
	}

	body, err := jsoncodec.Marshal(publishPayload{
		Messages: []pubsubMessage{{
			Data:        base64.StdEncoding.EncodeToString(data),
			OrderingKey: orderingKey,
		}},
	})
	if err != nil {
		return err
	}

	return p.submitter.Submit(ctx, p.conf.PubSubURL(path), body, "PubSub")
}

// PublishAsync publishes fire-and-forget in its own goroutine; failures
// are logged and dropped.
func (p *Publisher) PublishAsync(topic string, payload any, orderingKey string) {
	go func() {
		if err := p.Publish(context.Background(), topic, payload, orderingKey); err != nil {
			p.logger.Error("fire-and-forget publish failed", err, loggingpkg.LogFields{"topic": topic})
			return
		}
		p.logger.Debug("message published", loggingpkg.LogFields{"topic": topic})
	}()
}
