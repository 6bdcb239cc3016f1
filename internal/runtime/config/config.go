// Package config groups the settings required to initialise the obsflow
// Client and the helpers that resolve credentials and project identifiers
// from the environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Default queue capacity for the dispatch channel.
const DefaultQueueCapacity = 1027

// DefaultLogName is used when a log entry carries no explicit log name.
const DefaultLogName = "obsflow"

// Config groups the settings required to initialise the Client. Endpoint
// overrides exist so tests can point submissions at local servers; leave
// them empty in production.
type Config struct {
	// ProjectID is the target GCP project for all submissions.
	ProjectID string

	// ServiceAccountPath is the path to the service-account key JSON that
	// gcloud activates during construction and on token refresh.
	ServiceAccountPath string

	// ServiceName optionally labels emitted log entries that do not carry
	// their own service name.
	ServiceName string

	// QueueCapacity bounds the dispatch queue. Zero falls back to
	// DefaultQueueCapacity.
	QueueCapacity int

	// GcloudPath overrides the gcloud binary name. Zero value means
	// "gcloud" from PATH.
	GcloudPath string

	// HTTPTimeout bounds each outbound submission. Zero disables the
	// client-side timeout.
	HTTPTimeout time.Duration

	// Endpoint overrides. Empty values select the public Google APIs.
	LoggingEndpoint    string
	MonitoringEndpoint string
	TraceEndpoint      string
	PubSubEndpoint     string
}

// Getter-style accessors that apply defaults.

func (c *Config) Capacity() int {
	if c.QueueCapacity <= 0 {
		return DefaultQueueCapacity
	}
	return c.QueueCapacity
}

func (c *Config) GcloudBinary() string {
	if c.GcloudPath == "" {
		return "gcloud"
	}
	return c.GcloudPath
}

func (c *Config) LoggingURL() string {
	base := c.LoggingEndpoint
	if base == "" {
		base = "https://logging.googleapis.com"
	}
	return base + "/v2/entries:write"
}

func (c *Config) MonitoringURL() string {
	base := c.MonitoringEndpoint
	if base == "" {
		base = "https://monitoring.googleapis.com"
	}
	return fmt.Sprintf("%s/v3/projects/%s/timeSeries", base, c.ProjectID)
}

func (c *Config) TraceURL() string {
	base := c.TraceEndpoint
	if base == "" {
		base = "https://cloudtrace.googleapis.com"
	}
	return fmt.Sprintf("%s/v2/projects/%s/traces:batchWrite", base, c.ProjectID)
}

func (c *Config) PubSubURL(topicPath string) string {
	base := c.PubSubEndpoint
	if base == "" {
		base = "https://pubsub.googleapis.com"
	}
	return fmt.Sprintf("%s/v1/%s:publish", base, topicPath)
}

func (c Config) String() string {
	// Key files routinely live next to secrets; only the path is printed,
	// but redact it anyway so config dumps stay shareable.
	copy := c
	if copy.ServiceAccountPath != "" {
		copy.ServiceAccountPath = "***REDACTED***"
	}
	type configAlias Config
	return fmt.Sprintf("%+v", configAlias(copy))
}

// Validate checks that the configuration has all required fields.
// Returns an error describing any missing or invalid configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.ProjectID == "" {
		errs = append(errs, errors.New("project id is required"))
	}
	if c.ServiceAccountPath == "" {
		errs = append(errs, errors.New("service account path is required"))
	}
	if c.QueueCapacity < 0 {
		errs = append(errs, errors.New("queue capacity cannot be negative"))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http timeout cannot be negative"))
	}

	return errors.Join(errs...)
}

// ValidateConfig is a convenience function to validate a config pointer.
// Returns nil if the config is valid.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}
