package config

import (
	"context"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		ProjectID:          "proj",
		ServiceAccountPath: "/tmp/key.json",
	}
}

func TestValidateAggregatesMissingFields(t *testing.T) {
	err := (&Config{QueueCapacity: -1}).Validate()
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	for _, want := range []string{"project id", "service account path", "queue capacity"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateConfigNil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestCapacityDefaults(t *testing.T) {
	if got := validConfig().Capacity(); got != DefaultQueueCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultQueueCapacity, got)
	}
	conf := validConfig()
	conf.QueueCapacity = 16
	if got := conf.Capacity(); got != 16 {
		t.Fatalf("expected explicit capacity, got %d", got)
	}
}

func TestEndpointURLs(t *testing.T) {
	conf := validConfig()
	if got := conf.LoggingURL(); got != "https://logging.googleapis.com/v2/entries:write" {
		t.Fatalf("unexpected logging URL %q", got)
	}
	if got := conf.MonitoringURL(); got != "https://monitoring.googleapis.com/v3/projects/proj/timeSeries" {
		t.Fatalf("unexpected monitoring URL %q", got)
	}
	if got := conf.TraceURL(); got != "https://cloudtrace.googleapis.com/v2/projects/proj/traces:batchWrite" {
		t.Fatalf("unexpected trace URL %q", got)
	}
	if got := conf.PubSubURL("projects/proj/topics/events-a"); got != "https://pubsub.googleapis.com/v1/projects/proj/topics/events-a:publish" {
		t.Fatalf("unexpected pubsub URL %q", got)
	}

	conf.LoggingEndpoint = "http://127.0.0.1:9999"
	if got := conf.LoggingURL(); got != "http://127.0.0.1:9999/v2/entries:write" {
		t.Fatalf("expected endpoint override, got %q", got)
	}
}

func TestStringRedactsKeyPath(t *testing.T) {
	conf := validConfig()
	if out := conf.String(); strings.Contains(out, "/tmp/key.json") {
		t.Fatalf("expected key path to be redacted, got %q", out)
	}
}

func TestCredentialsPathFromEnv(t *testing.T) {
	t.Setenv(EnvGoogleApplicationCredentials, "")
	t.Setenv(EnvGoogleCredentials, "")

	if _, err := CredentialsPathFromEnv(); err == nil {
		t.Fatal("expected error with no credential env vars set")
	}

	t.Setenv(EnvGoogleCredentials, " /alias/key.json ")
	path, err := CredentialsPathFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/alias/key.json" {
		t.Fatalf("expected trimmed fallback path, got %q", path)
	}

	t.Setenv(EnvGoogleApplicationCredentials, "/standard/key.json")
	path, err = CredentialsPathFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/standard/key.json" {
		t.Fatalf("expected the standard var to win, got %q", path)
	}
}

func TestResolveProjectIDPrefersProvidedThenEnv(t *testing.T) {
	t.Setenv(EnvGoogleCloudProject, "env-project")

	got, err := ResolveProjectID(context.Background(), "  explicit  ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "explicit" {
		t.Fatalf("expected the provided id to win, got %q", got)
	}

	got, err = ResolveProjectID(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "env-project" {
		t.Fatalf("expected the env project, got %q", got)
	}
}
