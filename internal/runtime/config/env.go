package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Standard env var used by Google SDKs to locate the service account JSON.
const EnvGoogleApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

// Non-standard alias some teams use. If set, it is accepted as a fallback.
const EnvGoogleCredentials = "GOOGLE_CREDENTIALS"

// Standard env var used by many GCP libraries and runtimes.
const EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"

// CredentialsPathFromEnv resolves the service-account key path from
// GOOGLE_APPLICATION_CREDENTIALS, falling back to GOOGLE_CREDENTIALS.
func CredentialsPathFromEnv() (string, error) {
	for _, key := range []string{EnvGoogleApplicationCredentials, EnvGoogleCredentials} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value, nil
		}
	}
	return "", fmt.Errorf(
		"missing credentials env var: set %q (or %q) to the service-account JSON path",
		EnvGoogleApplicationCredentials, EnvGoogleCredentials,
	)
}

func projectIDFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvGoogleCloudProject))
}

// ProjectIDFromGcloud asks the local gcloud configuration for its active
// project.
func ProjectIDFromGcloud(ctx context.Context, gcloudPath string) (string, error) {
	if gcloudPath == "" {
		gcloudPath = "gcloud"
	}
	cmd := exec.CommandContext(ctx, gcloudPath, "config", "get-value", "project", "--quiet")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("gcloud failed to read project (is gcloud installed and logged in?): %s", detail)
	}

	projectID := strings.TrimSpace(string(out))
	if projectID == "" {
		return "", fmt.Errorf("gcloud returned an empty project id")
	}
	return projectID, nil
}

// ResolveProjectID picks the first usable project identifier: the provided
// value, then GOOGLE_CLOUD_PROJECT, then the active gcloud configuration.
func ResolveProjectID(ctx context.Context, provided, gcloudPath string) (string, error) {
	if trimmed := strings.TrimSpace(provided); trimmed != "" {
		return trimmed, nil
	}
	if projectID := projectIDFromEnv(); projectID != "" {
		return projectID, nil
	}
	return ProjectIDFromGcloud(ctx, gcloudPath)
}
