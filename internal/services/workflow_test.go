package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWorkflowClientSendsRequest(t *testing.T) {
	t.Parallel()

	var (
		gotBody   map[string]any
		gotSecret string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("x-workflow-secret")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"originalScore": 40}`))
	}))
	defer server.Close()

	client := NewWorkflowClient(server.URL, "s3cret", 45*time.Second, zap.NewNop())
	payload, err := client.RequestJobMatch(context.Background(), sampleResume("Jane"), "Go developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotSecret != "s3cret" {
		t.Fatalf("expected secret header, got %q", gotSecret)
	}
	if gotBody["jobDescription"] != "Go developer" || gotBody["source"] != "job-match-api" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if _, ok := gotBody["resume"].(map[string]any); !ok {
		t.Fatalf("expected resume object in request, got %v", gotBody["resume"])
	}
	if !reflect.DeepEqual(payload, map[string]any{"originalScore": 40.0}) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestWorkflowClientUpstreamFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error": "boom"}`},
		{name: "not found", status: http.StatusNotFound, body: "no such webhook"},
		{name: "empty body", status: http.StatusOK, body: "  "},
		{name: "non-JSON body", status: http.StatusOK, body: "<html>ok</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewWorkflowClient(server.URL, "", time.Second, zap.NewNop())
			_, err := client.RequestJobMatch(context.Background(), sampleResume("Jane"), "Go")
			if !errors.Is(err, ErrUpstreamUnavailable) {
				t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
			}
		})
	}
}

func TestWorkflowClientUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewWorkflowClient(url, "", time.Second, zap.NewNop())
	_, err := client.RequestJobMatch(context.Background(), sampleResume("Jane"), "Go")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestWorkflowClientWithoutURL(t *testing.T) {
	t.Parallel()

	client := NewWorkflowClient("  ", "", time.Second, zap.NewNop())
	_, err := client.RequestJobMatch(context.Background(), sampleResume("Jane"), "Go")
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected ErrConfigurationMissing, got %v", err)
	}
}

func TestUnwrapWorkflowPayload(t *testing.T) {
	t.Parallel()

	inner := map[string]any{"originalScore": 10.0}

	tests := []struct {
		name    string
		payload any
		want    any
	}{
		{name: "array takes first element", payload: []any{inner, map[string]any{}}, want: inner},
		{name: "empty array", payload: []any{}, want: map[string]any{}},
		{name: "direct result", payload: map[string]any{"originalScore": 10.0, "body": "x"}, want: map[string]any{"originalScore": 10.0, "body": "x"}},
		{name: "body envelope", payload: map[string]any{"body": inner}, want: inner},
		{name: "data envelope", payload: map[string]any{"data": inner}, want: inner},
		{name: "result before output", payload: map[string]any{"output": "late", "result": inner}, want: inner},
		{name: "output envelope", payload: map[string]any{"output": inner}, want: inner},
		{name: "unknown object", payload: map[string]any{"score": 1.0}, want: map[string]any{"score": 1.0}},
		{name: "scalar", payload: "text", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := unwrapWorkflowPayload(tt.payload); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unwrapWorkflowPayload() = %v, want %v", got, tt.want)
			}
		})
	}
}
