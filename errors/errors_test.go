package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := InvalidInput("Test.Op", nil, "bad input")

	if err.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want %d", err.Code, http.StatusBadRequest)
	}
	if err.Error() != "bad input" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestAppErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal("Test.Op", cause, "save failed")

	if err.Error() != "save failed: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() did not return the cause")
	}
}

func TestUpstream(t *testing.T) {
	err := Upstream("Test.Op", http.StatusServiceUnavailable, `{"error":"down"}`)

	if err.Code != http.StatusBadGateway {
		t.Errorf("local code = %d, want 502", err.Code)
	}
	if err.UpstreamStatus != http.StatusServiceUnavailable {
		t.Errorf("upstream status = %d, want 503", err.UpstreamStatus)
	}
	if err.UpstreamBody == "" {
		t.Error("upstream body not captured")
	}
}

func TestKindChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{
			name:  "NotFound matches",
			err:   NotFound("Test.Op", nil, "missing"),
			check: IsNotFound,
			want:  true,
		},
		{
			name:  "NotFound does not match internal",
			err:   Internal("Test.Op", nil, "boom"),
			check: IsNotFound,
			want:  false,
		},
		{
			name:  "Configuration matches",
			err:   Configuration("Test.Op", "key missing"),
			check: IsConfiguration,
			want:  true,
		},
		{
			name:  "Upstream matches through wrapping",
			err:   fmt.Errorf("call failed: %w", Upstream("Test.Op", 500, "body")),
			check: IsUpstream,
			want:  true,
		},
		{
			name:  "Plain error matches nothing",
			err:   fmt.Errorf("plain"),
			check: IsNotFound,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
