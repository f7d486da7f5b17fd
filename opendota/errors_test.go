package opendota

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIDefaultsStatus(t *testing.T) {
	e := API(0, "connection refused")
	if e.Status != 500 {
		t.Errorf("expected default status 500, got %d", e.Status)
	}
	if e.Kind != KindAPI {
		t.Errorf("expected api kind, got %s", e.Kind)
	}
}

func TestAsErrorUnwraps(t *testing.T) {
	inner := Timeout("request timed out")
	wrapped := fmt.Errorf("calling upstream: %w", inner)

	e := AsError(wrapped)
	if e.Kind != KindTimeout {
		t.Errorf("expected timeout kind through wrapping, got %s", e.Kind)
	}
}

func TestAsErrorWrapsUnknown(t *testing.T) {
	e := AsError(errors.New("boom"))
	if e.Kind != KindUnexpected {
		t.Errorf("expected unexpected kind, got %s", e.Kind)
	}
	if e.Message != "boom" {
		t.Errorf("expected message preserved, got %q", e.Message)
	}
}

func TestValidationIsClientError(t *testing.T) {
	e := Validation("match_id is required")
	if e.Status != 400 {
		t.Errorf("expected 400, got %d", e.Status)
	}
}
