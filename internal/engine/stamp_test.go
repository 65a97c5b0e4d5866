package engine

import (
	"errors"
	"testing"
)

// TestStampedAssertVersion ensures a consumer can refuse artifacts computed
// under a stale rule version.
func TestStampedAssertVersion(t *testing.T) {
	rules := testRules(t)

	stamped := NewStamped(rules, 42)
	if !stamped.HasValidStamp() {
		t.Fatal("stamp should be valid")
	}
	if stamped.Version != "v1" {
		t.Fatalf("version = %s, want v1", stamped.Version)
	}
	if stamped.Payload != 42 {
		t.Fatalf("payload = %d, want 42", stamped.Payload)
	}

	if err := stamped.AssertVersion("v1"); err != nil {
		t.Fatalf("AssertVersion(v1) returned error: %v", err)
	}
	if err := stamped.AssertVersion("v2"); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("AssertVersion(v2) error = %v, want %v", err, ErrVersionMismatch)
	}

	var unstamped Stamped[int]
	if unstamped.HasValidStamp() {
		t.Fatal("zero stamp should be invalid")
	}
	if err := unstamped.AssertVersion("v1"); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("unstamped AssertVersion error = %v, want %v", err, ErrVersionMismatch)
	}
}
