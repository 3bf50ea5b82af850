package translate

import (
	"strings"
	"testing"
)

func TestReadingAnnotator(t *testing.T) {
	ra, err := NewReadingAnnotator()
	if err != nil {
		t.Fatalf("create annotator: %v", err)
	}

	reading := ra.Reading("工場")
	if reading != "コウジョウ" {
		t.Fatalf("reading = %q, want コウジョウ", reading)
	}

	annotated := ra.Annotate("工場")
	if !strings.Contains(annotated, "工場") || !strings.Contains(annotated, "コウジョウ") {
		t.Fatalf("annotated = %q", annotated)
	}
}

func TestAnnotateSkipsRedundantReading(t *testing.T) {
	ra, err := NewReadingAnnotator()
	if err != nil {
		t.Fatalf("create annotator: %v", err)
	}
	// Katakana text reads as itself; no bracket should be added.
	if got := ra.Annotate("コーヒー"); got != "コーヒー" {
		t.Fatalf("got %q", got)
	}
	if got := ra.Annotate(FailureTag); got != FailureTag {
		t.Fatalf("failure tag must pass through, got %q", got)
	}
	if got := ra.Annotate(""); got != "" {
		t.Fatalf("empty must pass through, got %q", got)
	}
}
