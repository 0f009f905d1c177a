package logging_test

import (
	"strings"
	"testing"

	"stylus/internal/logging"
)

func TestNewComponentLoggerWithNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "batch")
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	// No-op base must swallow output without panicking.
	logger.Info("discarded")
}

func TestHasAttrKey(t *testing.T) {
	attrs := []logging.Attr{logging.String("alpha", "1"), logging.Int("beta", 2)}
	if !logging.HasAttrKey(attrs, "alpha") {
		t.Fatal("expected alpha key to be found")
	}
	if logging.HasAttrKey(attrs, "gamma") {
		t.Fatal("did not expect gamma key")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	logging.WarnWithContext(logger, "fallback engaged", "verification_fallback")

	line := buf.String()
	if !strings.Contains(line, "event_type=verification_fallback") {
		t.Fatalf("expected event_type attr, got %q", line)
	}
	if !strings.Contains(line, "error_hint=") {
		t.Fatalf("expected error_hint attr, got %q", line)
	}
	if !strings.Contains(line, "impact=") {
		t.Fatalf("expected impact attr, got %q", line)
	}
}

func TestErrorWithContextKeepsCallerHint(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	logging.ErrorWithContext(logger, "write failed", "tag_write_failed",
		logging.String(logging.FieldErrorHint, "verify file permissions"))

	line := buf.String()
	if !strings.Contains(line, "event_type=tag_write_failed") {
		t.Fatalf("expected event_type attr, got %q", line)
	}
	if !strings.Contains(line, `error_hint="verify file permissions"`) {
		t.Fatalf("expected caller-provided hint to win, got %q", line)
	}
	if strings.Contains(line, "check logs for details") {
		t.Fatalf("default hint should not override caller hint: %q", line)
	}
}
