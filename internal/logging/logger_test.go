package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stylus/internal/config"
	"stylus/internal/logging"
	"stylus/internal/services"
)

func newBufferLogger(t *testing.T, opts logging.Options) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Writer = buf
	logger, err := logging.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, buf
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Info("config logger message")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "stylus.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "config logger message") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestFilePathMirrorsWriter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "mirror.log")

	logger, buf := newBufferLogger(t, logging.Options{FilePath: logPath})
	logger.Info("mirrored line")

	if !strings.Contains(buf.String(), "mirrored line") {
		t.Fatalf("expected line on writer, got %q", buf.String())
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "mirrored line") {
		t.Fatalf("expected line in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "debug"})

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug-level logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	component := logging.NewComponentLogger(logger, "resolver")
	component.Info("lookup complete", logging.String("artist", "Pink Floyd"), logging.Int("candidates", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO resolver: lookup complete") {
		t.Fatalf("expected component prefix in output, got %q", line)
	}
	if !strings.Contains(line, `artist="Pink Floyd"`) {
		t.Fatalf("expected quoted attr value, got %q", line)
	}
	if !strings.Contains(line, "candidates=3") {
		t.Fatalf("expected integer attr, got %q", line)
	}
}

func TestConsoleLoggerFlattensGroups(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	logger.WithGroup("request").Info("sent", logging.String("method", "GET"))

	if !strings.Contains(buf.String(), "request.method=GET") {
		t.Fatalf("expected dotted group key, got %q", buf.String())
	}
}

func TestJSONLoggerRemapsKeys(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "json", Level: "info"})

	logger.Info("json message")

	line := buf.String()
	for _, fragment := range []string{`"ts":`, `"level":"info"`, `"msg":"json message"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in JSON output, got %q", fragment, line)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "yaml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	logger, buf := newBufferLogger(t, logging.Options{Format: "console", Level: "info"})

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithFile(ctx, "/music/a.mp3")
	logging.WithContext(ctx, logger).Info("processing")

	line := buf.String()
	if !strings.Contains(line, "run_id=run-42") {
		t.Fatalf("expected run_id attr, got %q", line)
	}
	if !strings.Contains(line, "file=/music/a.mp3") {
		t.Fatalf("expected file attr, got %q", line)
	}
}
