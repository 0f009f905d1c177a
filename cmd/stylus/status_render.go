package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"stylus/internal/batch"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderFileStatus formats one per-file outcome as "<marker> <name>: <message>".
func renderFileStatus(result batch.FileResult, colorize bool) string {
	marker := statusMarker(result.Status)
	if colorize {
		if color := statusColor(result.Status); color != "" {
			marker = color + marker + ansiReset
		}
	}
	return fmt.Sprintf("%s %s: %s", marker, filepath.Base(result.Path), result.Message)
}

func statusMarker(status batch.Status) string {
	switch status {
	case batch.StatusTagged:
		return "✓"
	case batch.StatusSkipped:
		return "⊘"
	case batch.StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

func statusColor(status batch.Status) string {
	switch status {
	case batch.StatusTagged:
		return ansiGreen
	case batch.StatusSkipped:
		return ansiYellow
	case batch.StatusFailed:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
