package main

import (
	"encoding/json"
	"io"
)

// printJSON writes v to w as indented JSON, the shape shared by every
// machine-readable flag in the CLI.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
