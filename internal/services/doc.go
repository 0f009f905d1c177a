// Package services holds the error and context conventions shared by the
// tagging pipeline.
//
// Sentinel markers distinguish failures that should skip a file from those
// that fail it, and Wrap attaches a marker plus component/operation detail
// to an underlying error. Context helpers stamp the run ID and the file
// being processed so logs from any package line up.
//
// New pipeline code should classify its errors through these markers rather
// than invent new sentinel values.
package services
