// Package config loads the stylus TOML configuration.
//
// Load resolves which file to read (an explicit --config path, the per-user
// location, or a stylus.toml in the working directory), parses it over the
// compiled-in defaults, then normalizes and validates the result. Paths come
// back absolute with ~ expanded, and the Discogs token falls back to the
// DISCOGS_TOKEN environment variable when the file leaves it empty.
//
// Every command reads settings through this package so path handling, log
// format names, and validation errors stay consistent.
package config
