// Package main implements the stylus command line interface.
//
// stylus walks directories of audio files, derives artist and title from
// each filename, and writes the result into the files' tags. Subcommands
// cover the batch tagging run itself (tag), one-off Discogs lookups
// (lookup), reading existing tags back out (inspect), lookup-cache
// maintenance (cache), and configuration scaffolding (config).
//
// Command functions stay thin: flag parsing, configuration resolution, and
// output rendering. The actual work lives in the internal packages.
package main
