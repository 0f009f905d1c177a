// Package lookupcache provides a local cache of Discogs lookup results keyed
// by artist and title.
//
// The cache eliminates repeat catalog searches for tracks that were already
// resolved in an earlier run. When a pair is found in the cache, stylus skips
// the search, the candidate verification fetches, and the courtesy delays, and
// tags the file from the cached result directly.
//
// # Storage
//
// Entries live in one JSON file (default ~/.cache/stylus/lookup_cache.json)
// that stays readable enough to inspect or edit by hand. Saves go through a
// temp file and rename, and a sibling .lock file serializes access across
// concurrent stylus processes.
//
// # Usage
//
// Caching is off until config.toml turns it on:
//
//	[lookup_cache]
//	enabled = true
//	path = "~/.cache/stylus/lookup_cache.json"
package lookupcache
