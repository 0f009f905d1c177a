package config

const (
	defaultLogDir           = "~/.local/share/stylus/logs"
	defaultDiscogsBaseURL   = "https://api.discogs.com"
	defaultDiscogsUserAgent = "Stylus/dev"
	defaultTagPattern       = "{artist} - {title}"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns the configuration stylus runs with when no file sets a
// value.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Discogs: Discogs{
			BaseURL:   defaultDiscogsBaseURL,
			UserAgent: defaultDiscogsUserAgent,
		},
		Tagging: Tagging{
			DefaultPattern: defaultTagPattern,
		},
		LookupCache: LookupCache{
			Path: defaultLookupCachePath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
