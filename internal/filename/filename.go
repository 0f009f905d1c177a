// Package filename parses artist/title metadata out of audio filenames using a
// template with {artist} and {title} placeholders.
//
// Template text outside the placeholders matches literally (regex
// metacharacters included), {artist} captures non-greedily, {title} greedily,
// and the whole stem must match case-insensitively. This mirrors how users
// name files like "Pink Floyd - Comfortably Numb.mp3".
package filename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	artistPlaceholder = "{artist}"
	titlePlaceholder  = "{title}"
)

// ParsedName is the artist/title pair recovered from a filename stem.
type ParsedName struct {
	Artist string
	Title  string
}

// Pattern is a compiled filename template ready for repeated matching.
type Pattern struct {
	raw         string
	re          *regexp.Regexp
	artistIndex int
	titleIndex  int
}

// Compile validates and compiles a filename template. The template must
// contain {artist} and {title} exactly once each; everything else is treated
// as literal text.
func Compile(pattern string) (*Pattern, error) {
	for _, placeholder := range []string{artistPlaceholder, titlePlaceholder} {
		switch count := strings.Count(pattern, placeholder); count {
		case 1:
		case 0:
			return nil, fmt.Errorf("pattern %q must contain %s", pattern, placeholder)
		default:
			return nil, fmt.Errorf("pattern %q must contain %s exactly once, found %d", pattern, placeholder, count)
		}
	}

	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.Replace(escaped, regexp.QuoteMeta(artistPlaceholder), `(?P<artist>.+?)`, 1)
	escaped = strings.Replace(escaped, regexp.QuoteMeta(titlePlaceholder), `(?P<title>.+)`, 1)

	re, err := regexp.Compile(`(?i)^` + escaped + `$`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	return &Pattern{
		raw:         pattern,
		re:          re,
		artistIndex: re.SubexpIndex("artist"),
		titleIndex:  re.SubexpIndex("title"),
	}, nil
}

// String returns the original template text.
func (p *Pattern) String() string {
	return p.raw
}

// Parse matches the stem of name (base name without the final extension)
// against the template. On match it returns the captured artist and title with
// surrounding whitespace trimmed; ok is false when the stem does not match.
func (p *Pattern) Parse(name string) (ParsedName, bool) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	match := p.re.FindStringSubmatch(stem)
	if match == nil {
		return ParsedName{}, false
	}

	parsed := ParsedName{
		Artist: strings.TrimSpace(match[p.artistIndex]),
		Title:  strings.TrimSpace(match[p.titleIndex]),
	}
	return parsed, true
}
