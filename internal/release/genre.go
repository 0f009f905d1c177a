package release

import "strings"

// maxGenreEntries caps how many genre and style names feed the written tag.
const maxGenreEntries = 3

// GenreString combines genres followed by styles into the single value
// written to a file's genre tag, keeping at most the first three entries.
func GenreString(genres, styles []string) string {
	combined := make([]string, 0, len(genres)+len(styles))
	combined = append(combined, genres...)
	combined = append(combined, styles...)
	if len(combined) > maxGenreEntries {
		combined = combined[:maxGenreEntries]
	}
	return strings.Join(combined, ", ")
}
