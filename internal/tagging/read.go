package tagging

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Read returns the tags currently stored in the file. Format detection is by
// content sniffing, so it also covers containers stylus cannot write.
func Read(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags from %s: %w", path, err)
	}

	return Tags{
		Artist: m.Artist(),
		Title:  m.Title(),
		Year:   m.Year(),
		Genre:  m.Genre(),
		Label:  labelFromRaw(m.Raw()),
	}, nil
}

// labelFromRaw digs the publisher out of the raw frame map; the Metadata
// interface has no accessor for it. TPUB covers ID3, lowercase keys cover
// vorbis comments.
func labelFromRaw(raw map[string]interface{}) string {
	for _, key := range []string{"TPUB", "label", "LABEL"} {
		if value, ok := raw[key]; ok {
			if s, ok := value.(string); ok {
				return s
			}
		}
	}
	return ""
}
