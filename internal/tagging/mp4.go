package tagging

import (
	"fmt"

	mp4tag "github.com/Sorrow446/go-mp4tag"
)

// writeMP4 stores MP4 atoms. There is no standard label atom, so the label
// travels as a custom freeform field.
func writeMP4(path string, tags Tags) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open mp4: %w", err)
	}
	defer mp4.Close()

	out := &mp4tag.MP4Tags{
		Artist: tags.Artist,
		Title:  tags.Title,
	}
	if tags.Year > 0 {
		out.Year = int32(tags.Year)
	}
	if tags.Genre != "" {
		out.CustomGenre = tags.Genre
	}
	if tags.Label != "" {
		out.Custom = map[string]string{"LABEL": tags.Label}
	}

	if err := mp4.Write(out, []string{}); err != nil {
		return fmt.Errorf("write mp4 tags: %w", err)
	}
	return nil
}
