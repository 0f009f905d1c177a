package tagging

import (
	"fmt"
	"strconv"

	id3v2 "github.com/bogem/id3v2/v2"
)

// writeMP3 stores ID3v2.4 frames. The year lands in both TYER and TDRC so
// v2.3-only readers see it too.
func writeMP3(path string, tags Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(tags.Artist)
	tag.SetTitle(tags.Title)
	if tags.Year > 0 {
		year := strconv.Itoa(tags.Year)
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, year)
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, year)
	}
	if tags.Genre != "" {
		tag.SetGenre(tags.Genre)
	}
	if tags.Label != "" {
		tag.AddTextFrame("TPUB", id3v2.EncodingUTF8, tags.Label)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save mp3 tags: %w", err)
	}
	return nil
}
