package tagging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLAC rewrites the vorbis-comment block, replacing the fields stylus
// owns and carrying every other comment over unchanged. All other metadata
// blocks are left in place.
func writeFLAC(path string, tags Tags) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	var existing *flacvorbis.MetaDataBlockVorbisComment
	blockIdx := -1
	for idx, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			parsed, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return fmt.Errorf("parse vorbis comment: %w", err)
			}
			existing = parsed
			blockIdx = idx
			break
		}
	}

	replaced := vorbisFieldsToReplace(tags)
	cmts := flacvorbis.New()
	if existing != nil {
		cmts.Vendor = existing.Vendor
		for _, comment := range existing.Comments {
			if !replaced[vorbisFieldName(comment)] {
				cmts.Comments = append(cmts.Comments, comment)
			}
		}
	}

	if err := addVorbisFields(cmts, tags); err != nil {
		return err
	}

	cmtsMeta := cmts.Marshal()
	if blockIdx >= 0 {
		f.Meta[blockIdx] = &cmtsMeta
	} else {
		f.Meta = append(f.Meta, &cmtsMeta)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save flac: %w", err)
	}
	return nil
}

func addVorbisFields(cmts *flacvorbis.MetaDataBlockVorbisComment, tags Tags) error {
	add := func(field, value string) error {
		if err := cmts.Add(field, value); err != nil {
			return fmt.Errorf("add vorbis field %s: %w", field, err)
		}
		return nil
	}
	if err := add(flacvorbis.FIELD_ARTIST, tags.Artist); err != nil {
		return err
	}
	if err := add(flacvorbis.FIELD_TITLE, tags.Title); err != nil {
		return err
	}
	if tags.Year > 0 {
		if err := add(flacvorbis.FIELD_DATE, strconv.Itoa(tags.Year)); err != nil {
			return err
		}
	}
	if tags.Genre != "" {
		if err := add(flacvorbis.FIELD_GENRE, tags.Genre); err != nil {
			return err
		}
	}
	if tags.Label != "" {
		if err := add("LABEL", tags.Label); err != nil {
			return err
		}
	}
	return nil
}

func vorbisFieldsToReplace(tags Tags) map[string]bool {
	fields := map[string]bool{
		flacvorbis.FIELD_ARTIST: true,
		flacvorbis.FIELD_TITLE:  true,
	}
	if tags.Year > 0 {
		fields[flacvorbis.FIELD_DATE] = true
	}
	if tags.Genre != "" {
		fields[flacvorbis.FIELD_GENRE] = true
	}
	if tags.Label != "" {
		fields["LABEL"] = true
	}
	return fields
}

func vorbisFieldName(comment string) string {
	field, _, _ := strings.Cut(comment, "=")
	return strings.ToUpper(strings.TrimSpace(field))
}
