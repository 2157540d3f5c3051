package vision

import (
	"image"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// Orientation reads the EXIF orientation tag (1-8) from encoded image
// bytes. Missing or unreadable EXIF yields the identity orientation 1;
// phone photos are the common case, screenshots and PNGs simply have no
// tag.
func Orientation(data []byte) int {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return 1
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 1
	}

	for _, entry := range entries {
		if entry.TagName != "Orientation" {
			continue
		}
		if v, ok := entry.Value.([]uint16); ok && len(v) > 0 {
			return int(v[0])
		}
		if n, err := strconv.Atoi(entry.Formatted); err == nil {
			return n
		}
	}
	return 1
}

// ApplyOrientation maps an EXIF orientation value onto the transform
// that brings the image upright. Unknown values are a no-op.
func ApplyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// Stored rotated 90° counter-clockwise; rotate clockwise to fix.
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// Metadata summarizes the capture tags worth logging alongside a scan.
type Metadata struct {
	Make     string
	Model    string
	Software string
	TakenAt  time.Time
}

// IsZero reports whether no usable tags were found.
func (m Metadata) IsZero() bool {
	return m.Make == "" && m.Model == "" && m.Software == "" && m.TakenAt.IsZero()
}

// ExtractMetadata pulls camera make/model, software, and the original
// capture time from EXIF. Absence of EXIF data is normal and yields a
// zero Metadata.
func ExtractMetadata(data []byte) Metadata {
	var meta Metadata

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return meta
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return meta
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "Make":
			meta.Make = entry.Formatted
		case "Model":
			meta.Model = entry.Formatted
		case "Software":
			meta.Software = entry.Formatted
		case "DateTimeOriginal":
			if t, err := time.Parse("2006:01:02 15:04:05", entry.Formatted); err == nil {
				meta.TakenAt = t
			}
		}
	}
	return meta
}
