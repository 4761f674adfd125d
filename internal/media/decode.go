package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Kind classifies an upload by its broad media family.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindUnknown Kind = "unknown"
)

// KindOf derives the media kind from a MIME content type, falling back to
// content sniffing when the declared type is empty or generic.
func KindOf(contentType string, data []byte) Kind {
	ct := strings.TrimSpace(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	case strings.HasPrefix(ct, "audio/"):
		return KindAudio
	default:
		return KindUnknown
	}
}

// Decode parses image bytes into an image.Image. Supported formats are
// JPEG, PNG, GIF, BMP, and WebP.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}
