package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat defaults to PNG for anything unknown.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatWebP)) {
		return FormatWebP
	}
	return FormatPNG
}

func (f Format) ContentType() string {
	if f == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

func (f Format) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".png"
}

// Encode writes img in format f. WebP output is lossless.
func Encode(img image.Image, f Format) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch f {
	case FormatWebP:
		if err := webp.Encode(buf, img, &webp.Options{Lossless: true}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}
