package render

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"
)

type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatWEBP
)

const (
	MinLevel     = 0
	MaxLevel     = 9
	DefaultLevel = MaxLevel
)

func (f Format) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWEBP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatWEBP:
		return "webp"
	default:
		return "jpeg"
	}
}

// Encoding is a resolved output format with its 0-9 level.
type Encoding struct {
	Format Format
	Level  int
}

// ClampLevel maps anything outside 0-9 to the default level.
func ClampLevel(level int) int {
	if level < MinLevel || level > MaxLevel {
		return DefaultLevel
	}
	return level
}

// Quality is the encoder quality derived from the level: level*10+5 for JPEG,
// level*10+10 for WEBP. PNG has none. The WEBP value is informational only,
// Encode writes lossless VP8L which takes no quality.
func (e Encoding) Quality() int {
	level := ClampLevel(e.Level)

	switch e.Format {
	case FormatJPEG:
		return level*10 + 5
	case FormatWEBP:
		return level*10 + 10
	}

	return 0
}

// CompressionLevel maps the level onto the compression presets of image/png.
func (e Encoding) CompressionLevel() png.CompressionLevel {
	switch level := ClampLevel(e.Level); {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	}

	return png.BestCompression
}

// Encode serialises img, returning the bytes and their mime type.
func Encode(img image.Image, enc Encoding) ([]byte, string, error) {
	buf := new(bytes.Buffer)

	switch enc.Format {
	case FormatPNG:
		encoder := png.Encoder{CompressionLevel: enc.CompressionLevel()}
		if err := encoder.Encode(buf, img); err != nil {
			return nil, "", errors.Wrap(err, "png")
		}
	case FormatWEBP:
		// lossless, the quality only matters for lossy VP8
		if err := nativewebp.Encode(buf, img, nil); err != nil {
			return nil, "", errors.Wrap(err, "webp")
		}
	default:
		if err := jpeg.Encode(buf, toRGB(img), &jpeg.Options{Quality: enc.Quality()}); err != nil {
			return nil, "", errors.Wrap(err, "jpeg")
		}
	}

	return buf.Bytes(), enc.Format.MimeType(), nil
}

// toRGB drops the alpha channel by flattening img onto black.
func toRGB(img image.Image) image.Image {
	b := img.Bounds()
	opaque := image.NewRGBA(b)
	draw.Draw(opaque, b, image.Black, image.Point{}, draw.Src)
	draw.Draw(opaque, b, img, b.Min, draw.Over)
	return opaque
}
