package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	CanvasWidth  = 275
	CanvasHeight = 221
)

var canvasRect = image.Rect(0, 0, CanvasWidth, CanvasHeight)

// Templates are full-canvas overlays composited back to front.
type Templates struct {
	Background   image.Image
	Title        image.Image
	Content      image.Image
	AvatarBorder image.Image
	Partnered    image.Image
}

var templateFiles = map[string]func(*Templates) *image.Image{
	"widget_background.png":     func(t *Templates) *image.Image { return &t.Background },
	"widget_title.png":          func(t *Templates) *image.Image { return &t.Title },
	"content_background.png":    func(t *Templates) *image.Image { return &t.Content },
	"channel_avatar_border.png": func(t *Templates) *image.Image { return &t.AvatarBorder },
	"channel_partnered.png":     func(t *Templates) *image.Image { return &t.Partnered },
}

// LoadTemplates reads the overlay PNGs found in dir. Missing files fall back
// to the built-in overlays.
func LoadTemplates(dir string) (*Templates, error) {
	templates := DefaultTemplates()
	if dir == "" {
		return templates, nil
	}

	for name, field := range templateFiles {
		img, err := loadPNG(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				logrus.Debugf("template %s not found in %s, using built-in", name, dir)
				continue
			}
			return nil, errors.Wrap(err, name)
		}
		*field(templates) = img
	}

	return templates, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "Decode")
	}

	if img.Bounds().Dx() != CanvasWidth || img.Bounds().Dy() != CanvasHeight {
		return nil, errors.Errorf("expected %dx%d, got %dx%d", CanvasWidth, CanvasHeight, img.Bounds().Dx(), img.Bounds().Dy())
	}

	return img, nil
}

var (
	backgroundColor = color.RGBA{0x24, 0x00, 0x46, 0xff}
	frameColor      = color.RGBA{0x10, 0x00, 0x2b, 0xff}
	titleColor      = color.RGBA{0xc7, 0x7d, 0xff, 0xff}
	contentColor    = color.RGBA{0x3c, 0x09, 0x6c, 0xff}
	borderColor     = color.RGBA{0xe0, 0xaa, 0xff, 0xff}
	partnerColor    = color.RGBA{0x91, 0x46, 0xff, 0xff}
)

// DefaultTemplates draws the built-in overlays.
func DefaultTemplates() *Templates {
	background := image.NewRGBA(canvasRect)
	fill(background, canvasRect, frameColor)
	fill(background, canvasRect.Inset(2), backgroundColor)

	title := image.NewRGBA(canvasRect)
	fill(title, image.Rect(2, 2, CanvasWidth-2, 28), titleColor)

	content := image.NewRGBA(canvasRect)
	fill(content, image.Rect(10, 40, CanvasWidth-10, 180), contentColor)

	// frame around the avatar slot
	border := image.NewRGBA(canvasRect)
	slot := image.Rectangle{Min: avatarOffset, Max: avatarOffset.Add(image.Pt(AvatarSize, AvatarSize))}
	frame := slot.Inset(-2)
	fill(border, image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, slot.Min.Y), borderColor)
	fill(border, image.Rect(frame.Min.X, slot.Max.Y, frame.Max.X, frame.Max.Y), borderColor)
	fill(border, image.Rect(frame.Min.X, slot.Min.Y, slot.Min.X, slot.Max.Y), borderColor)
	fill(border, image.Rect(slot.Max.X, slot.Min.Y, frame.Max.X, slot.Max.Y), borderColor)

	// badge on the lower right corner of the avatar
	partnered := image.NewRGBA(canvasRect)
	badge := image.Rect(slot.Max.X-10, slot.Max.Y-10, slot.Max.X+4, slot.Max.Y+4)
	fill(partnered, badge, borderColor)
	fill(partnered, badge.Inset(2), partnerColor)

	return &Templates{
		Background:   background,
		Title:        title,
		Content:      content,
		AvatarBorder: border,
		Partnered:    partnered,
	}
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
