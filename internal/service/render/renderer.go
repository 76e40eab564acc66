// Package render composites channel snapshots onto the widget layout.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"streamer_info/internal/models"
	"streamer_info/internal/utils/formater"
)

const (
	AvatarSize = 50

	// Go Mono advances 0.6em, these sizes keep the longest texts inside the canvas
	versionFontSize = 12
	footerFontSize  = 11
	nameFontSize    = 16
	statusFontSize  = 10
	statsFontSize   = 16

	textMargin = 4
)

var avatarOffset = image.Pt(18, 52)

var (
	versionColor   = color.RGBA{0x10, 0x00, 0x2b, 0xff}
	generatedColor = color.RGBA{0x39, 0x1f, 0x54, 0xff}
	textColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

type textItem struct {
	at    image.Point // top left of the text
	size  float64
	color color.Color
	text  string
}

type Renderer struct {
	templates *Templates
	font      *opentype.Font
}

func NewRenderer(templates *Templates) (*Renderer, error) {
	if templates == nil {
		templates = DefaultTemplates()
	}

	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "opentype.Parse")
	}

	return &Renderer{
		templates: templates,
		font:      f,
	}, nil
}

// Render composes the widget and encodes it. info may be nil, in which case
// only the version label and the generated-on stamp are drawn.
func (r *Renderer) Render(info *models.ChannelInfo, avatar []byte, version string, now time.Time, enc Encoding) ([]byte, string, error) {
	img, err := r.Compose(info, avatar, version, now)
	if err != nil {
		return nil, "", err
	}

	return Encode(img, enc)
}

// Compose builds the widget canvas without encoding it.
func (r *Renderer) Compose(info *models.ChannelInfo, avatar []byte, version string, now time.Time) (*image.RGBA, error) {
	canvas := image.NewRGBA(canvasRect)

	overlay(canvas, r.templates.Background)
	overlay(canvas, r.templates.Title)
	overlay(canvas, r.templates.Content)
	if info != nil {
		if img := decodeAvatar(avatar); img != nil {
			dst := image.Rectangle{Min: avatarOffset, Max: avatarOffset.Add(image.Pt(AvatarSize, AvatarSize))}
			draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Over)
		}
	}
	overlay(canvas, r.templates.AvatarBorder)

	items := []textItem{
		{at: image.Pt(235, 6), size: versionFontSize, color: versionColor, text: version},
		{at: image.Pt(42, 188), size: footerFontSize, color: generatedColor, text: formater.GeneratedOn(now)},
	}

	if info != nil {
		if info.IsPartnered {
			overlay(canvas, r.templates.Partnered)
		}
		items = append(items, channelText(*info, now)...)
	}

	faces := make(map[float64]font.Face)
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	for _, item := range items {
		face, ok := faces[item.size]
		if !ok {
			var err error
			face, err = r.newFace(item.size)
			if err != nil {
				return nil, err
			}
			faces[item.size] = face
		}
		drawText(canvas, face, item)
	}

	return canvas, nil
}

func (r *Renderer) newFace(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "opentype.NewFace")
	}
	return face, nil
}

func channelText(info models.ChannelInfo, now time.Time) []textItem {
	return []textItem{
		{at: image.Pt(80, 55), size: nameFontSize, color: textColor, text: formater.TruncateName(info.DisplayName, formater.MaxDisplayNameLength)},
		{at: image.Pt(80, 77), size: statusFontSize, color: textColor, text: formater.StatusLine(info.IsLive, formater.HumanizeSince(info.LastStreamStart, now))},
		{at: image.Pt(68, 125), size: statsFontSize, color: textColor, text: "Viewers:"},
		{at: image.Pt(68, 150), size: statsFontSize, color: textColor, text: "Followers:"},
		{at: image.Pt(148, 125), size: statsFontSize, color: textColor, text: formater.FormatCount(info.ViewerCount, info.IsLive)},
		{at: image.Pt(148, 150), size: statsFontSize, color: textColor, text: formater.FormatCount(info.FollowerCount, true)},
	}
}

func overlay(canvas *image.RGBA, tpl image.Image) {
	if tpl == nil {
		return
	}
	draw.Draw(canvas, canvas.Bounds(), tpl, tpl.Bounds().Min, draw.Over)
}

func drawText(canvas *image.RGBA, face font.Face, item textItem) {
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(item.color),
		Face: face,
		Dot:  fixed.P(item.at.X, item.at.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(item.text)
}

// decodeAvatar returns nil for missing or undecodable data, the widget is
// then drawn with an empty avatar slot.
func decodeAvatar(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logrus.Debugf("could not decode avatar: %v", err)
		return nil
	}

	if img.Bounds().Dx() != AvatarSize || img.Bounds().Dy() != AvatarSize {
		logrus.Debugf("scaling %s avatar from %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
		img = resize.Resize(AvatarSize, AvatarSize, img, resize.Lanczos3)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	return rgba
}
