package widget_service

import (
	"strings"

	"streamer_info/internal/service/render"
)

// Mode is the output format a client asked for.
type Mode int

const (
	ModeAuto Mode = iota
	ModePNG
	ModeJPEG
	ModeWEBP
)

// user agent fragments of browsers that decode WEBP
var browserTokens = []string{"Chrome", "Chromium", "Firefox", "Edg", "Safari", "OPR", "Opera"}

// ParseMode reads the mode query parameter. Unknown values mean ModeAuto.
func ParseMode(raw string) Mode {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PNG":
		return ModePNG
	case "JPEG", "JPG":
		return ModeJPEG
	case "WEBP":
		return ModeWEBP
	}

	return ModeAuto
}

// Format resolves the mode to a concrete format. ModeAuto serves WEBP to known
// browsers and JPEG to everything else.
func (m Mode) Format(userAgent string) render.Format {
	switch m {
	case ModePNG:
		return render.FormatPNG
	case ModeJPEG:
		return render.FormatJPEG
	case ModeWEBP:
		return render.FormatWEBP
	}

	if IsBrowser(userAgent) {
		return render.FormatWEBP
	}

	return render.FormatJPEG
}

func IsBrowser(userAgent string) bool {
	for _, token := range browserTokens {
		if strings.Contains(userAgent, token) {
			return true
		}
	}

	return false
}
