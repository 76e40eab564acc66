package formater

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	MaxDisplayNameLength = 19
	CountWidth           = 10
)

// TruncateName cuts name to at most max characters.
func TruncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}

	return string(runes[:max])
}

// FormatCount groups thousands with a dot and right-justifies the result.
// Missing and zero counts are shown as a dash.
func FormatCount(count uint64, present bool) string {
	text := "-"
	if present && count > 0 {
		text = strings.ReplaceAll(humanize.Comma(int64(count)), ",", ".")
	}

	return fmt.Sprintf("%*s", CountWidth, text)
}

// StatusLine describes the channel's last stream.
func StatusLine(live bool, lastStream string) string {
	if live {
		return "Last stream: LIVE"
	}

	return "Last stream: " + lastStream
}
