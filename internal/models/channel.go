package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	MinChannelKeyLength = 3
	MaxChannelKeyLength = 25

	// browsers probe /favicon.ico on every page they open
	FaviconProbePrefix = "favico"
)

// ChannelInfo is a point-in-time snapshot of a channel. It is passed by value,
// a refresh always produces a new snapshot.
type ChannelInfo struct {
	Key             string    // lower-cased channel login
	DisplayName     string    // human-readable channel name
	IsPartnered     bool      // channel is a Twitch partner
	AvatarURI       string    // URL of the 50x50 profile image
	IsLive          bool      // channel is streaming right now
	ViewerCount     uint64    // live viewers, meaningful only when IsLive
	FollowerCount   uint64    // total followers
	LastStreamStart time.Time // zero if the channel never streamed
	FetchedAt       time.Time // set by the data source when the snapshot was taken
}

func (ci ChannelInfo) HasStreamed() bool {
	return !ci.LastStreamStart.IsZero()
}

// NormalizeChannelKey lower-cases the raw path segment and checks that it can
// be a Twitch login at all.
func NormalizeChannelKey(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))

	if strings.HasPrefix(key, FaviconProbePrefix) {
		return "", errors.Wrapf(ErrInvalidKey, "reserved prefix in %q", raw)
	}

	length := utf8.RuneCountInString(key)
	if length < MinChannelKeyLength || length > MaxChannelKeyLength {
		return "", errors.Wrapf(ErrInvalidKey, "length %d of %q", length, raw)
	}

	return key, nil
}
