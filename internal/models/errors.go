package models

import "github.com/pkg/errors"

var (
	ErrInvalidKey        = errors.New("invalid channel key")
	ErrNotFound          = errors.New("channel not found")
	ErrUpstream          = errors.New("upstream unavailable")
	ErrAvatarUnavailable = errors.New("avatar unavailable")
)
