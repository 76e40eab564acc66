package widget_service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"streamer_info/internal/cache"
	"streamer_info/internal/models"
	"streamer_info/internal/service/render"
)

type WidgetRequest struct {
	Channel   string // raw path segment
	Mode      string // mode query parameter
	Level     string // level query parameter
	UserAgent string
}

type Widget struct {
	Data        []byte
	ContentType string
	Stale       bool // rendered from a snapshot whose refresh failed
}

// GetWidget renders the widget of the requested channel. ErrInvalidKey and
// ErrNotFound mean there is nothing to render.
func (ws *WidgetService) GetWidget(ctx context.Context, req WidgetRequest) (*Widget, error) {
	key, err := models.NormalizeChannelKey(req.Channel)
	if err != nil {
		return nil, err
	}

	info, stale, err := ws.GetChannelInfo(ctx, key)
	if err != nil {
		return nil, err
	}

	avatar, err := ws.source.GetAvatar(ctx, info.AvatarURI)
	if err != nil {
		logrus.WithField("channel", key).Debugf("rendering without avatar: %v", err)
		avatar = nil
	}

	enc := render.Encoding{
		Format: ParseMode(req.Mode).Format(req.UserAgent),
		Level:  ParseLevel(req.Level),
	}

	data, contentType, err := ws.renderer.Render(&info, avatar, ws.version, ws.now(), enc)
	if err != nil {
		return nil, errors.Wrap(err, "Render")
	}

	return &Widget{
		Data:        data,
		ContentType: contentType,
		Stale:       stale,
	}, nil
}

// GetChannelInfo returns the cached snapshot of key while it is fresh and
// refreshes it otherwise. When the refresh fails the previous snapshot is
// returned flagged as stale.
func (ws *WidgetService) GetChannelInfo(ctx context.Context, key string) (models.ChannelInfo, bool, error) {
	cached, ok := ws.cache.Get(key)
	if ok && cache.IsFresh(cached, ws.now(), ws.freshnessWindow) {
		logrus.WithField("channel", key).Debug("cache hit")
		return cached, false, nil
	}

	logrus.WithField("channel", key).Debug("cache miss, refreshing")

	// callers joining this refresh must not fail when the first one goes away,
	// the client timeout still bounds the fetch
	fetchCtx := context.WithoutCancel(ctx)

	res, err, _ := ws.refreshes.Do(key, func() (interface{}, error) {
		info, err := ws.source.GetChannelInfo(fetchCtx, key)
		if err != nil {
			return nil, err
		}
		ws.cache.Put(key, info)
		return info, nil
	})
	if err != nil {
		if ok {
			logrus.WithField("channel", key).Warnf("serving stale data, refresh failed: %v", err)
			return cached, true, nil
		}
		return models.ChannelInfo{}, false, err
	}

	return res.(models.ChannelInfo), false, nil
}

// ParseLevel reads the level query parameter, defaulting to 9 when it is
// missing, malformed or out of range.
func ParseLevel(raw string) int {
	if raw == "" {
		return render.DefaultLevel
	}

	level, err := strconv.Atoi(raw)
	if err != nil {
		return render.DefaultLevel
	}

	return render.ClampLevel(level)
}
