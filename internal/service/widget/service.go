package widget_service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"streamer_info/internal/models"
	"streamer_info/internal/service/render"
)

// ChannelDataSource supplies fresh channel snapshots and avatar images.
type ChannelDataSource interface {
	GetChannelInfo(ctx context.Context, login string) (models.ChannelInfo, error)
	GetAvatar(ctx context.Context, uri string) ([]byte, error)
}

type ChannelCache interface {
	Get(key string) (models.ChannelInfo, bool)
	Put(key string, info models.ChannelInfo)
}

type Options struct {
	Version         string
	FreshnessWindow time.Duration
}

type WidgetService struct {
	cache    ChannelCache
	source   ChannelDataSource
	renderer *render.Renderer

	version         string
	freshnessWindow time.Duration
	now             func() time.Time

	refreshes singleflight.Group
}

func NewService(cache ChannelCache, source ChannelDataSource, renderer *render.Renderer, opts Options) *WidgetService {
	return &WidgetService{
		cache:           cache,
		source:          source,
		renderer:        renderer,
		version:         opts.Version,
		freshnessWindow: opts.FreshnessWindow,
		now:             time.Now,
	}
}
