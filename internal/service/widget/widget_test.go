package widget_service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"streamer_info/internal/cache"
	"streamer_info/internal/models"
	"streamer_info/internal/service/render"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type stubSource struct {
	mu        sync.Mutex
	calls     int
	avatars   int
	err       error
	now       func() time.Time
	followers uint64
}

func (s *stubSource) GetChannelInfo(_ context.Context, login string) (models.ChannelInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return models.ChannelInfo{}, s.err
	}

	return models.ChannelInfo{
		Key:           login,
		DisplayName:   strings.ToUpper(login),
		FollowerCount: s.followers,
		FetchedAt:     s.now(),
	}, nil
}

func (s *stubSource) GetAvatar(_ context.Context, _ string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.avatars++
	return nil, models.ErrAvatarUnavailable
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*WidgetService, *stubSource, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	source := &stubSource{now: clock.Now, followers: 12345}

	renderer, err := render.NewRenderer(render.DefaultTemplates())
	require.NoError(t, err)

	ws := NewService(cache.NewFreshnessCache(), source, renderer, Options{
		Version:         "0.1.0",
		FreshnessWindow: 60 * time.Second,
	})
	ws.now = clock.Now

	return ws, source, clock
}

func TestGetWidget_CacheHitWithinWindow(t *testing.T) {
	ws, source, clock := newTestService(t)
	ctx := context.Background()

	_, err := ws.GetWidget(ctx, WidgetRequest{Channel: "PapaPlatte", Mode: "png"})
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	_, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)

	require.Equal(t, 1, source.Calls())
}

func TestGetWidget_RefreshAfterWindow(t *testing.T) {
	ws, source, clock := newTestService(t)
	ctx := context.Background()

	_, err := ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	_, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)
	require.Equal(t, 2, source.Calls())

	// the refreshed snapshot is fresh again
	_, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)
	require.Equal(t, 2, source.Calls())
}

func TestGetWidget_InvalidKey(t *testing.T) {
	ws, source, _ := newTestService(t)

	for _, channel := range []string{"ab", strings.Repeat("a", 26), "favicon.ico"} {
		_, err := ws.GetWidget(context.Background(), WidgetRequest{Channel: channel})
		require.True(t, errors.Is(err, models.ErrInvalidKey), channel)
	}

	require.Equal(t, 0, source.Calls())
}

func TestGetWidget_NotFound(t *testing.T) {
	ws, source, _ := newTestService(t)
	source.err = errors.Wrap(models.ErrNotFound, "login nobody")

	_, err := ws.GetWidget(context.Background(), WidgetRequest{Channel: "nobody"})
	require.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetWidget_UpstreamErrorWithoutCache(t *testing.T) {
	ws, source, _ := newTestService(t)
	source.err = errors.Wrap(models.ErrUpstream, "status code: 500")

	_, err := ws.GetWidget(context.Background(), WidgetRequest{Channel: "papaplatte"})
	require.True(t, errors.Is(err, models.ErrUpstream))
}

func TestGetWidget_StaleOnFailedRefresh(t *testing.T) {
	ws, source, clock := newTestService(t)
	ctx := context.Background()

	res, err := ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)
	require.False(t, res.Stale)

	clock.Advance(2 * time.Minute)
	source.mu.Lock()
	source.err = errors.Wrap(models.ErrUpstream, "timeout")
	source.mu.Unlock()

	res, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png"})
	require.NoError(t, err)
	require.True(t, res.Stale)
	require.Equal(t, "image/png", res.ContentType)
	require.Equal(t, 2, source.Calls())
}

func TestGetWidget_FormatNegotiation(t *testing.T) {
	ws, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "png", Level: "3"})
	require.NoError(t, err)
	require.Equal(t, "image/png", res.ContentType)

	res, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "bogus", UserAgent: chromeUA})
	require.NoError(t, err)
	require.Equal(t, "image/webp", res.ContentType)

	res, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "bogus"})
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", res.ContentType)

	res, err = ws.GetWidget(ctx, WidgetRequest{Channel: "papaplatte", Mode: "JPG", UserAgent: chromeUA})
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", res.ContentType)
}

func TestGetChannelInfo_ConcurrentSameKey(t *testing.T) {
	ws, source, _ := newTestService(t)
	wg := new(sync.WaitGroup)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, _, err := ws.GetChannelInfo(context.Background(), "papaplatte")
			require.NoError(t, err)
			require.Equal(t, "PAPAPLATTE", info.DisplayName)
		}()
	}
	wg.Wait()

	require.GreaterOrEqual(t, source.Calls(), 1)
	require.LessOrEqual(t, source.Calls(), 10)
}

func TestParseMode(t *testing.T) {
	require.Equal(t, ModePNG, ParseMode("png"))
	require.Equal(t, ModePNG, ParseMode("PNG"))
	require.Equal(t, ModeJPEG, ParseMode("jpeg"))
	require.Equal(t, ModeJPEG, ParseMode("Jpg"))
	require.Equal(t, ModeWEBP, ParseMode("webp"))
	require.Equal(t, ModeAuto, ParseMode(""))
	require.Equal(t, ModeAuto, ParseMode("gif"))
}

func TestMode_Format(t *testing.T) {
	require.Equal(t, render.FormatPNG, ModePNG.Format(""))
	require.Equal(t, render.FormatWEBP, ModeWEBP.Format(""))
	require.Equal(t, render.FormatWEBP, ModeAuto.Format(chromeUA))
	require.Equal(t, render.FormatWEBP, ModeAuto.Format("Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"))
	require.Equal(t, render.FormatJPEG, ModeAuto.Format("curl/8.5.0"))
	require.Equal(t, render.FormatJPEG, ModeAuto.Format(""))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, 9, ParseLevel(""))
	require.Equal(t, 3, ParseLevel("3"))
	require.Equal(t, 0, ParseLevel("0"))
	require.Equal(t, 9, ParseLevel("10"))
	require.Equal(t, 9, ParseLevel("-1"))
	require.Equal(t, 9, ParseLevel("max"))
}

type blockingSource struct {
	stubSource
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *blockingSource) GetChannelInfo(ctx context.Context, login string) (models.ChannelInfo, error) {
	s.once.Do(func() { close(s.started) })

	select {
	case <-s.release:
	case <-ctx.Done():
		return models.ChannelInfo{}, ctx.Err()
	}

	return s.stubSource.GetChannelInfo(ctx, login)
}

func TestGetChannelInfo_SharedRefreshOutlivesCanceledCaller(t *testing.T) {
	ws, _, clock := newTestService(t)
	source := &blockingSource{
		stubSource: stubSource{now: clock.Now, followers: 10},
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	ws.source = source

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, _, err := ws.GetChannelInfo(ctxA, "papaplatte")
		errA <- err
	}()
	<-source.started

	type result struct {
		info models.ChannelInfo
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		info, _, err := ws.GetChannelInfo(context.Background(), "papaplatte")
		resB <- result{info: info, err: err}
	}()

	// let B join the in-flight refresh before A goes away
	time.Sleep(50 * time.Millisecond)
	cancelA()
	time.Sleep(50 * time.Millisecond)
	close(source.release)

	b := <-resB
	require.NoError(t, b.err)
	require.Equal(t, "PAPAPLATTE", b.info.DisplayName)
	require.NoError(t, <-errA)
	require.Equal(t, 1, source.Calls())
}
