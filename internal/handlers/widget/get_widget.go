package widget_handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"streamer_info/internal/models"
	widget_service "streamer_info/internal/service/widget"
)

const StaleHeader = "X-Widget-Stale"

func (wh *WidgetHandler) GetWidget(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()

	query := r.URL.Query()
	req := widget_service.WidgetRequest{
		Channel:   mux.Vars(r)["channel"],
		Mode:      query.Get("mode"),
		Level:     query.Get("level"),
		UserAgent: r.UserAgent(),
	}

	res, err := wh.widgetService.GetWidget(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidKey):
			logrus.Debug(err)
		case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrUpstream):
			logrus.Info(err)
		default:
			logrus.Error(err)
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	if res.Stale {
		w.Header().Set(StaleHeader, "true")
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
