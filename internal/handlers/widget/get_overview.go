package widget_handler

import (
	_ "embed"
	"net/http"
)

//go:embed static/overview.html
var overviewPage []byte

func (wh *WidgetHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(overviewPage)
}
