package widget_handler

import (
	widget_service "streamer_info/internal/service/widget"
)

type WidgetHandler struct {
	widgetService *widget_service.WidgetService
}

func NewWidgetHandler(widgetService *widget_service.WidgetService) *WidgetHandler {
	return &WidgetHandler{
		widgetService: widgetService,
	}
}
