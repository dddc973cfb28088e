package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventbuddy/internal/delivery/http/helpers"
	"eventbuddy/internal/domain"
)

// streamBuffer is how many notifications a slow client may lag behind before
// further ones are dropped for it.
const streamBuffer = 64

type NotificationController struct {
	Logger   *slog.Logger
	Notifier domain.Notifier
}

func NewNotificationController(logger *slog.Logger, notifier domain.Notifier) *NotificationController {
	return &NotificationController{
		Logger:   logger,
		Notifier: notifier,
	}
}

// Stream godoc
// @Summary Stream store notifications
// @Description Server-sent events, one per notification. The event name is the notification kind. Use kinds=a,b to restrict the stream.
// @Tags notifications
// @Produce text/event-stream
// @Param kinds query string false "Comma-separated notification kinds"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /notifications [get]
func (c *NotificationController) Stream(w http.ResponseWriter, r *http.Request) {
	wanted, err := parseKinds(r.URL.Query().Get("kinds"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	rc := http.NewResponseController(w)
	ch := make(chan domain.Notification, streamBuffer)
	unsubscribe := c.Notifier.SubscribeAll(func(n domain.Notification) {
		if wanted != nil && !wanted[n.Kind] {
			return
		}
		select {
		case ch <- n:
		default:
			c.Logger.Warn("notification dropped for slow client", "kind", n.Kind)
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		c.Logger.ErrorContext(r.Context(), "streaming unsupported", "err", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case n := <-ch:
			payload, err := json.Marshal(n)
			if err != nil {
				c.Logger.ErrorContext(r.Context(), "encode notification", "kind", n.Kind, "err", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Kind, payload); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func parseKinds(s string) (map[domain.NotificationKind]bool, error) {
	if s == "" {
		return nil, nil
	}
	known := make(map[domain.NotificationKind]bool, len(domain.NotificationKinds))
	for _, k := range domain.NotificationKinds {
		known[k] = true
	}
	wanted := make(map[domain.NotificationKind]bool)
	for _, part := range strings.Split(s, ",") {
		k := domain.NotificationKind(strings.TrimSpace(part))
		if !known[k] {
			return nil, fmt.Errorf("unknown notification kind %q", k)
		}
		wanted[k] = true
	}
	return wanted, nil
}
