package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch-platform-go/internal/fanout"
	"dispatch-platform-go/internal/logx"
)

const heartbeatInterval = 15 * time.Second

// EventsHandler streams fanout events over Server-Sent Events. Each
// connection is one hub subscriber; disconnecting leaves the groups and
// nothing else.
type EventsHandler struct {
	hub    *fanout.Hub
	logger logx.Logger
}

// NewEventsHandler wires a fanout.Hub into an SSE endpoint.
func NewEventsHandler(hub *fanout.Hub, logger logx.Logger) *EventsHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &EventsHandler{hub: hub, logger: logger}
}

// Stream handles GET /events?groups=managers,partner:<id>. The default is
// the managers group.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	groups, err := parseGroups(r.URL.Query().Get("groups"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(h.logger, w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.hub.Join(groups...)
	defer h.hub.Leave(sub)

	h.logger.Info("event stream opened",
		logx.String("req_id", reqID(r.Context())),
		logx.Any("groups", groups),
	)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("event marshal failed", logx.Any("err", err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		}
	}
}

func parseGroups(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{fanout.GroupManagers}, nil
	}

	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, part := range parts {
		g := strings.TrimSpace(part)
		switch {
		case g == fanout.GroupManagers:
		case strings.HasPrefix(g, "partner:") && len(g) > len("partner:"):
		default:
			return nil, fmt.Errorf("unknown group %q", g)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
