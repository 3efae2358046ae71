package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("loading spec", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("loaded spec", "path", path, "nodes", nodeCount, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, graphID string, nodeCount int) {
	h.logger.Debug("rendering", "graph", graphID, "nodes", nodeCount)
}

func (h *logHooks) OnRenderComplete(_ context.Context, graphID string, lineCount int, d time.Duration, err error) {
	h.logger.Debug("rendered", "graph", graphID, "lines", lineCount, "duration", d, "err", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}
