package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
//
//	h := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(h)
//	observability.SetCacheHooks(h)
//	observability.SetHTTPHooks(h)
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger, or to log.Default() when nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnParseStart(_ context.Context, format string) {
	h.logger.Debug("parse start", "format", format)
}

func (h *LogHooks) OnParseComplete(_ context.Context, format string, wordCount int, d time.Duration, err error) {
	h.done("parse complete", err, "format", format, "words", wordCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, wordCount int) {
	h.logger.Debug("layout start", "words", wordCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placed, dropped int, d time.Duration, err error) {
	h.done("layout complete", err, "placed", placed, "dropped", dropped, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render complete", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Warn("request failed", "method", method, "path", path, "err", err)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
