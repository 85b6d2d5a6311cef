package sealog

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/sealog/sealog/pkg/types"
)

// Writer adapts the Logger to io.Writer so it can back the standard
// library's log package or anything else that writes lines.
type Writer struct {
	logger *Logger
	level  int
}

// NewWriter returns an io.Writer logging each write as one record at the
// given level.
func NewWriter(l *Logger, level int) *Writer {
	return &Writer{logger: l, level: level}
}

// Write implements io.Writer. The trailing newline, if any, is stripped;
// the write itself never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.logger.Log(w.level, strings.TrimRight(string(p), "\n"), nil)
	return len(p), nil
}

// ZapCore adapts the Logger to zapcore.Core so applications already
// instrumented with zap can fan their entries into the engine, gaining the
// queue, filtering, tagging and metrics without touching call sites:
//
//	zl := zap.New(sealog.NewZapCore(logger))
//	zl.Info("request served", zap.String("route", "/api"))
type ZapCore struct {
	logger *Logger
	fields []zapcore.Field
}

// NewZapCore wraps the logger in a zapcore.Core.
func NewZapCore(l *Logger) *ZapCore {
	return &ZapCore{logger: l}
}

// Enabled implements zapcore.LevelEnabler against the engine's global
// minimum level.
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return fromZapLevel(level) >= c.logger.GetLevel()
}

// With implements zapcore.Core, accumulating structured context.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ZapCore{logger: c.logger}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

// Check implements zapcore.Core.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core by enqueueing one engine record. The
// engine re-stamps sequence and timestamp; zap's own timestamp is dropped.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	var ctx map[string]interface{}
	if len(c.fields) > 0 || len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range c.fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			f.AddTo(enc)
		}
		ctx = enc.Fields
	}
	c.logger.Log(fromZapLevel(ent.Level), ent.Message, ctx)
	return nil
}

// Sync implements zapcore.Core by flushing the handlers.
func (c *ZapCore) Sync() error {
	return c.logger.Flush()
}

func fromZapLevel(level zapcore.Level) int {
	switch {
	case level <= zapcore.DebugLevel:
		return types.LevelDebug
	case level == zapcore.InfoLevel:
		return types.LevelInfo
	case level == zapcore.WarnLevel:
		return types.LevelWarn
	case level == zapcore.ErrorLevel:
		return types.LevelError
	default:
		return types.LevelFatal
	}
}
