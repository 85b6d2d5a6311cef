package sealog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestZapCore_RoutesEntriesIntoEngine(t *testing.T) {
	logger, mem := newCaptureLogger(t, nil)

	zl := zap.New(NewZapCore(logger))
	zl.Info("request served", zap.String("route", "/api"), zap.Int("status", 200))
	zl.Warn("slow query", zap.Duration("took", 0))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := decodeEntries(t, mem)
	if len(entries) != 2 {
		t.Fatalf("expected 2 records, got %d", len(entries))
	}

	if entries[0]["message"] != "request served" || entries[0]["level"] != "INFO" {
		t.Errorf("entry 0 = %v", entries[0])
	}
	ctx, ok := entries[0]["context"].(map[string]interface{})
	if !ok {
		t.Fatalf("entry 0 has no context: %v", entries[0])
	}
	if ctx["route"] != "/api" {
		t.Errorf("route = %v", ctx["route"])
	}
	if ctx["status"] != float64(200) {
		t.Errorf("status = %v", ctx["status"])
	}
	if entries[1]["level"] != "WARN" {
		t.Errorf("entry 1 level = %v", entries[1]["level"])
	}
}

func TestZapCore_WithAccumulatesFields(t *testing.T) {
	logger, mem := newCaptureLogger(t, nil)

	core := NewZapCore(logger).With([]zapcore.Field{zap.String("service", "billing")})
	zl := zap.New(core)
	zl.Info("invoice created", zap.String("id", "inv-42"))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := decodeEntries(t, mem)
	if len(entries) != 1 {
		t.Fatalf("expected 1 record, got %d", len(entries))
	}
	ctx := entries[0]["context"].(map[string]interface{})
	if ctx["service"] != "billing" || ctx["id"] != "inv-42" {
		t.Errorf("context = %v", ctx)
	}
}

func TestZapCore_RespectsEngineLevel(t *testing.T) {
	logger, mem := newCaptureLogger(t, func(cfg *Config) {
		cfg.Level = "error"
	})

	core := NewZapCore(logger)
	if core.Enabled(zapcore.DebugLevel) {
		t.Error("debug enabled at error level")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Error("error disabled at error level")
	}

	zl := zap.New(core)
	zl.Info("suppressed")
	zl.Error("kept")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := decodeEntries(t, mem)
	if len(entries) != 1 || entries[0]["message"] != "kept" {
		t.Fatalf("expected only the error record, got %v", entries)
	}
}
