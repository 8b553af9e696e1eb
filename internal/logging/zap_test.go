package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestLogger(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, logs := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	tests := []struct {
		level zapcore.Level
		msg   string
		key   string
	}{
		{zapcore.DebugLevel, "dbg", "a"},
		{zapcore.InfoLevel, "inf", "b"},
		{zapcore.WarnLevel, "wrn", "c"},
		{zapcore.ErrorLevel, "err", "d"},
	}

	entries := logs.All()
	if len(entries) != len(tests) {
		t.Fatalf("expected %d entries, got %d", len(tests), len(entries))
	}

	for i, tc := range tests {
		e := entries[i]
		if e.Level != tc.level {
			t.Fatalf("entry %d: expected level %s, got %s", i, tc.level, e.Level)
		}
		if e.Message != tc.msg {
			t.Fatalf("entry %d: expected msg %q, got %q", i, tc.msg, e.Message)
		}
		fields := e.ContextMap()
		if _, ok := fields[tc.key]; !ok {
			t.Fatalf("entry %d: expected attribute %q in %v", i, tc.key, fields)
		}
	}
}

func TestZapLogger_With_AddsAttributes(t *testing.T) {
	log, logs := newTestLogger(t)
	ctx := context.Background()

	log2 := log.With("req_id", "123", "user", "alice")
	log2.Info(ctx, "hello", "k", "v")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	for _, key := range []string{"req_id", "user", "k"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected attribute %q in %v", key, fields)
		}
	}
}
