package logger

import (
	"testing"

	"github.com/caentzminger/defillama/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.DebugObj("request completed", "request", map[string]any{"status": 200})
	log.WarnObj("request failed", "request", map[string]any{"status": 404})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[1].Level)
	}
	if _, ok := entries[0].ContextMap()["request"]; !ok {
		t.Fatalf("expected request field, got %v", entries[0].ContextMap())
	}
}

func TestInit(t *testing.T) {
	if l := Init(nil); l != nil {
		t.Fatalf("expected nil logger for nil config, got %v", l)
	}
	if l := Init(&config.Config{LogLevel: "  "}); l != nil {
		t.Fatalf("expected nil logger for blank level, got %v", l)
	}
	l := Init(&config.Config{LogLevel: "debug"})
	if l == nil {
		t.Fatal("expected logger")
	}
	if !l.l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}
