package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSlogLogger_LevelsWriteExpectedOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
	}{
		{"DEBUG", "dbg"},
		{"INFO", "inf"},
		{"WARN", "wrn"},
		{"ERROR", "err"},
	}
	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected line with level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected line with msg=%s in output:\n%s", tc.msg, out)
		}
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "bogus")
	ctx := context.Background()

	log.Debug(ctx, "hidden")
	log.Info(ctx, "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug output should be suppressed at info level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("info output missing:\n%s", out)
	}
}

func TestWith_AddsPersistentAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info").With("component", "session")

	log.Info(context.Background(), "msg")

	if !strings.Contains(buf.String(), "component=session") {
		t.Fatalf("expected component attr in output:\n%s", buf.String())
	}
}
