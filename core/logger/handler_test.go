package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	w := newAsyncWriter([]io.Writer{buf}, 0)
	h := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: w,
		format: format,
	})
	return h, w
}

func TestHandlerKVKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	h, w := newTestHandler(&buf, formatKV)

	r := slog.NewRecord(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "payment_created", 0)
	r.AddAttrs(
		slog.Int64("payment_id", 7),
		slog.String("status", "ok"),
		slog.Int64("chat_id", 42),
		slog.String("component", "svc.payments"),
	)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	want := []string{"ts=", "level=INFO", "component=svc.payments", "event=payment_created", "status=ok", "chat_id=42", "payment_id=7"}
	pos := -1
	for _, tok := range want {
		idx := strings.Index(line, tok)
		if idx < 0 {
			t.Fatalf("missing %q in %q", tok, line)
		}
		if idx < pos {
			t.Fatalf("%q out of order in %q", tok, line)
		}
		pos = idx
	}
}

func TestHandlerJSONOrderAndTimestamps(t *testing.T) {
	var buf bytes.Buffer
	h, w := newTestHandler(&buf, formatJSON)

	r := slog.NewRecord(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), slog.LevelWarn, "receipt_rejected", 0)
	r.AddAttrs(slog.String("component", "receipts"), slog.Int64("user_id", 9))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, `{"ts":"2025-03-01T12:00:00.000Z"`) {
		t.Fatalf("ts not first: %q", line)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		t.Fatalf("invalid json %q: %v", line, err)
	}
	if fields["level"] != "WARN" {
		t.Fatalf("level = %v", fields["level"])
	}
	if fields["event"] != "receipt_rejected" {
		t.Fatalf("event = %v", fields["event"])
	}
	if _, ok := fields["ts_unix_nano"]; !ok {
		t.Fatalf("ts_unix_nano missing in %q", line)
	}
}

func TestHandlerCompactRIDKV(t *testing.T) {
	var buf bytes.Buffer
	h, w := newTestHandler(&buf, formatKV)

	ctx := WithRID(context.Background(), BuildRID(100, 200, 300))
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "update_received", 0)
	if err := h.Handle(ctx, r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "rid=2s.5k.8c") {
		t.Fatalf("compact rid missing in %q", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full must not appear in kv output: %q", line)
	}
}

func TestHandlerCompactRIDJSON(t *testing.T) {
	var buf bytes.Buffer
	h, w := newTestHandler(&buf, formatJSON)

	ctx := WithRID(context.Background(), BuildRID(100, 200, 300))
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "update_received", 0)
	if err := h.Handle(ctx, r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &fields); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if fields["rid"] != "2s.5k.8c" {
		t.Fatalf("rid = %v", fields["rid"])
	}
	if fields["rid_full"] != "100:200:300" {
		t.Fatalf("rid_full = %v", fields["rid_full"])
	}
}

func TestCompactRIDPassthrough(t *testing.T) {
	for _, rid := range []string{"", "abc", "1:2", "1:x:3"} {
		if got := CompactRID(rid); got != rid {
			t.Fatalf("CompactRID(%q) = %q", rid, got)
		}
	}
}
