package logger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type ctxKey string

const (
	ctxKeyRID      ctxKey = "rid"
	ctxKeyUpdateID ctxKey = "update_id"
	ctxKeyUserID   ctxKey = "user_id"
	ctxKeyChatID   ctxKey = "chat_id"
	ctxKeyHandler  ctxKey = "handler"
)

// WithRID stores the request identifier in the context.
func WithRID(ctx context.Context, rid string) context.Context {
	if rid == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyRID, rid)
}

// RIDFrom extracts the request identifier from the context, if present.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKeyRID).(string); ok {
		return v
	}
	return ""
}

// WithUpdateMeta stores Telegram update metadata used for correlating log lines.
func WithUpdateMeta(ctx context.Context, updateID, chatID, userID int64) context.Context {
	if updateID != 0 {
		ctx = context.WithValue(ctx, ctxKeyUpdateID, updateID)
	}
	if chatID != 0 {
		ctx = context.WithValue(ctx, ctxKeyChatID, chatID)
	}
	if userID != 0 {
		ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	}
	return ctx
}

// UpdateIDFrom extracts the Telegram update id from the context.
func UpdateIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxKeyUpdateID).(int64); ok {
		return v
	}
	return 0
}

// UserIDFrom extracts the Telegram user id from the context.
func UserIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxKeyUserID).(int64); ok {
		return v
	}
	return 0
}

// ChatIDFrom extracts the Telegram chat id from the context.
func ChatIDFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxKeyChatID).(int64); ok {
		return v
	}
	return 0
}

// WithHandler stores the handler name that is processing the update.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyHandler, handler)
}

// HandlerFrom extracts the handler name from the context.
func HandlerFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKeyHandler).(string); ok {
		return v
	}
	return ""
}

// BuildRID composes a request identifier from the update, chat and user ids.
func BuildRID(updateID, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

// CompactRID converts a "upd:chat:user" identifier into a base36 short form.
// Non-conforming values are returned unchanged.
func CompactRID(rid string) string {
	parts := strings.Split(rid, ":")
	if len(parts) != 3 {
		return rid
	}
	out := make([]string, 0, 3)
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return rid
		}
		if n < 0 {
			out = append(out, "-"+strconv.FormatInt(-n, 36))
			continue
		}
		out = append(out, strconv.FormatInt(n, 36))
	}
	return strings.Join(out, ".")
}

const defaultSanitizeLimit = 160

// Sanitize trims whitespace and truncates user-supplied text for safe logging.
func Sanitize(s string) string {
	return SanitizeLimit(s, defaultSanitizeLimit)
}

// SanitizeLimit trims and truncates s to at most limit runes, collapsing newlines.
func SanitizeLimit(s string, limit int) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
