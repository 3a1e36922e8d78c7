// Package logger provides the structured slog-based logging used across the
// bot: a custom handler with stable key ordering, async buffered file sinks,
// per-component child loggers and debug sampling.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	coreconfig "github.com/m3rciful/coursebot/core/config"
)

var (
	initOnce sync.Once
	initErr  error

	levelVar    slog.LevelVar
	mainWriter  *asyncWriter
	errWriter   *asyncWriter
	debugSample *ratioSampler

	root *slog.Logger

	components   = map[string]*slog.Logger{}
	componentsMu sync.RWMutex
)

// Component names used by the core and the application layers.
const (
	ComponentApp       = "app"
	ComponentDB        = "db"
	ComponentMigrate   = "migrate"
	ComponentTG        = "tg"
	ComponentWire      = "tg.wire"
	ComponentUsers     = "svc.users"
	ComponentCatalog   = "svc.catalog"
	ComponentPayments  = "svc.payments"
	ComponentBroadcast = "svc.broadcast"
	ComponentReceipts  = "receipts"
)

// Package-level component loggers. Usable before InitLogger; rebound to the
// configured handler once InitLogger runs.
var (
	App       = Component(ComponentApp)
	DB        = Component(ComponentDB)
	MIG       = Component(ComponentMigrate)
	TG        = Component(ComponentTG)
	TWire     = Component(ComponentWire)
	Users     = Component(ComponentUsers)
	Catalog   = Component(ComponentCatalog)
	Payments  = Component(ComponentPayments)
	Broadcast = Component(ComponentBroadcast)
	Receipts  = Component(ComponentReceipts)
)

// InitLogger configures the process-wide logger. Safe to call more than once;
// only the first call takes effect.
func InitLogger(cfg coreconfig.LoggingConfig) error {
	initOnce.Do(func() {
		initErr = initLogger(cfg)
	})
	return initErr
}

func initLogger(cfg coreconfig.LoggingConfig) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}
	levelVar.Set(level)

	format := formatKV
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "kv":
		format = formatKV
	case "json":
		format = formatJSON
	default:
		return fmt.Errorf("logger: unknown format %q; allowed: kv, json", cfg.Format)
	}

	keyOrder := append([]string(nil), defaultKeyOrder...)
	if extra := splitCSV(cfg.KeysOrder); len(extra) > 0 {
		keyOrder = mergeKeyOrder(keyOrder, extra)
	}

	sampleRatio := 1.0
	if s := strings.TrimSpace(cfg.DebugSample); s != "" {
		sampleRatio, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("logger: invalid debug_sample %q: %w", cfg.DebugSample, err)
		}
	}
	debugSample = newRatioSampler(sampleRatio)

	mainSinks, errSinks, err := buildOutputs(cfg)
	if err != nil {
		return err
	}

	mainWriter = newAsyncWriter(mainSinks, 0)
	handler := newStructuredHandler(handlerConfig{
		level:    &levelVar,
		writer:   mainWriter,
		format:   format,
		keyOrder: keyOrder,
	})

	if len(errSinks) > 0 {
		errWriter = newAsyncWriter(errSinks, 0)
		errHandler := newStructuredHandler(handlerConfig{
			level:    slog.LevelWarn,
			writer:   errWriter,
			format:   format,
			keyOrder: keyOrder,
		})
		root = slog.New(teeHandler{primary: handler, secondary: errHandler})
	} else {
		root = slog.New(handler)
	}
	slog.SetDefault(root)

	wireComponents()
	return nil
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown level %q", raw)
	}
}

func buildOutputs(cfg coreconfig.LoggingConfig) (main, errs []io.Writer, err error) {
	main = append(main, os.Stdout)
	if cfg.Dir == "" {
		return main, nil, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logger: create log dir: %w", err)
	}
	botFile := cfg.BotFile
	if botFile == "" {
		botFile = "bot.log"
	}
	f, err := openLogFile(filepath.Join(cfg.Dir, botFile))
	if err != nil {
		return nil, nil, err
	}
	main = append(main, f)

	if cfg.ErrorsFile != "" {
		ef, err := openLogFile(filepath.Join(cfg.Dir, cfg.ErrorsFile))
		if err != nil {
			return nil, nil, err
		}
		errs = append(errs, ef)
	}
	return main, errs, nil
}

func openLogFile(path string) (io.Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", path, err)
	}
	return f, nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeKeyOrder(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, k := range base {
		seen[k] = struct{}{}
	}
	for _, k := range extra {
		if _, ok := seen[k]; !ok {
			base = append(base, k)
			seen[k] = struct{}{}
		}
	}
	return base
}

func wireComponents() {
	componentsMu.Lock()
	for _, name := range []string{
		ComponentApp,
		ComponentDB,
		ComponentMigrate,
		ComponentTG,
		ComponentWire,
		ComponentUsers,
		ComponentCatalog,
		ComponentPayments,
		ComponentBroadcast,
		ComponentReceipts,
	} {
		components[name] = root.With(slog.String("component", name))
	}
	componentsMu.Unlock()

	App = Component(ComponentApp)
	DB = Component(ComponentDB)
	MIG = Component(ComponentMigrate)
	TG = Component(ComponentTG)
	TWire = Component(ComponentWire)
	Users = Component(ComponentUsers)
	Catalog = Component(ComponentCatalog)
	Payments = Component(ComponentPayments)
	Broadcast = Component(ComponentBroadcast)
	Receipts = Component(ComponentReceipts)
}

// Component returns the child logger for the named component, creating one on
// first use. Falls back to the default logger before InitLogger.
func Component(name string) *slog.Logger {
	componentsMu.RLock()
	l, ok := components[name]
	componentsMu.RUnlock()
	if ok {
		return l
	}
	base := root
	if base == nil {
		return slog.Default().With(slog.String("component", name))
	}
	componentsMu.Lock()
	defer componentsMu.Unlock()
	if l, ok := components[name]; ok {
		return l
	}
	l = base.With(slog.String("component", name))
	components[name] = l
	return l
}

// SetLevel changes the minimum log level at runtime.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// ShouldSampleDebug reports whether debug logs keyed by key are admitted under
// the configured sampling ratio. Non-debug levels are never sampled away.
func ShouldSampleDebug(key string) bool {
	if debugSample == nil {
		return true
	}
	return debugSample.Allow(key)
}

// Flush forces buffered log lines out to the sinks.
func Flush() error {
	var errs []error
	if mainWriter != nil {
		if err := mainWriter.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if errWriter != nil {
		if err := errWriter.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Shutdown flushes and closes the log sinks. Call once on process exit.
func Shutdown() error {
	var first error
	if mainWriter != nil {
		if err := mainWriter.Close(); err != nil && first == nil {
			first = err
		}
	}
	if errWriter != nil {
		if err := errWriter.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// teeHandler sends every record to the primary handler and duplicates
// warnings and errors to the secondary one.
type teeHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.primary.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	err := t.primary.Handle(ctx, r)
	if r.Level >= slog.LevelWarn && t.secondary.Enabled(ctx, r.Level) {
		if secErr := t.secondary.Handle(ctx, r.Clone()); secErr != nil && err == nil {
			err = secErr
		}
	}
	return err
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{
		primary:   t.primary.WithAttrs(attrs),
		secondary: t.secondary.WithAttrs(attrs),
	}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{
		primary:   t.primary.WithGroup(name),
		secondary: t.secondary.WithGroup(name),
	}
}
