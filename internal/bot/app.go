// Package bot assembles the course storefront: per-chat conversation flow,
// catalog browsing, receipt intake and the admin review loop.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/coursebot/core/bootstrap"
	"github.com/m3rciful/coursebot/core/buildinfo"
	coreconfig "github.com/m3rciful/coursebot/core/config"
	coredatabase "github.com/m3rciful/coursebot/core/database"
	"github.com/m3rciful/coursebot/core/logger"
	coretelegram "github.com/m3rciful/coursebot/core/telegram"
	"github.com/m3rciful/coursebot/core/telegram/commands"
	"github.com/m3rciful/coursebot/core/telegram/helpers"
	"github.com/m3rciful/coursebot/core/telegram/router"
	"github.com/m3rciful/coursebot/core/telegram/state"
	"github.com/m3rciful/coursebot/core/telegram/ui"
	"github.com/m3rciful/coursebot/internal/i18n"
	"github.com/m3rciful/coursebot/internal/receipts"
	"github.com/m3rciful/coursebot/internal/service/broadcast"
	"github.com/m3rciful/coursebot/internal/service/catalog"
	"github.com/m3rciful/coursebot/internal/service/payments"
	"github.com/m3rciful/coursebot/internal/service/users"
	"github.com/m3rciful/coursebot/internal/storage/postgres"
)

// App owns the storefront's services and implements the handler surface the
// Telegram runtime binds to.
type App struct {
	cfg *Config

	store    *postgres.Storage
	sessions state.Manager
	locks    *state.ChatLocks
	files    *receipts.Store

	users     *users.Service
	catalog   *catalog.Service
	payments  *payments.Service
	broadcast *broadcast.Service

	// bot is set once the runtime hands over the live instance; handlers
	// that download files or push out-of-band messages load it from here.
	bot atomic.Pointer[tele.Bot]
}

// New bootstraps infrastructure and wires the services. The Telegram side
// is attached later via TelegramRunOptions.
func New(ctx context.Context, cfg *Config) (*App, error) {
	boot, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Connect:  coredatabase.Connect,
		Migrate:  coredatabase.RunMigrations,
		Seeders: []bootstrap.Seeder{
			bootstrap.SeederFunc(postgres.SeedInfoPages),
		},
	})
	if err != nil {
		return nil, err
	}

	sessions, err := buildSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := postgres.New(boot.DB)
	files := receipts.NewStore(cfg.Receipts.Dir)

	a := &App{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		locks:    state.NewChatLocks(),
		files:    files,

		users:    users.New(store),
		catalog:  catalog.New(store),
		payments: payments.New(store, files, nil),
	}
	delay := time.Duration(cfg.Broadcast.DelayMS) * time.Millisecond
	a.broadcast = broadcast.New(store, nil, delay)
	return a, nil
}

func buildSessions(ctx context.Context, cfg *Config) (state.Manager, error) {
	switch cfg.Session.Backend {
	case coreconfig.SessionBackendRedis:
		m, err := state.NewRedisManager(ctx, state.RedisOptions{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("bot: session backend: %w", err)
		}
		return m, nil
	default:
		return state.NewMemoryManager(), nil
	}
}

// TelegramRunOptions assembles the registry, routes and middlewares for the
// Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Baslaw / Бошлаш",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "Járdem / Ёрдам",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Biykarlaw / Бекор қилиш",
	})
	reg.RegisterCommand("/pending", commands.Command{
		Handler:   a.cmdPending,
		AdminOnly: true,
		Hidden:    true,
	})
	reg.RegisterCommand("/reject", commands.Command{
		Handler:   a.cmdReject,
		AdminOnly: true,
		Hidden:    true,
	})
	reg.RegisterCommand("/broadcast", commands.Command{
		Handler:   a.cmdBroadcast,
		AdminOnly: true,
		Hidden:    true,
	})

	for key, h := range map[string]tele.HandlerFunc{
		cbSetLang:       a.handleSetLang,
		cbCourse:        a.handleCourse,
		cbBuy:           a.handleBuy,
		cbBackToCourses: a.handleBackToCourses,
		cbBackToMenu:    a.handleBackToMenu,
		cbPayMethod:     a.handlePaymentMethod,
		cbCancelPayment: a.handleCancelPayment,
		cbCancelPending: a.handleCancelPending,
		cbAdminApprove:  a.handleAdminApprove,
		cbAdminReject:   a.handleAdminReject,
	} {
		if err := reg.RegisterCallback(key, h); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}

	var fallbacks ui.FallbackProvider = a
	reg.SetTextFallback(fallbacks.UnknownText())
	reg.SetCallbackNotFound(fallbacks.UnknownCallback())

	mws := coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), a.locks, nil)
	mws = append(mws, coretelegram.Middleware{Name: "activity", Use: a.trackActivity})

	routes := router.MessageRoutes(fsmAdapter{app: a}, reg, router.MessageOptions{
		UnknownText:  fallbacks.UnknownText(),
		UnknownMedia: fallbacks.UnknownMedia(),
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: reg.CallbackNotFound(),
	}))
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})...)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		Bind: func(b *tele.Bot) {
			a.bot.Store(b)
			n := newNotifier(b, a.cfg.Telegram.AdminChatID, a.files)
			a.payments.SetNotifier(n)
			a.broadcast.SetSender(n)
		},
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.App.Info("bot online",
				slog.String("event", "online"),
				slog.String("version", buildinfo.Version),
				slog.String("commit", buildinfo.Commit),
			)
			go func() { _ = a.payments.Sweep(ctx) }()
			return nil
		},
	}, nil
}

// trackActivity bumps the sender's last-activity stamp on every update the
// bot processes, not just /start.
func (a *App) trackActivity(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if chat := c.Chat(); chat != nil {
			a.users.Touch(helpers.BuildContext(c), chat.ID)
		}
		return next(c)
	}
}

// UnknownText greets chats with no active conversation: menu labels still
// work, anything else points at /start.
func (a *App) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.BuildContext(c)
		loc := a.localeOf(ctx, c)

		if handled, err := a.handleMenuText(c, loc, c.Text()); handled {
			return err
		}
		return helpers.SendText(c, i18n.Text("error_start_command", loc))
	}
}

// UnknownMedia answers uploads that arrive outside the receipt step.
func (a *App) UnknownMedia() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.BuildContext(c)
		loc := a.localeOf(ctx, c)

		if msg := c.Message(); msg != nil && msg.Photo != nil {
			return helpers.SendText(c, i18n.Text("photo_received_outside_payment", loc))
		}
		return helpers.SendText(c, i18n.Text("document_received_outside_payment", loc))
	}
}

// UnknownCallback answers taps on buttons from stale messages.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.BuildContext(c)
		return helpers.SendText(c, i18n.Text("error_start_command", a.localeOf(ctx, c)))
	}
}
