package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/bubblemanga/mangamirror/internal"
	"github.com/prometheus/client_golang/prometheus"
)

// pgconfig configures a Postgres connection.
type pgconfig struct {
	PostgresHost     string `default:"localhost" env:"POSTGRES_HOST" help:"Postgres host."`
	PostgresUser     string `default:"postgres" env:"POSTGRES_USER" help:"Postgres user."`
	PostgresPassword string `default:"" env:"POSTGRES_PASSWORD" help:"Postgres password."`
	PostgresPort     int    `default:"5432" env:"POSTGRES_PORT" help:"Postgres port."`
	PostgresDatabase string `default:"mangamirror" env:"POSTGRES_DATABASE" help:"Postgres database to use."`
}

// dsn returns the database's DSN based on the provided flags.
func (c *pgconfig) dsn() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:   net.JoinHostPort(c.PostgresHost, fmt.Sprint(c.PostgresPort)),
		Path:   c.PostgresDatabase,
	}
	return u.String()
}

// storeconfig selects the mirror's backend. SQLite wins when a path is given.
type storeconfig struct {
	pgconfig
	SQLite string `name:"sqlite" env:"SQLITE_PATH" help:"Use a SQLite database at this path instead of Postgres."`
}

func (c *storeconfig) open(ctx context.Context) (internal.Store, error) {
	if c.SQLite != "" {
		return internal.NewSQLiteStore(ctx, c.SQLite)
	}
	return internal.NewPGStore(ctx, c.dsn())
}

type logconfig struct {
	Verbose bool `env:"VERBOSE" help:"Increase log verbosity."`
}

type upstreamconfig struct {
	SenkuroHost string        `default:"api.senkuro.com" env:"SENKURO_HOST" help:"Upstream GraphQL host."`
	RateLimit   time.Duration `default:"100ms" env:"RATE_LIMIT" help:"Minimum time between upstream requests."`
	PageDelay   time.Duration `default:"10ms" env:"PAGE_DELAY" help:"Pause between chapter pages during a backfill."`
}

type serveCmd struct {
	storeconfig
	logconfig
	upstreamconfig

	Port         int           `default:"8788" env:"PORT" help:"Port to serve traffic on."`
	PollInterval time.Duration `default:"60s" env:"POLL_INTERVAL" help:"How often to poll the upstream feed for releases."`

	TelegramBotToken         string `env:"TELEGRAM_BOT_TOKEN" help:"Bot token. Notifications are disabled without one."`
	SiteURL                  string `default:"http://91.196.34.216" env:"SITE_URL" help:"Public site used for links in notifications."`
	OutboxSize               int    `default:"1024" env:"OUTBOX_SIZE" help:"Deliveries that may wait for a worker before new ones are dropped."`
	OutboxWorkers            int    `default:"1" env:"OUTBOX_WORKERS" help:"Concurrent notification senders."`
	RespectNotificationPrefs bool   `env:"RESPECT_NOTIFICATION_PREFS" help:"Skip subscribers who turned notifications off."`
}

func (s *serveCmd) Run() error {
	internal.SetupLogging(s.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := internal.NewMetrics()

	store, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	internal.RegisterDBMetrics(store, reg)

	getter := internal.NewSenkuroGetter(internal.NewSenkuroGQL(s.SenkuroHost, s.RateLimit, reg))

	ctrl, err := internal.NewController(store, getter, nil, internal.NewPersister(store), s.PageDelay, reg)
	if err != nil {
		return err
	}
	go ctrl.Run(ctx)

	outbox := internal.NewOutbox(s.OutboxSize, s.OutboxWorkers, reg)
	outbox.Start()

	var (
		fanout *internal.Fanout
		poller *internal.Poller
	)
	if s.TelegramBotToken != "" {
		fanout = internal.NewFanout(store, outbox, internal.NewTelegramClient(s.TelegramBotToken), s.SiteURL, s.RespectNotificationPrefs)
		poller = internal.NewPoller(store, getter, fanout, s.PollInterval, reg)
	} else {
		internal.Log(ctx).Warn("TELEGRAM_BOT_TOKEN isn't set, notifications are disabled")
		poller = internal.NewPoller(store, getter, nil, s.PollInterval, reg)
	}
	go poller.Run(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           internal.NewMux(internal.NewHandler(ctrl, fanout), reg),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errC := make(chan error, 1)
	go func() {
		internal.Log(ctx).Info("listening", "port", s.Port)
		errC <- server.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	internal.Log(ctx).Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		internal.Log(shutdownCtx).Warn("problem shutting down server", "err", err)
	}
	// Let the poller finish its tick before the outbox and store go away.
	stop()
	poller.Wait(shutdownCtx)
	ctrl.Shutdown(shutdownCtx)
	outbox.Shutdown(shutdownCtx)

	return nil
}

type backfillCmd struct {
	storeconfig
	logconfig
	upstreamconfig

	SkipExisting bool          `help:"Skip manga which already have mirrored chapters."`
	OnlyMissing  bool          `help:"Only backfill manga with no declared chapters."`
	Limit        int           `default:"0" help:"Backfill at most this many manga. 0 means all of them."`
	Delay        time.Duration `default:"500ms" help:"Pause between manga."`
}

func (b *backfillCmd) Run() error {
	internal.SetupLogging(b.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := b.open(ctx)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	getter := internal.NewSenkuroGetter(internal.NewSenkuroGQL(b.SenkuroHost, b.RateLimit, prometheus.NewRegistry()))

	ctrl, err := internal.NewController(store, getter, nil, nil, b.PageDelay, nil)
	if err != nil {
		return err
	}

	return ctrl.BackfillAll(ctx, b.OnlyMissing, b.SkipExisting, b.Limit, b.Delay)
}
