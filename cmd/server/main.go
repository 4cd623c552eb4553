package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	emailPkg "github.com/revanth2426/gym-frontend-new/internal/adapters/email"
	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	web "github.com/revanth2426/gym-frontend-new/internal/adapters/http"
	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/perf"
	"github.com/revanth2426/gym-frontend-new/internal/adapters/storage"
	accountStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/account"
	auditStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/audit"
	noticeStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/notice"
	outboxStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/outbox"
	"github.com/revanth2426/gym-frontend-new/internal/application/events"
	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/application/views"
	"github.com/revanth2426/gym-frontend-new/internal/config"
	"github.com/revanth2426/gym-frontend-new/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const (
	outboxInterval       = 1 * time.Minute
	sessionSweepInterval = 1 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err.Error())
		os.Exit(1)
	}

	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("server_failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// WAL mode, busy timeout, and foreign keys via DSN pragmas; InitDB
	// re-asserts the critical ones for connections opened later.
	dsn := cfg.DatabasePath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		return err
	}
	if err := storage.InitDB(db); err != nil {
		return err
	}
	slog.Info("db_ready", "path", cfg.DatabasePath)

	// Timing instrumentation: one collector feeds route, query, and
	// upstream measurements into the admin status page.
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	stores := &web.Stores{
		AccountStore: accountStore.NewSQLiteStore(timedDB),
		NoticeStore:  noticeStore.NewSQLiteStore(timedDB),
		AuditStore:   auditStore.NewSQLiteStore(timedDB),
		OutboxStore:  outboxStore.NewSQLiteStore(timedDB),
	}

	if err := seedAdmin(cfg, stores.AccountStore); err != nil {
		return err
	}

	// Prometheus registry: process and runtime metrics plus the gym API
	// client's counters and histograms.
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api, err := newGymClient(cfg, collector, promReg)
	if err != nil {
		return err
	}

	registry := views.NewRegistry(api, cfg.UI.PageSize, cfg.UI.DebounceInterval)

	sender := newEmailSender(cfg)
	web.SetEmailSender(sender, cfg.Email.From, cfg.Email.ReplyTo)

	// Audit recorder: mutations publish events, the recorder persists
	// them off the request path.
	bus := events.NewBus()
	if err := events.StartAuditRecorder(bus, stores.AuditStore); err != nil {
		return err
	}

	// Outbox worker retries queued reminder emails with backoff.
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeReminderEmail: &orchestrators.ReminderEmailExecutor{Sender: sender},
	})
	outboxStopCh := make(chan struct{})
	orchestrators.StartBackgroundWorker(processor, outboxInterval, outboxStopCh)
	defer close(outboxStopCh)

	handler := web.NewMux(cfg.StaticDir, &web.Deps{
		Stores:         stores,
		API:            api,
		Registry:       registry,
		Collector:      collector,
		Bus:            bus,
		Outbox:         processor,
		CSRFKey:        []byte(cfg.CSRFKey),
		TrustedOrigins: cfg.TrustedOrigins,
		SecureCookies:  cfg.IsProduction(),
		GymName:        cfg.Email.GymName,
		ExpiringDays:   cfg.UI.ExpiringDays,
		Version:        version,
		MetricsHandler: promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
	})

	// Drop sessions (and their page engines) whose owner never came back.
	sweepStopCh := make(chan struct{})
	web.StartSessionSweeper(sessionSweepInterval, sweepStopCh)
	defer close(sweepStopCh)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "addr", cfg.ListenAddr, "env", cfg.Environment, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("server_stopping", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		// Let queued audit events land before the process exits.
		bus.WaitAsync()
	}
	return nil
}

// newGymClient builds the upstream API client from config, wiring both
// observers and warning when a static token is close to expiry.
func newGymClient(cfg config.Config, collector *perf.Collector, promReg prometheus.Registerer) (*gymapi.Client, error) {
	cred := gymapi.Credential{
		StaticToken:  cfg.GymAPI.AuthToken,
		TokenURL:     cfg.GymAPI.TokenURL,
		ClientID:     cfg.GymAPI.ClientID,
		ClientSecret: cfg.GymAPI.ClientSecret,
		Scopes:       cfg.GymAPI.Scopes,
	}
	if cfg.GymAPI.UseOAuth() {
		slog.Info("gymapi_auth_mode", "mode", "oauth2_client_credentials", "token_url", cfg.GymAPI.TokenURL)
	} else if cfg.GymAPI.AuthToken != "" {
		slog.Info("gymapi_auth_mode", "mode", "static_token")
		if exp, ok := gymapi.StaticTokenExpiry(cfg.GymAPI.AuthToken); ok {
			if left := time.Until(exp); left < 7*24*time.Hour {
				slog.Warn("gymapi_token_expiring", "expires_at", exp.Format(time.RFC3339), "days_left", int(left.Hours()/24))
			}
		}
	} else {
		slog.Warn("gymapi_auth_mode", "mode", "none")
	}

	return gymapi.New(cfg.GymAPI.BaseURL, cred,
		gymapi.WithTimeout(cfg.GymAPI.Timeout),
		gymapi.WithObservers(
			&perf.UpstreamObserver{Collector: collector},
			gymapi.NewPrometheusObserver(promReg),
		),
	)
}

// seedAdmin bootstraps the first admin account. Without a configured
// password a random one is generated and logged once; the forced password
// change on first login rotates it immediately.
func seedAdmin(cfg config.Config, store accountStore.Store) error {
	password := cfg.AdminPassword
	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		password = hex.EncodeToString(buf)
		count, err := store.Count(context.Background())
		if err != nil {
			return err
		}
		if count == 0 {
			slog.Warn("admin_password_generated", "email", cfg.AdminEmail, "password", password)
		}
	}
	deps := orchestrators.CreateAccountDeps{AccountStore: store}
	return orchestrators.ExecuteSeedAdmin(context.Background(), deps, cfg.AdminEmail, password)
}

func newEmailSender(cfg config.Config) emailPkg.Sender {
	if cfg.Email.ResendKey != "" {
		slog.Info("email_sender", "mode", "resend", "from", cfg.Email.From)
		return emailPkg.NewResendSender(cfg.Email.ResendKey, cfg.Email.From, cfg.Email.ReplyTo)
	}
	if cfg.IsProduction() {
		slog.Warn("email_sender", "mode", "noop", "note", "GYMCONSOLE_RESEND_KEY unset, delivery disabled")
	} else {
		slog.Info("email_sender", "mode", "noop")
	}
	return emailPkg.NewNoopSender()
}
