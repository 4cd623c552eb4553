package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/email"
	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/middleware"
	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/perf"
	accountStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/account"
	auditStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/audit"
	noticeStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/notice"
	outboxStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/outbox"
	"github.com/revanth2426/gym-frontend-new/internal/application/events"
	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/application/views"
)

// Stores holds the console's local storage dependencies. Gym data
// (members, plans, trainers, attendance) lives behind the gym API and
// never appears here.
type Stores struct {
	AccountStore accountStore.Store
	NoticeStore  noticeStore.Store
	AuditStore   auditStore.Store
	OutboxStore  outboxStore.Store
}

// Deps carries everything NewMux wires into the handler set.
type Deps struct {
	Stores    *Stores
	API       views.API
	Registry  *views.Registry
	Collector *perf.Collector
	Bus       *events.Bus
	Outbox    *orchestrators.OutboxProcessor

	CSRFKey        []byte
	TrustedOrigins []string
	SecureCookies  bool

	GymName      string
	ExpiringDays int
	Version      string

	// MetricsHandler serves /metrics; nil disables the endpoint.
	MetricsHandler http.Handler
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Gym API surface and per-session page engines (set by NewMux)
var gymAPI views.API
var viewRegistry *views.Registry

// Audit event bus and outbox processor (set by NewMux)
var auditBus *events.Bus
var outboxProcessor *orchestrators.OutboxProcessor

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// Display configuration (set by NewMux)
var gymName string
var expiringDays int
var serverVersion string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps) http.Handler {
	stores = d.Stores
	perfCollector = d.Collector
	gymAPI = d.API
	viewRegistry = d.Registry
	auditBus = d.Bus
	outboxProcessor = d.Outbox
	gymName = d.GymName
	expiringDays = d.ExpiringDays
	serverVersion = d.Version
	sessions = middleware.NewSessionStore()
	// Expired sessions take their page engines with them; logout and the
	// expiry sweep go through the same hook.
	sessions.OnEvict(func(token string) {
		if viewRegistry != nil {
			viewRegistry.Evict(token)
		}
	})
	middleware.SecureCookies = d.SecureCookies

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)
	if d.MetricsHandler != nil {
		mux.Handle("/metrics", d.MetricsHandler)
	}

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(d.CSRFKey, d.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(d.Collector),
	)
}

// StartSessionSweeper periodically drops expired sessions, and with them
// their page engines. Call after NewMux; runs until stop is closed.
func StartSessionSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := sessions.SweepExpired(); n > 0 {
					slog.Info("sessions_swept", "expired", n)
				}
			case <-stop:
				return
			}
		}
	}()
}
