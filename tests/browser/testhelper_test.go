package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	emailAdapter "github.com/revanth2426/gym-frontend-new/internal/adapters/email"
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
	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/outbox"
	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

// stubGym is an in-memory gym API for browser tests. Local stores run
// against a real temp SQLite file; only the remote surface is stubbed.
type stubGym struct {
	mu       sync.Mutex
	members  []member.Member
	plans    []plan.MembershipPlan
	trainers []trainer.Trainer
	log      []attendance.Record
	nextID   int64
}

func slicePage[T any](items []T, pageIdx, size int) paging.Page[T] {
	total := len(items)
	start := pageIdx * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return paging.Page[T]{
		Content:       append([]T(nil), items[start:end]...),
		Number:        pageIdx,
		Size:          size,
		TotalPages:    (total + size - 1) / size,
		TotalElements: total,
	}
}

func (g *stubGym) ListMembers(ctx context.Context, page, size int) (paging.Page[member.Member], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slicePage(g.members, page, size), nil
}

func (g *stubGym) SearchMembers(ctx context.Context, query string) ([]member.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []member.Member
	for _, m := range g.members {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) ||
			strings.Contains(m.ContactNumber, query) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (g *stubGym) CreateMember(ctx context.Context, d member.Draft) (member.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	m := member.Member{
		ID:               g.nextID,
		Name:             d.Name,
		Age:              d.Age,
		Gender:           d.Gender,
		ContactNumber:    d.ContactNumber,
		MembershipStatus: d.MembershipStatus,
		JoiningDate:      time.Now().Format("2006-01-02"),
	}
	g.members = append([]member.Member{m}, g.members...)
	return m, nil
}

func (g *stubGym) UpdateMember(ctx context.Context, id int64, d member.Draft) (member.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.members {
		if g.members[i].ID == id {
			g.members[i].Name = d.Name
			g.members[i].Age = d.Age
			g.members[i].Gender = d.Gender
			g.members[i].ContactNumber = d.ContactNumber
			g.members[i].MembershipStatus = d.MembershipStatus
			return g.members[i], nil
		}
	}
	return member.Member{}, fmt.Errorf("member %d not found", id)
}

func (g *stubGym) DeleteMember(ctx context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.members {
		if g.members[i].ID == id {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("member %d not found", id)
}

func (g *stubGym) DeletePlanAssignment(ctx context.Context, assignmentID int64) error {
	return nil
}

func (g *stubGym) ListPlans(ctx context.Context) ([]plan.MembershipPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]plan.MembershipPlan(nil), g.plans...), nil
}

func (g *stubGym) ListTrainers(ctx context.Context) ([]trainer.Trainer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]trainer.Trainer(nil), g.trainers...), nil
}

func (g *stubGym) ListAttendance(ctx context.Context, page, size int) (paging.Page[attendance.Record], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slicePage(g.log, page, size), nil
}

func (g *stubGym) CheckIn(ctx context.Context, memberID int64) (attendance.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name := ""
	for _, m := range g.members {
		if m.ID == memberID {
			name = m.Name
		}
	}
	g.nextID++
	rec := attendance.Record{ID: g.nextID, MemberID: memberID, MemberName: name, CheckInTime: time.Now()}
	g.log = append([]attendance.Record{rec}, g.log...)
	return rec, nil
}

func (g *stubGym) DashboardSummary(ctx context.Context) (dashboard.Summary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	active := 0
	for _, m := range g.members {
		if m.IsActive() {
			active++
		}
	}
	return dashboard.Summary{
		TotalMembers:  len(g.members),
		ActiveMembers: active,
		TotalTrainers: len(g.trainers),
		TotalPlans:    len(g.plans),
		TodayCheckIns: len(g.log),
	}, nil
}

func (g *stubGym) PlanDistribution(ctx context.Context) ([]dashboard.PlanShare, error) {
	return []dashboard.PlanShare{{PlanName: "Monthly", MemberCount: 2}}, nil
}

func (g *stubGym) DailyAttendance(ctx context.Context, startDate, endDate string) ([]dashboard.DailyAttendancePoint, error) {
	return []dashboard.DailyAttendancePoint{{Date: startDate, Count: 1}, {Date: endDate, Count: 3}}, nil
}

func (g *stubGym) ExpiringMemberships(ctx context.Context, days int) ([]dashboard.ExpiringMembership, error) {
	return nil, nil
}

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Gym     *stubGym
	Stores  *web.Stores
	AdminID string
}

// newTestApp wires a full console over a temp SQLite DB and a stub gym
// API, then starts an HTTP server and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)
	stores := &web.Stores{
		AccountStore: accountStore.NewSQLiteStore(timedDB),
		NoticeStore:  noticeStore.NewSQLiteStore(timedDB),
		AuditStore:   auditStore.NewSQLiteStore(timedDB),
		OutboxStore:  outboxStore.NewSQLiteStore(timedDB),
	}

	// Seed admin without the forced password change so login goes
	// straight to the dashboard.
	ctx := context.Background()
	adminID, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
		Email:    "admin@test.com",
		Password: "TestPass123!long",
		Role:     "admin",
	}, orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	gym := &stubGym{nextID: 1000}
	gym.plans = []plan.MembershipPlan{
		{ID: 1, Name: "Monthly", Price: 49.90, DurationMonths: 1, Features: []string{"Gym floor"}},
		{ID: 2, Name: "Annual", Price: 499, DurationMonths: 12, Features: []string{"Gym floor", "Sauna"}},
	}
	gym.trainers = []trainer.Trainer{
		{ID: 1, Name: "Mel Ortiz", Specialization: "Strength", ContactNumber: "021555009"},
	}

	bus := events.NewBus()
	if err := events.StartAuditRecorder(bus, stores.AuditStore); err != nil {
		t.Fatalf("failed to start audit recorder: %v", err)
	}

	sender := emailAdapter.NewNoopSender()
	web.SetEmailSender(sender, "Gym Console <noreply@gym.example>", "")
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeReminderEmail: &orchestrators.ReminderEmailExecutor{Sender: sender},
	})

	// Find a free port.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Relative template/static paths resolve from the project root.
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	handler := web.NewMux("static", &web.Deps{
		Stores:    stores,
		API:       gym,
		Registry:  views.NewRegistry(gym, 10, 50*time.Millisecond),
		Collector: collector,
		Bus:       bus,
		Outbox:    processor,
		CSRFKey:   []byte("browser-test-key-32-bytes-long!!"),
		TrustedOrigins: []string{
			fmt.Sprintf("127.0.0.1:%d", port),
			fmt.Sprintf("localhost:%d", port),
		},
		GymName:      "Ironworks Gym",
		ExpiringDays: 30,
		Version:      "browser-test",
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: handler,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Gym:     gym,
		Stores:  stores,
		AdminID: adminID,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in as the seeded admin and waits for the dashboard.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill("admin@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("TestPass123!long"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to the directory
// containing go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
