package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/middleware"
	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/application/views"
	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
	"github.com/revanth2426/gym-frontend-new/internal/domain/shell"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// templatesDir is relative to the process working directory. Tests
// override it because `go test` runs inside the package directory.
var templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

const flashCookieName = "gymconsole_flash"

// setFlash stores a one-shot message for the next page render.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlash returns the pending flash message and clears the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

// sessionToken returns the raw session cookie value. It keys the per-session
// page engines in the view registry.
func sessionToken(r *http.Request) string {
	c, err := r.Cookie("gymconsole_session")
	if err != nil {
		return ""
	}
	return c.Value
}

// viewsFor returns the page engines for the request's session.
// PRE: the request passed RequireAuth
func viewsFor(r *http.Request) *views.SessionViews {
	return viewRegistry.For(sessionToken(r))
}

// clientIP strips the port from RemoteAddr for audit records.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// recordAudit publishes an audit event seeded with the request's actor and
// network details. Fire-and-forget; the recorder persists it off the
// request path.
func recordAudit(r *http.Request, category audit.Category, action audit.Action, build func(audit.Event) audit.Event) {
	if auditBus == nil {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	e := audit.NewEvent(sess.AccountID, sess.Email, sess.Role, category, action).
		WithRequest(clientIP(r), r.UserAgent())
	if build != nil {
		e = build(e)
	}
	auditBus.PublishAudit(e)
}

// requireAdmin checks the session role and writes a 403 when it is not admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || sess.Role != "admin" {
		slog.Warn("auth_denied", "path", r.URL.Path, "role", sess.Role)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return role == "admin" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"gymName":      func() string { return gymName },
		"list":         func(items ...string) []string { return items },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add":               func(a, b int) int { return a + b },
		"sub":               func(a, b int) int { return a - b },
		"sidebarBreakpoint": func() int { return shell.BreakpointPx },
		"paginationQuery": func(page, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// --- Auth handlers ---

// handleLogin renders the login form and processes submissions.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		input := orchestrators.LoginInput{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}
		result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		})
		if err != nil {
			msg := "Invalid email or password."
			if errors.Is(err, orchestrators.ErrAccountLocked) {
				msg = "Account is temporarily locked. Try again later."
			}
			recordAudit(r, audit.CategorySecurity, audit.ActionLogin, func(e audit.Event) audit.Event {
				return e.WithSeverity(audit.SeverityWarning).
					WithDescription("failed login for " + input.Email)
			})
			w.WriteHeader(http.StatusUnauthorized)
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     msg,
				"Email":     input.Email,
			})
			return
		}

		token, err := sessions.Create(result.AccountID, result.Email, result.Role, result.PasswordChangeRequired)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)

		recordAudit(r, audit.CategorySecurity, audit.ActionLogin, func(e audit.Event) audit.Event {
			return e.WithDescription("staff login").WithResource("account", result.AccountID)
		})

		if result.PasswordChangeRequired {
			http.Redirect(w, r, "/change-password", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLogout tears down the session and its page engines.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	recordAudit(r, audit.CategorySecurity, audit.ActionLogout, func(e audit.Event) audit.Event {
		return e.WithDescription("staff logout")
	})
	if token := sessionToken(r); token != "" {
		sessions.Delete(token)
		viewRegistry.Evict(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword renders and processes the password change form.
// Accounts flagged PasswordChangeRequired land here after login.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		renderTemplate(w, r, "change_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Forced":    sess.PasswordChangeRequired,
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		newPassword := r.FormValue("new_password")
		if newPassword != r.FormValue("confirm_password") {
			w.WriteHeader(http.StatusBadRequest)
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Forced":    sess.PasswordChangeRequired,
				"Error":     "New passwords do not match.",
			})
			return
		}

		err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
			AccountID:       sess.AccountID,
			CurrentPassword: r.FormValue("current_password"),
			NewPassword:     newPassword,
		}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Forced":    sess.PasswordChangeRequired,
				"Error":     err.Error(),
			})
			return
		}

		// Clear the forced-change flag on the live session.
		sess.PasswordChangeRequired = false
		sessions.Update(sessionToken(r), sess)

		recordAudit(r, audit.CategorySecurity, audit.ActionUpdate, func(e audit.Event) audit.Event {
			return e.WithDescription("password changed").WithResource("account", sess.AccountID)
		})

		setFlash(w, "Password updated.")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleHealthz reports process liveness.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","version":%q}`, serverVersion)
}

// handleIndex redirects the root to the dashboard.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
