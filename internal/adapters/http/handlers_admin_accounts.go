package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	accountStore "github.com/revanth2426/gym-frontend-new/internal/adapters/storage/account"
	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
)

// handleAdminAccounts lists staff accounts and creates new ones.
// Routes: GET /admin/accounts, POST /admin/accounts
func handleAdminAccounts(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		accounts, err := stores.AccountStore.List(ctx, accountStore.ListFilter{Limit: 200})
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin_accounts.html", map[string]any{
			"Accounts":  accounts,
			"Flash":     popFlash(w, r),
			"CSRFToken": csrf.Token(r),
		})

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		input := orchestrators.CreateAccountInput{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
			// New accounts must pick their own password on first login.
			PasswordChangeRequired: true,
		}
		id, err := orchestrators.ExecuteCreateAccount(ctx, input, orchestrators.CreateAccountDeps{
			AccountStore: stores.AccountStore,
		})
		if err != nil {
			setFlash(w, err.Error())
			http.Redirect(w, r, "/admin/accounts", http.StatusSeeOther)
			return
		}

		recordAudit(r, audit.CategoryAccount, audit.ActionCreate, func(e audit.Event) audit.Event {
			return e.WithResource("account", id).
				WithDescription("created " + input.Role + " account " + input.Email + " by " + sess.Email)
		})
		setFlash(w, "Account created for "+input.Email+".")
		http.Redirect(w, r, "/admin/accounts", http.StatusSeeOther)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
