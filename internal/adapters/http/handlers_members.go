package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
	emailDomain "github.com/revanth2426/gym-frontend-new/internal/domain/email"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
)

// handleMembers renders the members page. ?page=N loads that page of the
// list; the engine keeps the position between requests.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v := viewsFor(r).Members
	pageIndex := v.State().PageIndex
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n >= 0 {
			pageIndex = n
		}
	}
	state := v.Load(r.Context(), pageIndex)

	plans, plansErr := v.Plans(r.Context())
	candidates, searching, searchErr := v.SearchResults()

	data := map[string]any{
		"State":      state,
		"Plans":      plans,
		"Candidates": candidates,
		"Searching":  searching,
		"SearchErr":  searchErr,
		"Query":      r.URL.Query().Get("q"),
		"Flash":      popFlash(w, r),
		"CSRFToken":  csrf.Token(r),
	}
	if plansErr != nil {
		data["PlansErr"] = "Plan list is unavailable."
	}
	renderTemplate(w, r, "members.html", data)
}

// draftFromForm builds a member draft from the registration/edit form.
func draftFromForm(r *http.Request) member.Draft {
	age, _ := strconv.Atoi(r.FormValue("age"))
	planID, _ := strconv.ParseInt(r.FormValue("plan_id"), 10, 64)
	return member.Draft{
		Name:             strings.TrimSpace(r.FormValue("name")),
		Age:              age,
		Gender:           r.FormValue("gender"),
		ContactNumber:    strings.TrimSpace(r.FormValue("contact_number")),
		MembershipStatus: r.FormValue("membership_status"),
		PlanID:           planID,
	}
}

// handleMemberCreate registers a new member with the gym API.
func handleMemberCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	d := draftFromForm(r)
	flash, err := viewsFor(r).Members.Create(r.Context(), d)
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryMember, audit.ActionCreate, func(e audit.Event) audit.Event {
		return e.WithResource("member", d.Name).WithDescription("registered member " + d.Name)
	})
	setFlash(w, flash)
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberUpdate edits an existing member.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}

	flash, err := viewsFor(r).Members.Update(r.Context(), id, draftFromForm(r))
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryMember, audit.ActionUpdate, func(e audit.Event) audit.Event {
		return e.WithResource("member", strconv.FormatInt(id, 10))
	})
	setFlash(w, flash)
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberDelete removes a member.
func handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}

	flash, err := viewsFor(r).Members.Delete(r.Context(), id)
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryMember, audit.ActionDelete, func(e audit.Event) audit.Event {
		return e.WithSeverity(audit.SeverityWarning).
			WithResource("member", strconv.FormatInt(id, 10))
	})
	setFlash(w, flash)
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleAssignmentDelete removes one plan assignment from a member.
func handleAssignmentDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("assignment_id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid assignment id", http.StatusBadRequest)
		return
	}

	flash, err := viewsFor(r).Members.DeleteAssignment(r.Context(), id)
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/members", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryPlan, audit.ActionDelete, func(e audit.Event) audit.Event {
		return e.WithResource("plan_assignment", strconv.FormatInt(id, 10))
	})
	setFlash(w, flash)
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// handleMemberRemind emails a renewal reminder for a member whose plan is
// about to lapse. The gym API holds no email addresses, so the form
// carries the recipient.
func handleMemberRemind(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	memberID, _ := strconv.ParseInt(r.FormValue("member_id"), 10, 64)
	daysLeft, _ := strconv.Atoi(r.FormValue("days_left"))

	reminder := emailDomain.Reminder{
		MemberID:   memberID,
		MemberName: strings.TrimSpace(r.FormValue("member_name")),
		To:         strings.TrimSpace(r.FormValue("to")),
		PlanName:   r.FormValue("plan_name"),
		EndDate:    r.FormValue("end_date"),
		DaysLeft:   daysLeft,
		GymName:    gymName,
	}

	result, err := orchestrators.ExecuteRemindMember(r.Context(), reminder, orchestrators.RemindMemberDeps{
		Sender:      emailSender,
		OutboxStore: stores.OutboxStore,
		ReplyTo:     emailReplyTo,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryMember, audit.ActionRemind, func(e audit.Event) audit.Event {
		return e.WithResource("member", strconv.FormatInt(memberID, 10)).
			WithDescription("renewal reminder to " + reminder.To)
	})

	if result.Queued {
		setFlash(w, "Email provider unavailable; reminder queued for retry.")
	} else {
		setFlash(w, "Reminder sent to "+reminder.To+".")
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo picks the redirect target for actions reachable from more than
// one page. Only console-local paths are honoured.
func backTo(r *http.Request) string {
	back := r.FormValue("back")
	if strings.HasPrefix(back, "/") && !strings.HasPrefix(back, "//") {
		return back
	}
	return "/members"
}

// memberSearchResponse is one row of the typeahead JSON.
type memberSearchResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ContactNumber    string `json:"contact_number"`
	MembershipStatus string `json:"membership_status"`
	PlanName         string `json:"plan_name,omitempty"`
}

// handleMemberSearch feeds the member typeahead. New text registers a
// keystroke with the debouncer; a repeat of the current text is a poll
// and only reads the accumulated candidates. The page polls while
// `pending` is true.
func handleMemberSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v := viewsFor(r)
	scope := r.URL.Query().Get("scope")
	query := r.URL.Query().Get("q")

	var candidates []member.Member
	var pending bool
	var errMsg string
	if scope == "attendance" {
		v.Attendance.TypeSearch(query)
		candidates, pending, errMsg = v.Attendance.SearchResults()
	} else {
		v.Members.TypeSearch(query)
		candidates, pending, errMsg = v.Members.SearchResults()
	}

	rows := make([]memberSearchResponse, 0, len(candidates))
	for _, m := range candidates {
		row := memberSearchResponse{
			ID:               m.ID,
			Name:             m.Name,
			ContactNumber:    m.ContactNumber,
			MembershipStatus: m.MembershipStatus,
		}
		if p := activePlan(m); p != "" {
			row.PlanName = p
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": rows,
		"pending":    pending,
		"error":      errMsg,
	})
}

// activePlan returns the display plan for a typeahead row, using the
// same latest-start rule as the edit form pre-fill.
func activePlan(m member.Member) string {
	if a := m.ActiveAssignment(); a != nil {
		return a.PlanName
	}
	return ""
}
