package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/http/middleware"
	"github.com/revanth2426/gym-frontend-new/internal/application/orchestrators"
	"github.com/revanth2426/gym-frontend-new/internal/application/projections"
	"github.com/revanth2426/gym-frontend-new/internal/domain/audit"
)

// handleNotices renders the staff noticeboard. ?status=draft|published
// filters the list; default shows everything, pinned first.
func handleNotices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := r.URL.Query().Get("status")
	result, err := projections.QueryGetNoticeboard(r.Context(), projections.GetNoticeboardQuery{
		Status: status,
	}, projections.GetNoticeboardDeps{NoticeStore: stores.NoticeStore})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "notices.html", map[string]any{
		"Notices":   result.Notices,
		"Status":    status,
		"Flash":     popFlash(w, r),
		"CSRFToken": csrf.Token(r),
	})
}

// handleNoticeCreate creates a draft notice authored by the current user.
func handleNoticeCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	n, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    r.FormValue("content"),
		AuthorName: authorName(sess),
		CreatedBy:  sess.AccountID,
	}, orchestrators.CreateNoticeDeps{
		NoticeStore: stores.NoticeStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryNotice, audit.ActionCreate, func(e audit.Event) audit.Event {
		return e.WithResource("notice", n.ID).WithDescription("created notice " + n.Title)
	})
	setFlash(w, "Draft saved.")
	http.Redirect(w, r, "/notices", http.StatusSeeOther)
}

// handleNoticeEdit updates the title, content, or author display name.
func handleNoticeEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	n, err := orchestrators.ExecuteEditNotice(r.Context(), orchestrators.EditNoticeInput{
		NoticeID:   r.FormValue("id"),
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    r.FormValue("content"),
		AuthorName: authorName(sess),
	}, orchestrators.EditNoticeDeps{
		NoticeStore: stores.NoticeStore,
		Now:         timeNow,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryNotice, audit.ActionUpdate, func(e audit.Event) audit.Event {
		return e.WithResource("notice", n.ID)
	})
	setFlash(w, "Notice updated.")
	http.Redirect(w, r, "/notices", http.StatusSeeOther)
}

// handleNoticePublish publishes a draft so it shows on the dashboard.
func handleNoticePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	n, err := orchestrators.ExecutePublishNotice(r.Context(), orchestrators.PublishNoticeInput{
		NoticeID: r.FormValue("id"),
	}, orchestrators.PublishNoticeDeps{
		NoticeStore: stores.NoticeStore,
		Now:         timeNow,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryNotice, audit.ActionPublish, func(e audit.Event) audit.Event {
		return e.WithResource("notice", n.ID).WithDescription("published notice " + n.Title)
	})
	setFlash(w, "Notice published.")
	http.Redirect(w, r, "/notices", http.StatusSeeOther)
}

// handleNoticePin pins or unpins a notice; pinned notices sort first.
func handleNoticePin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	pinned := r.FormValue("pinned") == "true"
	n, err := orchestrators.ExecutePinNotice(r.Context(), orchestrators.PinNoticeInput{
		NoticeID: r.FormValue("id"),
		Pinned:   pinned,
	}, orchestrators.PinNoticeDeps{
		NoticeStore: stores.NoticeStore,
		Now:         timeNow,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryNotice, audit.ActionUpdate, func(e audit.Event) audit.Event {
		desc := "pinned notice"
		if !pinned {
			desc = "unpinned notice"
		}
		return e.WithResource("notice", n.ID).WithDescription(desc)
	})
	if pinned {
		setFlash(w, "Notice pinned.")
	} else {
		setFlash(w, "Notice unpinned.")
	}
	http.Redirect(w, r, "/notices", http.StatusSeeOther)
}

// handleNoticeDelete removes a notice.
func handleNoticeDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")
	err := orchestrators.ExecuteDeleteNotice(r.Context(), id, orchestrators.DeleteNoticeDeps{
		NoticeStore: stores.NoticeStore,
	})
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, "/notices", http.StatusSeeOther)
		return
	}

	recordAudit(r, audit.CategoryNotice, audit.ActionDelete, func(e audit.Event) audit.Event {
		return e.WithResource("notice", id)
	})
	setFlash(w, "Notice deleted.")
	http.Redirect(w, r, "/notices", http.StatusSeeOther)
}

// authorName derives the display name shown on notices from the account
// email's local part.
func authorName(sess middleware.Session) string {
	if at := strings.Index(sess.Email, "@"); at > 0 {
		return sess.Email[:at]
	}
	return sess.Email
}
