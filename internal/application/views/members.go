package views

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	"github.com/revanth2426/gym-frontend-new/internal/application/debounce"
	"github.com/revanth2426/gym-frontend-new/internal/application/listview"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
)

// MembersView is the state engine behind the members page: a paginated
// member list with optimistic create/update/delete and a debounced
// member search.
type MembersView struct {
	api    MemberAPI
	list   *listview.Store[member.Member]
	search *memberSearch
}

// NewMembersView builds the engine. interval is the search quiet period.
// PRE: pageSize > 0, interval > 0
func NewMembersView(api MemberAPI, pageSize int, interval, searchTimeout time.Duration) *MembersView {
	return &MembersView{
		api:    api,
		list:   listview.NewStore[member.Member](pageSize),
		search: newMemberSearch(api.SearchMembers, interval, searchTimeout),
	}
}

// State returns the current list state for rendering.
func (v *MembersView) State() listview.State[member.Member] {
	return v.list.State()
}

// Load fetches one page of members. Exactly one upstream request is
// issued; a response superseded by a later Load is discarded.
// PRE: pageIndex >= 0
func (v *MembersView) Load(ctx context.Context, pageIndex int) listview.State[member.Member] {
	gen := v.list.BeginLoad()
	page, err := v.api.ListMembers(ctx, pageIndex, v.list.PageSize())
	if err != nil {
		v.list.FailLoad(gen, gymapi.UserMessage(err))
		slog.Warn("members_load_failed", "page", pageIndex, "error", err.Error())
		return v.list.State()
	}
	v.list.CompleteLoad(gen, page)
	return v.list.State()
}

// TypeSearch registers a search keystroke.
func (v *MembersView) TypeSearch(text string) debounce.Outcome {
	return v.search.Type(text)
}

// SearchResults returns the current candidates, whether a query is still
// pending, and any search error.
func (v *MembersView) SearchResults() ([]member.Member, bool, string) {
	return v.search.Results()
}

// Create registers a new member. On the first page the record appears
// immediately as a provisional row; deeper pages reset to page 0, where
// a newest-first list shows it. Either way a consistency re-fetch
// reconciles to the server's canonical order, including after a failed
// create, so a phantom row never outlives the request.
// POST: Returns the flash message, or an error for the toast
func (v *MembersView) Create(ctx context.Context, d member.Draft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	if !v.list.OnFirstPage() {
		_, err := v.api.CreateMember(ctx, d)
		v.Load(ctx, 0)
		if err != nil {
			slog.Warn("member_create_failed", "name", d.Name, "error", err.Error())
			return "", fmt.Errorf("add member: %w", err)
		}
		slog.Info("member_created", "name", d.Name)
		return fmt.Sprintf("Added %s.", d.Name), nil
	}

	v.list.OptimisticPrepend(member.Member{
		Name:             d.Name,
		Age:              d.Age,
		Gender:           d.Gender,
		ContactNumber:    d.ContactNumber,
		MembershipStatus: d.MembershipStatus,
	})

	created, err := v.api.CreateMember(ctx, d)
	if err != nil {
		v.Load(ctx, v.list.PageIndex())
		slog.Warn("member_create_failed", "name", d.Name, "error", err.Error())
		return "", fmt.Errorf("add member: %w", err)
	}
	v.list.CommitPrepend(created)
	v.Load(ctx, v.list.PageIndex())
	slog.Info("member_created", "member_id", created.ID, "name", created.Name)
	return fmt.Sprintf("Added %s.", created.Name), nil
}

// Update replaces a member's editable fields. The matching row swaps in
// place immediately; the page is re-fetched after the upstream call
// completes whether it succeeded or not.
func (v *MembersView) Update(ctx context.Context, id int64, d member.Draft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	if existing, ok := v.Member(id); ok {
		patched := existing
		patched.Name = d.Name
		patched.Age = d.Age
		patched.Gender = d.Gender
		patched.ContactNumber = d.ContactNumber
		patched.MembershipStatus = d.MembershipStatus
		v.list.OptimisticReplace(func(m member.Member) bool { return m.ID == id }, patched)
	}

	_, err := v.api.UpdateMember(ctx, id, d)
	v.Load(ctx, v.list.PageIndex())
	if err != nil {
		slog.Warn("member_update_failed", "member_id", id, "error", err.Error())
		return "", fmt.Errorf("update member: %w", err)
	}
	slog.Info("member_updated", "member_id", id)
	return fmt.Sprintf("Updated %s.", d.Name), nil
}

// Delete removes a member optimistically and rolls the whole list state
// back if the upstream delete fails. Deleting the last row of a
// non-first page steps back one page instead of re-fetching an empty
// one.
func (v *MembersView) Delete(ctx context.Context, id int64) (string, error) {
	snap := v.list.Snapshot()
	removed := v.list.OptimisticRemove(func(m member.Member) bool { return m.ID == id })
	steppedBack := removed && v.list.Empty() && v.list.PageIndex() > 0

	if err := v.api.DeleteMember(ctx, id); err != nil {
		v.list.Restore(snap)
		slog.Warn("member_delete_failed", "member_id", id, "error", err.Error())
		return "", fmt.Errorf("delete member: %w", err)
	}

	target := v.list.PageIndex()
	if steppedBack {
		target--
	}
	v.Load(ctx, target)
	slog.Info("member_deleted", "member_id", id)
	return "Member deleted.", nil
}

// DeleteAssignment removes one plan assignment and re-fetches the page
// so the member row reflects the change.
func (v *MembersView) DeleteAssignment(ctx context.Context, assignmentID int64) (string, error) {
	if err := v.api.DeletePlanAssignment(ctx, assignmentID); err != nil {
		slog.Warn("assignment_delete_failed", "assignment_id", assignmentID, "error", err.Error())
		return "", fmt.Errorf("remove plan assignment: %w", err)
	}
	v.Load(ctx, v.list.PageIndex())
	slog.Info("assignment_deleted", "assignment_id", assignmentID)
	return "Plan assignment removed.", nil
}

// Member returns the member with the given ID from the current page.
func (v *MembersView) Member(id int64) (member.Member, bool) {
	for _, m := range v.list.State().Items {
		if m.ID == id {
			return m, true
		}
	}
	return member.Member{}, false
}

// Plans fetches the plan catalogue for the member form's selector.
func (v *MembersView) Plans(ctx context.Context) ([]plan.MembershipPlan, error) {
	return v.api.ListPlans(ctx)
}

// Stop releases timer resources. Called on session eviction.
func (v *MembersView) Stop() {
	v.search.Stop()
}
