package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/revanth2426/gym-frontend-new/internal/adapters/gymapi"
	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

// fakeAPI is a hand-rolled gym API double. Counters record upstream
// traffic so tests can assert exactly how many calls a user action cost.
type fakeAPI struct {
	mu sync.Mutex

	members    []member.Member
	records    []attendance.Record
	trainers   []trainer.Trainer
	plans      []plan.MembershipPlan
	summary    dashboard.Summary
	shares     []dashboard.PlanShare
	daily      []dashboard.DailyAttendancePoint
	expiring   []dashboard.ExpiringMembership
	nextID     int64
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	searchErr  error
	checkInErr error
	widgetErr  error

	listCalls    int
	searchCalls  int
	createCalls  int
	updateCalls  int
	deleteCalls  int
	checkInCalls int
	searchSeen   []string
}

func upstreamErr(op string) error {
	return &gymapi.Error{Op: op, Kind: gymapi.KindNetwork, Err: fmt.Errorf("connection refused")}
}

func (f *fakeAPI) pageOf(all []member.Member, pageIndex, size int) paging.Page[member.Member] {
	start := pageIndex * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	totalPages := 0
	if size > 0 && len(all) > 0 {
		totalPages = (len(all) + size - 1) / size
	}
	return paging.Page[member.Member]{
		Content:       append([]member.Member(nil), all[start:end]...),
		Number:        pageIndex,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: len(all),
	}
}

func (f *fakeAPI) ListMembers(_ context.Context, pageIndex, size int) (paging.Page[member.Member], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return paging.Page[member.Member]{}, f.listErr
	}
	return f.pageOf(f.members, pageIndex, size), nil
}

func (f *fakeAPI) SearchMembers(_ context.Context, query string) ([]member.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.searchSeen = append(f.searchSeen, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []member.Member
	for _, m := range f.members {
		if len(query) <= len(m.Name) && m.Name[:len(query)] == query {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateMember(_ context.Context, d member.Draft) (member.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return member.Member{}, f.createErr
	}
	f.nextID++
	m := member.Member{
		ID:               f.nextID,
		Name:             d.Name,
		Age:              d.Age,
		Gender:           d.Gender,
		ContactNumber:    d.ContactNumber,
		MembershipStatus: d.MembershipStatus,
	}
	// Newest first, matching the server's sort.
	f.members = append([]member.Member{m}, f.members...)
	return m, nil
}

func (f *fakeAPI) UpdateMember(_ context.Context, id int64, d member.Draft) (member.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return member.Member{}, f.updateErr
	}
	for i := range f.members {
		if f.members[i].ID == id {
			f.members[i].Name = d.Name
			f.members[i].Age = d.Age
			f.members[i].Gender = d.Gender
			f.members[i].ContactNumber = d.ContactNumber
			f.members[i].MembershipStatus = d.MembershipStatus
			return f.members[i], nil
		}
	}
	return member.Member{}, upstreamErr("update member")
}

func (f *fakeAPI) DeleteMember(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.members {
		if f.members[i].ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return upstreamErr("delete member")
}

func (f *fakeAPI) DeletePlanAssignment(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeAPI) ListPlans(_ context.Context) ([]plan.MembershipPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.widgetErr != nil {
		return nil, f.widgetErr
	}
	return f.plans, nil
}

func (f *fakeAPI) ListTrainers(_ context.Context) ([]trainer.Trainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.widgetErr != nil {
		return nil, f.widgetErr
	}
	return f.trainers, nil
}

func (f *fakeAPI) ListAttendance(_ context.Context, pageIndex, size int) (paging.Page[attendance.Record], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return paging.Page[attendance.Record]{}, f.listErr
	}
	start := pageIndex * size
	if start > len(f.records) {
		start = len(f.records)
	}
	end := start + size
	if end > len(f.records) {
		end = len(f.records)
	}
	totalPages := 0
	if len(f.records) > 0 {
		totalPages = (len(f.records) + size - 1) / size
	}
	return paging.Page[attendance.Record]{
		Content:       append([]attendance.Record(nil), f.records[start:end]...),
		Number:        pageIndex,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: len(f.records),
	}, nil
}

func (f *fakeAPI) CheckIn(_ context.Context, memberID int64) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkInCalls++
	if f.checkInErr != nil {
		return attendance.Record{}, f.checkInErr
	}
	name := ""
	for _, m := range f.members {
		if m.ID == memberID {
			name = m.Name
		}
	}
	f.nextID++
	rec := attendance.Record{ID: f.nextID, MemberID: memberID, MemberName: name}
	f.records = append([]attendance.Record{rec}, f.records...)
	return rec, nil
}

func (f *fakeAPI) DashboardSummary(_ context.Context) (dashboard.Summary, error) {
	if f.widgetErr != nil {
		return dashboard.Summary{}, f.widgetErr
	}
	return f.summary, nil
}

func (f *fakeAPI) PlanDistribution(_ context.Context) ([]dashboard.PlanShare, error) {
	if f.widgetErr != nil {
		return nil, f.widgetErr
	}
	return f.shares, nil
}

func (f *fakeAPI) DailyAttendance(_ context.Context, _, _ string) ([]dashboard.DailyAttendancePoint, error) {
	return f.daily, nil
}

func (f *fakeAPI) ExpiringMemberships(_ context.Context, _ int) ([]dashboard.ExpiringMembership, error) {
	return f.expiring, nil
}

func (f *fakeAPI) counts() (list, search, create, update, del, checkIn int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.searchCalls, f.createCalls, f.updateCalls, f.deleteCalls, f.checkInCalls
}

func seedMembers(n int) []member.Member {
	out := make([]member.Member, n)
	for i := range out {
		out[i] = member.Member{
			ID:               int64(n - i), // newest (highest ID) first
			Name:             fmt.Sprintf("Member %d", n-i),
			Age:              30,
			Gender:           member.GenderFemale,
			ContactNumber:    "555-0100",
			MembershipStatus: member.StatusActive,
		}
	}
	return out
}

func validDraft(name string) member.Draft {
	return member.Draft{
		Name:             name,
		Age:              28,
		Gender:           member.GenderMale,
		ContactNumber:    "555-0101",
		MembershipStatus: member.StatusActive,
	}
}
