package gymapi

import (
	"time"

	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

// pageEnvelope mirrors the server's pagination wrapper. The page field is
// the 0-based index.
type pageEnvelope[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

func toPage[T, U any](env pageEnvelope[T], f func(T) U) paging.Page[U] {
	p := paging.Page[T]{
		Content:       env.Content,
		Number:        env.Page,
		Size:          env.Size,
		TotalPages:    env.TotalPages,
		TotalElements: env.TotalElements,
	}
	return paging.Map(p, f)
}

type assignmentDTO struct {
	AssignmentID int64  `json:"assignmentId"`
	PlanID       int64  `json:"planId"`
	PlanName     string `json:"planName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Active       bool   `json:"active"`
}

type memberDTO struct {
	UserID           int64           `json:"userId"`
	Name             string          `json:"name"`
	Age              int             `json:"age"`
	Gender           string          `json:"gender"`
	ContactNumber    string          `json:"contactNumber"`
	MembershipStatus string          `json:"membershipStatus"`
	JoiningDate      string          `json:"joiningDate"`
	PlanAssignments  []assignmentDTO `json:"planAssignments"`
}

// memberRequest is the create/update payload. PlanID is omitted when the
// form leaves the plan selector empty.
type memberRequest struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	ContactNumber    string `json:"contactNumber"`
	MembershipStatus string `json:"membershipStatus"`
	PlanID           *int64 `json:"planId,omitempty"`
}

type planDTO struct {
	PlanID         int64    `json:"planId"`
	PlanName       string   `json:"planName"`
	Price          float64  `json:"price"`
	DurationMonths int      `json:"durationMonths"`
	Features       []string `json:"features"`
}

type trainerDTO struct {
	TrainerID      int64  `json:"trainerId"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	ContactNumber  string `json:"contactNumber"`
}

type attendanceDTO struct {
	AttendanceID int64  `json:"attendanceId"`
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	CheckInTime  string `json:"checkInTime"`
}

type checkInRequest struct {
	UserID int64 `json:"userId"`
}

type summaryDTO struct {
	TotalMembers  int `json:"totalMembers"`
	ActiveMembers int `json:"activeMembers"`
	TotalTrainers int `json:"totalTrainers"`
	TotalPlans    int `json:"totalPlans"`
	TodayCheckIns int `json:"todayCheckIns"`
}

type planShareDTO struct {
	PlanName    string `json:"planName"`
	MemberCount int    `json:"memberCount"`
}

type dailyPointDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type expiringDTO struct {
	UserID     int64  `json:"userId"`
	MemberName string `json:"memberName"`
	PlanName   string `json:"planName"`
	EndDate    string `json:"endDate"`
	DaysLeft   int    `json:"daysLeft"`
}

// serverMessage is the structured error body some endpoints return.
type serverMessage struct {
	Message string `json:"message"`
}

// checkInTimeLayouts covers the timestamp shapes the server emits; older
// deployments send local datetimes without an offset.
var checkInTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (d memberDTO) toDomain() member.Member {
	m := member.Member{
		ID:               d.UserID,
		Name:             d.Name,
		Age:              d.Age,
		Gender:           d.Gender,
		ContactNumber:    d.ContactNumber,
		MembershipStatus: d.MembershipStatus,
		JoiningDate:      d.JoiningDate,
	}
	if len(d.PlanAssignments) > 0 {
		m.PlanAssignments = make([]member.PlanAssignment, len(d.PlanAssignments))
		for i, a := range d.PlanAssignments {
			m.PlanAssignments[i] = a.toDomain()
		}
	}
	return m
}

func (d assignmentDTO) toDomain() member.PlanAssignment {
	return member.PlanAssignment{
		ID:        d.AssignmentID,
		PlanID:    d.PlanID,
		PlanName:  d.PlanName,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Active:    d.Active,
	}
}

func draftToRequest(d member.Draft) memberRequest {
	req := memberRequest{
		Name:             d.Name,
		Age:              d.Age,
		Gender:           d.Gender,
		ContactNumber:    d.ContactNumber,
		MembershipStatus: d.MembershipStatus,
	}
	if d.PlanID != 0 {
		id := d.PlanID
		req.PlanID = &id
	}
	return req
}

func (d planDTO) toDomain() plan.MembershipPlan {
	return plan.MembershipPlan{
		ID:             d.PlanID,
		Name:           d.PlanName,
		Price:          d.Price,
		DurationMonths: d.DurationMonths,
		Features:       d.Features,
	}
}

func (d trainerDTO) toDomain() trainer.Trainer {
	return trainer.Trainer{
		ID:             d.TrainerID,
		Name:           d.Name,
		Specialization: d.Specialization,
		ContactNumber:  d.ContactNumber,
	}
}

func (d attendanceDTO) toDomain() attendance.Record {
	rec := attendance.Record{
		ID:         d.AttendanceID,
		MemberID:   d.UserID,
		MemberName: d.UserName,
	}
	for _, layout := range checkInTimeLayouts {
		if t, err := time.Parse(layout, d.CheckInTime); err == nil {
			rec.CheckInTime = t
			break
		}
	}
	return rec
}

func (d summaryDTO) toDomain() dashboard.Summary {
	return dashboard.Summary(d)
}

func (d planShareDTO) toDomain() dashboard.PlanShare {
	return dashboard.PlanShare(d)
}

func (d dailyPointDTO) toDomain() dashboard.DailyAttendancePoint {
	return dashboard.DailyAttendancePoint(d)
}

func (d expiringDTO) toDomain() dashboard.ExpiringMembership {
	return dashboard.ExpiringMembership{
		MemberID:   d.UserID,
		MemberName: d.MemberName,
		PlanName:   d.PlanName,
		EndDate:    d.EndDate,
		DaysLeft:   d.DaysLeft,
	}
}
