// Package gymapi is the console's typed client for the remote gym API.
// All member, plan, trainer, attendance, and dashboard data lives behind
// this client; the console never stores gym records locally.
package gymapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"

	"github.com/revanth2426/gym-frontend-new/internal/domain/attendance"
	"github.com/revanth2426/gym-frontend-new/internal/domain/dashboard"
	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
	"github.com/revanth2426/gym-frontend-new/internal/domain/paging"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the gym API. Safe for concurrent use.
type Client struct {
	base  *url.URL
	httpc *http.Client
}

type options struct {
	timeout   time.Duration
	observers []Observer
	transport http.RoundTripper
}

// Option customizes the client.
type Option func(*options)

// WithTimeout caps the total time for one API call, body included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithObservers adds call observers (perf collector, Prometheus).
func WithObservers(obs ...Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs...) }
}

// WithTransport replaces the base transport. Tests use this to point the
// client at a fake server without real credentials.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New builds a client for the API at baseURL. The credential's auth header
// is injected on every request; observers see every call.
// PRE: baseURL parses as an absolute URL
func New(baseURL string, cred Credential, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gym api base url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("gym api base url %q is not absolute", baseURL)
	}

	o := options{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	rt := o.transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if len(o.observers) > 0 {
		rt = &observedTransport{base: rt, observers: o.observers}
	}
	if src := cred.TokenSource(context.Background()); src != nil {
		rt = &oauth2.Transport{Source: src, Base: rt}
	}

	return &Client{
		base:  u,
		httpc: &http.Client{Transport: rt, Timeout: o.timeout},
	}, nil
}

// ListMembers fetches one page of members, newest first.
// PRE: page >= 0, size > 0
// POST: Returns the server's envelope mapped to domain records
func (c *Client) ListMembers(ctx context.Context, page, size int) (paging.Page[member.Member], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var env pageEnvelope[memberDTO]
	if err := c.do(ctx, "GET /users", http.MethodGet, "/users", q, nil, &env); err != nil {
		return paging.Page[member.Member]{}, err
	}
	return toPage(env, memberDTO.toDomain), nil
}

// SearchMembers runs a free-text member search. The result is unpaginated.
// PRE: query is non-empty; callers short-circuit blank input themselves
func (c *Client) SearchMembers(ctx context.Context, query string) ([]member.Member, error) {
	q := url.Values{}
	q.Set("query", query)
	var dtos []memberDTO
	if err := c.do(ctx, "GET /users/search", http.MethodGet, "/users/search", q, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]member.Member, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// CreateMember registers a new member, optionally assigning a plan.
// POST: Returns the stored member with its server-assigned ID
func (c *Client) CreateMember(ctx context.Context, d member.Draft) (member.Member, error) {
	var dto memberDTO
	if err := c.do(ctx, "POST /users", http.MethodPost, "/users", nil, draftToRequest(d), &dto); err != nil {
		return member.Member{}, err
	}
	return dto.toDomain(), nil
}

// UpdateMember replaces a member's editable fields.
// POST: Returns the updated member as the server stored it
func (c *Client) UpdateMember(ctx context.Context, id int64, d member.Draft) (member.Member, error) {
	var dto memberDTO
	path := "/users/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, "PUT /users/{id}", http.MethodPut, path, nil, draftToRequest(d), &dto); err != nil {
		return member.Member{}, err
	}
	return dto.toDomain(), nil
}

// DeleteMember removes a member and all their assignments.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	path := "/users/" + strconv.FormatInt(id, 10)
	return c.do(ctx, "DELETE /users/{id}", http.MethodDelete, path, nil, nil, nil)
}

// DeletePlanAssignment removes a single plan assignment from a member.
func (c *Client) DeletePlanAssignment(ctx context.Context, assignmentID int64) error {
	path := "/plan-assignments/" + strconv.FormatInt(assignmentID, 10)
	return c.do(ctx, "DELETE /plan-assignments/{id}", http.MethodDelete, path, nil, nil, nil)
}

// ListPlans fetches all membership plans. The catalogue is small enough
// that the server does not paginate it.
func (c *Client) ListPlans(ctx context.Context) ([]plan.MembershipPlan, error) {
	var dtos []planDTO
	if err := c.do(ctx, "GET /plans", http.MethodGet, "/plans", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]plan.MembershipPlan, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// ListTrainers fetches all trainers.
func (c *Client) ListTrainers(ctx context.Context) ([]trainer.Trainer, error) {
	var dtos []trainerDTO
	if err := c.do(ctx, "GET /trainers", http.MethodGet, "/trainers", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]trainer.Trainer, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// ListAttendance fetches one page of check-in records, newest first.
func (c *Client) ListAttendance(ctx context.Context, page, size int) (paging.Page[attendance.Record], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var env pageEnvelope[attendanceDTO]
	if err := c.do(ctx, "GET /attendance/all", http.MethodGet, "/attendance/all", q, nil, &env); err != nil {
		return paging.Page[attendance.Record]{}, err
	}
	return toPage(env, attendanceDTO.toDomain), nil
}

// CheckIn records a member check-in.
// POST: Returns the new attendance record; 404 means the ID is unknown
func (c *Client) CheckIn(ctx context.Context, memberID int64) (attendance.Record, error) {
	var dto attendanceDTO
	body := checkInRequest{UserID: memberID}
	if err := c.do(ctx, "POST /attendance/checkin", http.MethodPost, "/attendance/checkin", nil, body, &dto); err != nil {
		return attendance.Record{}, err
	}
	return dto.toDomain(), nil
}

// DashboardSummary fetches the headline counts.
func (c *Client) DashboardSummary(ctx context.Context) (dashboard.Summary, error) {
	var dto summaryDTO
	if err := c.do(ctx, "GET /dashboard/summary", http.MethodGet, "/dashboard/summary", nil, nil, &dto); err != nil {
		return dashboard.Summary{}, err
	}
	return dto.toDomain(), nil
}

// PlanDistribution fetches member counts per plan.
func (c *Client) PlanDistribution(ctx context.Context) ([]dashboard.PlanShare, error) {
	var dtos []planShareDTO
	if err := c.do(ctx, "GET /dashboard/plan-distribution", http.MethodGet, "/dashboard/plan-distribution", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]dashboard.PlanShare, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// DailyAttendance fetches check-in counts per day for the chart window.
// PRE: startDate and endDate are YYYY-MM-DD and start <= end
func (c *Client) DailyAttendance(ctx context.Context, startDate, endDate string) ([]dashboard.DailyAttendancePoint, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	var dtos []dailyPointDTO
	if err := c.do(ctx, "GET /dashboard/daily-attendance-chart", http.MethodGet, "/dashboard/daily-attendance-chart", q, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]dashboard.DailyAttendancePoint, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// ExpiringMemberships fetches memberships lapsing within the given days.
// PRE: days > 0
func (c *Client) ExpiringMemberships(ctx context.Context, days int) ([]dashboard.ExpiringMembership, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	var dtos []expiringDTO
	if err := c.do(ctx, "GET /dashboard/expiring-memberships", http.MethodGet, "/dashboard/expiring-memberships", q, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]dashboard.ExpiringMembership, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out, nil
}

// do executes one API call. op is the templated endpoint name used in
// errors and metrics; path is the concrete URL path.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Op: op, Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(withOp(ctx, op), method, u.String(), reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newStatusError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}

// newStatusError reads a failed response into the typed error, keeping the
// server's {message} body when one is present.
func newStatusError(op string, resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var msg serverMessage
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &msg)
	}
	kind := KindStatus
	if resp.StatusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	return &Error{Kind: kind, Op: op, HTTPStatus: resp.StatusCode, Message: msg.Message}
}
