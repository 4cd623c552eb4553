package views

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/revanth2426/gym-frontend-new/internal/application/listutil"
	"github.com/revanth2426/gym-frontend-new/internal/domain/plan"
	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

// trainerSortCols are the columns the trainers list accepts in ?sort=.
var trainerSortCols = []string{"name", "specialization"}

// trainerFilterKeys are the exact-match filter parameters.
var trainerFilterKeys = []string{"specialization"}

// TrainerPage is one rendered page of the trainers list. The gym API
// serves trainers unpaginated, so filtering, sorting, and paging all
// happen here after the fetch.
type TrainerPage struct {
	Trainers []trainer.Trainer
	Info     listutil.PageInfo
	Params   listutil.ListParams
}

// LoadTrainers fetches the full trainer roster and applies the query's
// filter, sort, and page window.
func LoadTrainers(ctx context.Context, api CatalogAPI, q url.Values) (TrainerPage, error) {
	all, err := api.ListTrainers(ctx)
	if err != nil {
		slog.Warn("trainers_load_failed", "error", err.Error())
		return TrainerPage{}, fmt.Errorf("list trainers: %w", err)
	}

	lp := listutil.ParseListParams(q, trainerSortCols, trainerFilterKeys)
	rows := filterTrainers(all, lp.FilterParams)
	sortTrainers(rows, lp.SortParams)

	info := listutil.NewPageInfo(lp.Page, lp.PerPage, len(rows))
	start := info.Offset()
	end := info.EndRow()
	if start > len(rows) {
		start = len(rows)
	}
	return TrainerPage{Trainers: rows[start:end], Info: info, Params: lp}, nil
}

// filterTrainers applies the free-text search and the specialization
// filter. The result is a fresh slice; the roster is never reordered in
// place.
func filterTrainers(all []trainer.Trainer, fp listutil.FilterParams) []trainer.Trainer {
	needle := strings.ToLower(strings.TrimSpace(fp.Search))
	spec := fp.Filters["specialization"]

	out := make([]trainer.Trainer, 0, len(all))
	for _, tr := range all {
		if spec != "" && tr.Specialization != spec {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(tr.Name), needle) &&
			!strings.Contains(strings.ToLower(tr.Specialization), needle) {
			continue
		}
		out = append(out, tr)
	}
	return out
}

// sortTrainers orders rows by the requested column. No sort parameter
// keeps the gym API's order.
func sortTrainers(rows []trainer.Trainer, sp listutil.SortParams) {
	if sp.Sort == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if sp.Dir == "desc" {
			a, b = b, a
		}
		if sp.Sort == "specialization" {
			return a.Specialization < b.Specialization
		}
		return a.Name < b.Name
	})
}

// SortQuery returns the query string for a column-header sort link,
// flipping the direction when col is already the active sort. Filter
// parameters survive; the page resets to 1.
func (p TrainerPage) SortQuery(col string) string {
	dir := "asc"
	if p.Params.Sort == col && p.Params.Dir == "asc" {
		dir = "desc"
	}
	q := url.Values{"sort": {col}, "dir": {dir}}
	p.addFilters(q)
	return q.Encode()
}

// PageQuery returns the query string for page n, preserving the active
// sort and filters.
func (p TrainerPage) PageQuery(n int) string {
	q := url.Values{"page": {strconv.Itoa(n)}}
	if p.Info.PerPage != listutil.DefaultPerPage {
		q.Set("per_page", strconv.Itoa(p.Info.PerPage))
	}
	if p.Params.Sort != "" {
		q.Set("sort", p.Params.Sort)
		q.Set("dir", p.Params.Dir)
	}
	p.addFilters(q)
	return q.Encode()
}

func (p TrainerPage) addFilters(q url.Values) {
	if p.Params.Search != "" {
		q.Set("q", p.Params.Search)
	}
	for k, v := range p.Params.Filters {
		q.Set(k, v)
	}
}

// LoadPlans fetches the plan catalogue for the plans page.
func LoadPlans(ctx context.Context, api CatalogAPI) ([]plan.MembershipPlan, error) {
	plans, err := api.ListPlans(ctx)
	if err != nil {
		slog.Warn("plans_load_failed", "error", err.Error())
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}
