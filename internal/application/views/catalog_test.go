package views

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/revanth2426/gym-frontend-new/internal/domain/trainer"
)

func seedTrainers(n int) []trainer.Trainer {
	out := make([]trainer.Trainer, n)
	for i := range out {
		out[i] = trainer.Trainer{ID: int64(i + 1), Name: fmt.Sprintf("Trainer %d", i+1)}
	}
	return out
}

// TestLoadTrainersPagesClientSide tests slicing the unpaginated roster.
func TestLoadTrainersPagesClientSide(t *testing.T) {
	api := &fakeAPI{trainers: seedTrainers(45)}

	q := url.Values{"page": {"2"}, "per_page": {"20"}}
	page, err := LoadTrainers(context.Background(), api, q)
	if err != nil {
		t.Fatalf("LoadTrainers() error = %v", err)
	}

	if len(page.Trainers) != 20 || page.Trainers[0].ID != 21 {
		t.Errorf("page 2 = %d rows starting at %d, want 20 starting at trainer 21", len(page.Trainers), page.Trainers[0].ID)
	}
	if page.Info.TotalPages != 3 || page.Info.Total != 45 {
		t.Errorf("info = %+v, want 45 rows over 3 pages", page.Info)
	}
}

// TestLoadTrainersClampsPastEnd tests an out-of-range page request.
func TestLoadTrainersClampsPastEnd(t *testing.T) {
	api := &fakeAPI{trainers: seedTrainers(5)}

	q := url.Values{"page": {"9"}}
	page, err := LoadTrainers(context.Background(), api, q)
	if err != nil {
		t.Fatalf("LoadTrainers() error = %v", err)
	}
	if page.Info.Page != 1 || len(page.Trainers) != 5 {
		t.Errorf("page = %+v, want clamped to the only page", page.Info)
	}
}

// TestLoadTrainersFiltersAndSorts tests the client-side search, filter,
// and sort applied to the unpaginated roster.
func TestLoadTrainersFiltersAndSorts(t *testing.T) {
	roster := []trainer.Trainer{
		{ID: 1, Name: "Mel Ortiz", Specialization: "Strength"},
		{ID: 2, Name: "Ana Beck", Specialization: "Cardio"},
		{ID: 3, Name: "Zoe Hall", Specialization: "Strength"},
		{ID: 4, Name: "Raj Patel", Specialization: "Mobility"},
	}

	tests := []struct {
		name    string
		query   url.Values
		wantIDs []int64
	}{
		{
			name:    "free text matches name",
			query:   url.Values{"q": {"mel"}},
			wantIDs: []int64{1},
		},
		{
			name:    "free text matches specialization",
			query:   url.Values{"q": {"strength"}},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "specialization filter is exact",
			query:   url.Values{"specialization": {"Strength"}},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "sort by name ascending",
			query:   url.Values{"sort": {"name"}},
			wantIDs: []int64{2, 1, 4, 3},
		},
		{
			name:    "sort by name descending",
			query:   url.Values{"sort": {"name"}, "dir": {"desc"}},
			wantIDs: []int64{3, 4, 1, 2},
		},
		{
			name:    "unknown sort column keeps API order",
			query:   url.Values{"sort": {"contact_number"}},
			wantIDs: []int64{1, 2, 3, 4},
		},
		{
			name:    "filter and sort combine",
			query:   url.Values{"specialization": {"Strength"}, "sort": {"name"}, "dir": {"desc"}},
			wantIDs: []int64{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{trainers: roster}
			page, err := LoadTrainers(context.Background(), api, tt.query)
			if err != nil {
				t.Fatalf("LoadTrainers() error = %v", err)
			}
			got := make([]int64, len(page.Trainers))
			for i, tr := range page.Trainers {
				got[i] = tr.ID
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("rows = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("rows = %v, want %v", got, tt.wantIDs)
				}
			}
			if page.Info.Total != len(tt.wantIDs) {
				t.Errorf("Info.Total = %d, want %d", page.Info.Total, len(tt.wantIDs))
			}
		})
	}
}

// TestTrainerPageSortQuery tests the column-header link builder: the
// active column flips direction, others start ascending, and the search
// survives.
func TestTrainerPageSortQuery(t *testing.T) {
	api := &fakeAPI{trainers: seedTrainers(3)}
	page, err := LoadTrainers(context.Background(), api, url.Values{"sort": {"name"}, "dir": {"asc"}, "q": {"tr"}})
	if err != nil {
		t.Fatalf("LoadTrainers() error = %v", err)
	}

	got, err := url.ParseQuery(page.SortQuery("name"))
	if err != nil {
		t.Fatalf("parse sort query: %v", err)
	}
	if got.Get("dir") != "desc" {
		t.Errorf("active column dir = %q, want flipped to desc", got.Get("dir"))
	}
	if got.Get("q") != "tr" {
		t.Errorf("q = %q, sort links must keep the search", got.Get("q"))
	}

	got, err = url.ParseQuery(page.SortQuery("specialization"))
	if err != nil {
		t.Fatalf("parse sort query: %v", err)
	}
	if got.Get("dir") != "asc" {
		t.Errorf("inactive column dir = %q, want asc", got.Get("dir"))
	}
}

// TestTrainerPagePageQuery tests that pagination links carry sort and
// filter state.
func TestTrainerPagePageQuery(t *testing.T) {
	api := &fakeAPI{trainers: seedTrainers(45)}
	page, err := LoadTrainers(context.Background(), api, url.Values{"sort": {"name"}, "dir": {"desc"}, "q": {"Trainer"}})
	if err != nil {
		t.Fatalf("LoadTrainers() error = %v", err)
	}

	got, err := url.ParseQuery(page.PageQuery(2))
	if err != nil {
		t.Fatalf("parse page query: %v", err)
	}
	if got.Get("page") != "2" || got.Get("sort") != "name" || got.Get("dir") != "desc" || got.Get("q") != "Trainer" {
		t.Errorf("page query = %v, want page 2 with sort and search intact", got)
	}
}

// TestLoadTrainersUpstreamFailure tests error propagation.
func TestLoadTrainersUpstreamFailure(t *testing.T) {
	api := &fakeAPI{widgetErr: upstreamErr("GET /trainers")}

	if _, err := LoadTrainers(context.Background(), api, url.Values{}); err == nil {
		t.Error("LoadTrainers() should surface the upstream failure")
	}
}
