package plan

import (
	"fmt"
	"strings"
)

// MembershipPlan is a plan offering as served by the gym API. Plans are
// read-only in the console; they populate the plans page and the plan
// selector on the member form.
type MembershipPlan struct {
	ID             int64
	Name           string
	Price          float64
	DurationMonths int
	Features       []string
}

// DurationLabel returns a human-readable duration, e.g. "1 month", "12 months".
// INVARIANT: plan fields are not mutated
func (p *MembershipPlan) DurationLabel() string {
	if p.DurationMonths == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", p.DurationMonths)
}

// PriceLabel returns the price formatted for display.
// INVARIANT: plan fields are not mutated
func (p *MembershipPlan) PriceLabel() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// FeatureSummary joins the feature list for single-line display, or returns
// a placeholder when the plan lists none.
func (p *MembershipPlan) FeatureSummary() string {
	if len(p.Features) == 0 {
		return "No listed features"
	}
	return strings.Join(p.Features, ", ")
}

// ByID returns the plan with the given ID from a fetched plan list, or nil.
func ByID(plans []MembershipPlan, id int64) *MembershipPlan {
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i]
		}
	}
	return nil
}
