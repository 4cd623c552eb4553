package email

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

// Domain errors
var (
	ErrEmptyRecipient   = errors.New("recipient email is required")
	ErrInvalidRecipient = errors.New("recipient email must contain '@'")
	ErrEmptyMemberName  = errors.New("member name is required")
	ErrEmptyEndDate     = errors.New("membership end date is required")
)

// Reminder is a renewal reminder composed for one member whose plan
// assignment is about to lapse. The gym API does not hold member email
// addresses, so staff supply the recipient when sending.
type Reminder struct {
	MemberID   int64
	MemberName string
	To         string
	PlanName   string
	EndDate    string // YYYY-MM-DD format
	DaysLeft   int
	GymName    string
}

// Validate checks that the Reminder can be sent.
// PRE: Reminder struct is populated from the send form
// POST: Returns nil if valid, error otherwise
func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return ErrEmptyRecipient
	}
	if !strings.Contains(r.To, "@") {
		return ErrInvalidRecipient
	}
	if strings.TrimSpace(r.MemberName) == "" {
		return ErrEmptyMemberName
	}
	if r.EndDate == "" {
		return ErrEmptyEndDate
	}
	return nil
}

// Subject returns the reminder subject line.
// INVARIANT: Reminder fields are not mutated
func (r *Reminder) Subject() string {
	return fmt.Sprintf("Your %s membership expires on %s", r.PlanName, r.EndDate)
}

// HTMLBody renders the reminder body. Member-supplied values are escaped;
// the result is safe to hand to the email provider as HTML.
// INVARIANT: Reminder fields are not mutated
func (r *Reminder) HTMLBody() string {
	gym := r.GymName
	if gym == "" {
		gym = "the gym"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(r.MemberName))
	if r.DaysLeft == 1 {
		fmt.Fprintf(&b, "<p>Your <strong>%s</strong> membership expires tomorrow (%s).</p>",
			html.EscapeString(r.PlanName), r.EndDate)
	} else {
		fmt.Fprintf(&b, "<p>Your <strong>%s</strong> membership expires in %d days, on %s.</p>",
			html.EscapeString(r.PlanName), r.DaysLeft, r.EndDate)
	}
	fmt.Fprintf(&b, "<p>Drop by the front desk or reply to this email to renew.</p>")
	fmt.Fprintf(&b, "<p>See you soon,<br>%s</p>", html.EscapeString(gym))
	return b.String()
}
