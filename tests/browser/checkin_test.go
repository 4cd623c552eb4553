package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/revanth2426/gym-frontend-new/internal/domain/member"
)

func TestCheckInViaTypeahead(t *testing.T) {
	app := newTestApp(t)
	app.Gym.members = []member.Member{
		{ID: 5, Name: "Alice Evans", Age: 31, Gender: member.GenderFemale, ContactNumber: "021555001", MembershipStatus: member.StatusActive},
	}

	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/attendance"); err != nil {
		t.Fatalf("failed to open attendance page: %v", err)
	}

	if err := page.Locator("#checkin-search").Fill("alice"); err != nil {
		t.Fatalf("failed to type into lookup box: %v", err)
	}
	candidate := page.Locator("#search-results li", playwright.PageLocatorOptions{
		HasText: "Alice Evans",
	})
	if err := candidate.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(5000)}); err != nil {
		t.Fatalf("candidate never appeared: %v", err)
	}
	if err := candidate.Click(); err != nil {
		t.Fatalf("failed to pick candidate: %v", err)
	}

	if err := page.Locator("form#checkin-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit check-in: %v", err)
	}

	flash := page.Locator("p.flash")
	if err := flash.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(5000)}); err != nil {
		t.Fatalf("no flash after check-in: %v", err)
	}
	text, _ := flash.TextContent()
	if !strings.Contains(text, "Checked in Alice Evans.") {
		t.Errorf("got flash %q, want check-in confirmation", text)
	}

	row := page.Locator("table tbody tr", playwright.PageLocatorOptions{
		HasText: "Alice Evans",
	})
	if err := row.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(5000)}); err != nil {
		t.Fatalf("check-in missing from the log: %v", err)
	}
	if len(app.Gym.log) != 1 || app.Gym.log[0].MemberID != 5 {
		t.Errorf("upstream log = %+v, want one check-in for member 5", app.Gym.log)
	}
}

func TestCheckInWithoutSelectionShowsError(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/attendance"); err != nil {
		t.Fatalf("failed to open attendance page: %v", err)
	}
	if err := page.Locator("form#checkin-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit empty check-in: %v", err)
	}

	flash := page.Locator("p.flash")
	if err := flash.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(5000)}); err != nil {
		t.Fatalf("no flash after empty check-in: %v", err)
	}
	text, _ := flash.TextContent()
	if !strings.Contains(text, "select a member") {
		t.Errorf("got flash %q, want selection error", text)
	}
}
