package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/revanth2426/gym-frontend-new/internal/domain/account"
)

// TestExecuteChangePassword_Valid tests the happy path.
func TestExecuteChangePassword_Valid(t *testing.T) {
	store := newMockAccountStore()
	a := seedAccount(t, store, "staff@gym.test", "old-password-long", account.RoleStaff)
	a.PasswordChangeRequired = true
	store.accounts["staff@gym.test"] = a

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID:       a.ID,
		CurrentPassword: "old-password-long",
		NewPassword:     "new-password-longer",
	}, ChangePasswordDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := store.accounts["staff@gym.test"]
	if err := saved.CheckPassword("new-password-longer"); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
	if saved.PasswordChangeRequired {
		t.Error("expected PasswordChangeRequired cleared")
	}
}

// TestExecuteChangePassword_WrongCurrent tests the current-password check.
func TestExecuteChangePassword_WrongCurrent(t *testing.T) {
	store := newMockAccountStore()
	a := seedAccount(t, store, "staff@gym.test", "old-password-long", account.RoleStaff)

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID:       a.ID,
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-longer",
	}, ChangePasswordDeps{AccountStore: store})
	if !errors.Is(err, ErrCurrentPasswordWrong) {
		t.Errorf("expected ErrCurrentPasswordWrong, got %v", err)
	}
}

// TestExecuteChangePassword_SamePassword tests the must-differ rule.
func TestExecuteChangePassword_SamePassword(t *testing.T) {
	store := newMockAccountStore()
	a := seedAccount(t, store, "staff@gym.test", "old-password-long", account.RoleStaff)

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID:       a.ID,
		CurrentPassword: "old-password-long",
		NewPassword:     "old-password-long",
	}, ChangePasswordDeps{AccountStore: store})
	if !errors.Is(err, ErrNewPasswordSame) {
		t.Errorf("expected ErrNewPasswordSame, got %v", err)
	}
}

// TestExecuteChangePassword_TooShort tests the length policy on the new password.
func TestExecuteChangePassword_TooShort(t *testing.T) {
	store := newMockAccountStore()
	a := seedAccount(t, store, "staff@gym.test", "old-password-long", account.RoleStaff)

	err := ExecuteChangePassword(context.Background(), ChangePasswordInput{
		AccountID:       a.ID,
		CurrentPassword: "old-password-long",
		NewPassword:     "short",
	}, ChangePasswordDeps{AccountStore: store})
	if !errors.Is(err, account.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}
