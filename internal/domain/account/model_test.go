package account_test

import (
	"testing"
	"time"

	"studio/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr bool
	}{
		{
			name: "valid admin account",
			account: account.Account{
				ID:    "1",
				Email: "owner@goldenhour.studio",
				Role:  account.RoleAdmin,
			},
			wantErr: false,
		},
		{
			name: "valid assistant account",
			account: account.Account{
				ID:    "2",
				Email: "tove@goldenhour.studio",
				Role:  account.RoleAssistant,
			},
			wantErr: false,
		},
		{
			name: "valid client account",
			account: account.Account{
				ID:    "3",
				Email: "mia@example.com",
				Role:  account.RoleClient,
			},
			wantErr: false,
		},
		{
			name:    "empty email",
			account: account.Account{ID: "4", Email: "", Role: account.RoleClient},
			wantErr: true,
		},
		{
			name:    "email without @",
			account: account.Account{ID: "5", Email: "not-an-email", Role: account.RoleClient},
			wantErr: true,
		},
		{
			name:    "invalid role",
			account: account.Account{ID: "6", Email: "x@example.com", Role: "receptionist"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.account.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid account, got: %v", err)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests hashing and verification.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	a := account.Account{Email: "owner@goldenhour.studio", Role: account.RoleAdmin}

	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("empty password: got %v, want ErrEmptyPassword", err)
	}
	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("short password: got %v, want ErrPasswordTooShort", err)
	}

	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if a.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword accepted wrong password: %v", err)
	}
}

// TestAccount_Lockout tests the failed-login lockout policy.
func TestAccount_Lockout(t *testing.T) {
	a := account.Account{Email: "mia@example.com", Role: account.RoleClient}

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("account locked before 5 failures")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("account not locked after 5 failures")
	}
	if time.Until(a.LockedUntil) > 15*time.Minute {
		t.Errorf("lockout longer than 15 minutes: %v", a.LockedUntil)
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("reset did not clear lockout")
	}
}

// TestAccount_RoleHelpers tests role predicates.
func TestAccount_RoleHelpers(t *testing.T) {
	admin := account.Account{Role: account.RoleAdmin}
	assistant := account.Account{Role: account.RoleAssistant}
	client := account.Account{Role: account.RoleClient}

	if !admin.IsAdmin() || !admin.IsStaff() {
		t.Error("admin role predicates wrong")
	}
	if assistant.IsAdmin() || !assistant.IsStaff() {
		t.Error("assistant role predicates wrong")
	}
	if client.IsAdmin() || client.IsStaff() {
		t.Error("client role predicates wrong")
	}
}
