package account_test

import (
	"testing"

	"credit-account/internal/account"
)

const bigAmount = account.Bound + 1

func TestNewAccountDefaults(t *testing.T) {
	a := account.New()

	if a.Balance() != 0 {
		t.Errorf("Expected balance 0, got %d", a.Balance())
	}
	if a.MaxCredit() != 0 {
		t.Errorf("Expected max credit 0, got %d", a.MaxCredit())
	}
	if a.IsBlocked() {
		t.Error("New account should not be blocked")
	}
}

func TestDeposit(t *testing.T) {
	a := account.New()

	if !a.Deposit(100) {
		t.Fatal("Deposit(100) should be applied")
	}
	if a.Balance() != 100 {
		t.Errorf("Expected balance 100, got %d", a.Balance())
	}
}

func TestWithdraw(t *testing.T) {
	a := account.New()

	if !a.Withdraw(100) {
		t.Fatal("Withdraw(100) should be applied")
	}
	if a.Balance() != -100 {
		t.Errorf("Expected balance -100, got %d", a.Balance())
	}
}

func TestWithdrawIgnoresCreditLimit(t *testing.T) {
	a := account.New()
	a.Block()
	a.SetMaxCredit(10)
	a.Unblock()

	if !a.Withdraw(500) {
		t.Fatal("Withdraw past the credit limit should be applied")
	}
	if a.Balance() != -500 {
		t.Errorf("Expected balance -500, got %d", a.Balance())
	}
}

func TestRejectedAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
	}{
		{"negative", -1},
		{"at bound", account.Bound},
		{"above bound", bigAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, blocked := range []bool{false, true} {
				a := account.New()
				if blocked {
					a.Block()
				}

				if a.Deposit(tt.amount) {
					t.Errorf("Deposit(%d) blocked=%v should be rejected", tt.amount, blocked)
				}
				if a.Balance() != 0 {
					t.Errorf("Deposit(%d) changed balance to %d", tt.amount, a.Balance())
				}
				if a.Withdraw(tt.amount) {
					t.Errorf("Withdraw(%d) blocked=%v should be rejected", tt.amount, blocked)
				}
				if a.Balance() != 0 {
					t.Errorf("Withdraw(%d) changed balance to %d", tt.amount, a.Balance())
				}
			}
		})
	}
}

func TestDepositUpToBound(t *testing.T) {
	tests := []struct {
		name    string
		initial int64
		amount  int64
		applied bool
	}{
		{"zero", 0, 0, true},
		{"just below bound", 0, account.Bound - 1, true},
		{"reaches bound", 1, account.Bound - 1, false},
		{"negative balance", -200, account.Bound - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := account.New()
			if tt.initial > 0 {
				a.Deposit(tt.initial)
			} else if tt.initial < 0 {
				a.Withdraw(-tt.initial)
			}

			applied := a.Deposit(tt.amount)
			if applied != tt.applied {
				t.Fatalf("Deposit(%d) from %d = %v, expected %v", tt.amount, tt.initial, applied, tt.applied)
			}

			want := tt.initial
			if tt.applied {
				want += tt.amount
			}
			if a.Balance() != want {
				t.Errorf("Expected balance %d, got %d", want, a.Balance())
			}
		})
	}
}

func TestDepositWhenBalanceBecomesBound(t *testing.T) {
	a := account.New()
	a.Deposit(account.Bound - 1)

	if a.Deposit(2) {
		t.Error("Deposit(2) should be rejected")
	}
	if a.Balance() != account.Bound-1 {
		t.Errorf("Expected balance %d, got %d", account.Bound-1, a.Balance())
	}
}

func TestBlockedAccountRejectsMovements(t *testing.T) {
	a := account.New()
	a.Block()

	if a.Deposit(100) {
		t.Error("Deposit on blocked account should be rejected")
	}
	if a.Withdraw(100) {
		t.Error("Withdraw on blocked account should be rejected")
	}
	if a.Balance() != 0 {
		t.Errorf("Expected balance 0, got %d", a.Balance())
	}
}

func TestSetMaxCreditRequiresBlock(t *testing.T) {
	for _, amount := range []int64{0, 100, -100, bigAmount} {
		a := account.New()
		if a.SetMaxCredit(amount) {
			t.Errorf("SetMaxCredit(%d) on unblocked account should be rejected", amount)
		}
		if a.MaxCredit() != 0 {
			t.Errorf("SetMaxCredit(%d) changed max credit to %d", amount, a.MaxCredit())
		}
	}
}

func TestSetMaxCredit(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		applied bool
	}{
		{"within bound", 100, true},
		{"just below bound", account.Bound - 1, true},
		{"negative within bound", -100, true},
		{"at bound", account.Bound, false},
		{"at negative bound", -account.Bound, false},
		{"above bound", bigAmount, false},
		{"below negative bound", -bigAmount, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := account.New()
			a.Block()

			applied := a.SetMaxCredit(tt.amount)
			if applied != tt.applied {
				t.Fatalf("SetMaxCredit(%d) = %v, expected %v", tt.amount, applied, tt.applied)
			}

			want := int64(0)
			if tt.applied {
				want = tt.amount
			}
			if a.MaxCredit() != want {
				t.Errorf("Expected max credit %d, got %d", want, a.MaxCredit())
			}
		})
	}
}

func TestUnblockBelowCreditLimit(t *testing.T) {
	a := account.New()
	a.Withdraw(100)
	a.Block()
	a.SetMaxCredit(10)

	if a.Unblock() {
		t.Error("Unblock should be rejected while balance is below -max credit")
	}
	if !a.IsBlocked() {
		t.Error("Account should remain blocked")
	}
}

func TestUnblockWithinCreditLimit(t *testing.T) {
	a := account.New()
	a.Withdraw(100)
	a.Block()
	a.SetMaxCredit(100)

	if !a.Unblock() {
		t.Fatal("Unblock should be applied when balance equals -max credit")
	}
	if a.IsBlocked() {
		t.Error("Account should be unblocked")
	}
	if !a.Deposit(50) {
		t.Error("Deposit after unblock should be applied")
	}
}

func TestUnblockOverdrawnUnblockedAccount(t *testing.T) {
	a := account.New()
	a.Withdraw(100)

	if a.Unblock() {
		t.Error("Unblock should be rejected while balance is below -max credit")
	}
	if a.IsBlocked() {
		t.Error("Rejected unblock should leave the account unblocked")
	}
	if !a.Withdraw(1) {
		t.Error("Withdraw should still be applied on the unblocked account")
	}
}

func TestUnblockWithNegativeMaxCredit(t *testing.T) {
	tests := []struct {
		name    string
		deposit int64
		applied bool
	}{
		{"zero balance", 0, false},
		{"balance below required minimum", 49, false},
		{"balance at required minimum", 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := account.New()
			a.Deposit(tt.deposit)
			a.Block()
			if !a.SetMaxCredit(-50) {
				t.Fatal("SetMaxCredit(-50) should be applied while blocked")
			}
			if a.MaxCredit() != -50 {
				t.Fatalf("Expected max credit -50, got %d", a.MaxCredit())
			}

			if applied := a.Unblock(); applied != tt.applied {
				t.Errorf("Unblock() with balance %d = %v, expected %v", tt.deposit, applied, tt.applied)
			}
			if a.IsBlocked() == tt.applied {
				t.Errorf("Expected blocked=%v, got %v", !tt.applied, a.IsBlocked())
			}
		})
	}
}

func TestUnblockFreshAccount(t *testing.T) {
	a := account.New()

	if !a.Unblock() {
		t.Error("Unblock on a fresh account should be applied")
	}
	if a.IsBlocked() {
		t.Error("Account should not be blocked")
	}
}

func TestState(t *testing.T) {
	a := account.New()
	a.Withdraw(40)
	a.Block()
	a.SetMaxCredit(50)

	got := a.State()
	want := account.State{Balance: -40, MaxCredit: 50, Blocked: true}
	if got != want {
		t.Errorf("State() = %+v, expected %+v", got, want)
	}
}
