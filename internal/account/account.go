package account

// Bound is the exclusive ceiling for the balance, for single deposit and
// withdraw amounts, and for the magnitude of the credit limit.
const Bound int64 = 1_000_000

type Op string

const (
	OpDeposit      Op = "deposit"
	OpWithdraw     Op = "withdraw"
	OpSetMaxCredit Op = "set_max_credit"
	OpBlock        Op = "block"
	OpUnblock      Op = "unblock"
)

// Account holds a balance that may go negative down to its credit limit.
// Every mutator reports whether it was applied; a rejected call leaves the
// account untouched. Account is not safe for concurrent use.
type Account struct {
	balance   int64
	maxCredit int64
	blocked   bool
}

type State struct {
	Balance   int64 `json:"balance"`
	MaxCredit int64 `json:"max_credit"`
	Blocked   bool  `json:"blocked"`
}

func New() *Account {
	return &Account{}
}

func (a *Account) Deposit(amount int64) bool {
	if a.blocked || !validAmount(amount) {
		return false
	}
	if a.balance+amount >= Bound {
		return false
	}
	a.balance += amount
	return true
}

// Withdraw does not check the credit limit; an account drawn past it simply
// cannot be unblocked until it is topped up.
func (a *Account) Withdraw(amount int64) bool {
	if a.blocked || !validAmount(amount) {
		return false
	}
	a.balance -= amount
	return true
}

// SetMaxCredit is only allowed while the account is blocked.
func (a *Account) SetMaxCredit(amount int64) bool {
	if !a.blocked {
		return false
	}
	if amount >= Bound || amount <= -Bound {
		return false
	}
	a.maxCredit = amount
	return true
}

func (a *Account) Block() {
	a.blocked = true
}

func (a *Account) Unblock() bool {
	if a.balance < -a.maxCredit {
		return false
	}
	a.blocked = false
	return true
}

func (a *Account) Balance() int64   { return a.balance }
func (a *Account) MaxCredit() int64 { return a.maxCredit }
func (a *Account) IsBlocked() bool  { return a.blocked }

func (a *Account) State() State {
	return State{
		Balance:   a.balance,
		MaxCredit: a.maxCredit,
		Blocked:   a.blocked,
	}
}

func validAmount(amount int64) bool {
	return amount >= 0 && amount < Bound
}
