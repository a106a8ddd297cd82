package domain

import "fmt"

// ActivityKind tags a recorded transaction as a deposit or a withdrawal.
type ActivityKind byte

const (
	Deposit    ActivityKind = 'D'
	Withdrawal ActivityKind = 'W'
)

// Activity is one entry in an account's append-only transaction history.
// Immutable once recorded.
type Activity struct {
	Date     Date
	Location Branch
	Kind     ActivityKind
	Amount   float64
	ATM      bool
}

// Compare orders activities by date.
func (a Activity) Compare(other Activity) int {
	return a.Date.Compare(other.Date)
}

// String renders the statement line for this activity.
func (a Activity) String() string {
	verb := "deposit"
	if a.Kind == Withdrawal {
		verb = "withdrawal"
	}
	suffix := ""
	if a.ATM {
		suffix = " (ATM)"
	}
	return fmt.Sprintf("\t%s::%s::%s:: $%.2f%s", a.Date, a.Location, verb, a.Amount, suffix)
}
