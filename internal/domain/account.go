package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rule thresholds and rates. Interest rates are annual; the monthly figure
// divides by 12 at computation time with no intermediate rounding.
const (
	checkingAnnualRate    = 0.015
	savingsAnnualRate     = 0.025
	moneyMarketAnnualRate = 0.035
	loyaltyBonusRate      = 0.0025

	checkingFee           = 15.0
	checkingFeeWaiver     = 1000.0
	savingsFee            = 25.0
	savingsFeeWaiver      = 500.0
	moneyMarketFeeWaiver  = 2000.0
	excessWithdrawalFee   = 10.0
	excessWithdrawalLimit = 3

	// MoneyMarketLoyaltyMinimum is the balance at or above which a money
	// market account holds loyalty status.
	MoneyMarketLoyaltyMinimum = 5000.0
)

// CDTerms are the permitted certificate terms in months.
var CDTerms = []int{3, 6, 9, 12}

var cdAnnualRates = map[int]float64{
	3:  0.03,
	6:  0.0325,
	9:  0.035,
	12: 0.04,
}

// ValidCDTerm reports whether term is a permitted certificate term.
func ValidCDTerm(term int) bool {
	_, ok := cdAnnualRates[term]
	return ok
}

// Account is one open account of any variant. The variant is discriminated
// by the account number's type code; the per-variant fields (campus, loyalty,
// withdrawal count, term, open date) are only meaningful for the variants
// that declare them. Interest, fee, and withdrawal behavior switch on the
// discriminant.
type Account struct {
	number     AccountNumber
	holder     Profile
	balance    float64
	activities []Activity

	campus      Campus // college checking
	loyal       bool   // savings, money market
	withdrawals int    // money market
	term        int    // certificate
	opened      Date   // certificate

	nowFn func() time.Time
}

func newAccount(number AccountNumber, holder Profile, balance float64) *Account {
	return &Account{
		number:  number,
		holder:  holder,
		balance: balance,
		nowFn:   time.Now,
	}
}

// NewChecking opens a regular checking account.
func NewChecking(number AccountNumber, holder Profile, balance float64) *Account {
	return newAccount(number, holder, balance)
}

// NewCollegeChecking opens a college checking account tied to a campus.
func NewCollegeChecking(number AccountNumber, holder Profile, balance float64, campus Campus) *Account {
	a := newAccount(number, holder, balance)
	a.campus = campus
	return a
}

// NewSavings opens a savings account. Loyalty starts false and is owned by
// the store's recomputation.
func NewSavings(number AccountNumber, holder Profile, balance float64) *Account {
	return newAccount(number, holder, balance)
}

// NewMoneyMarket opens a money market account. An opening balance at or above
// the loyalty minimum starts the account loyal.
func NewMoneyMarket(number AccountNumber, holder Profile, balance float64) *Account {
	a := newAccount(number, holder, balance)
	a.loyal = balance >= MoneyMarketLoyaltyMinimum
	return a
}

// NewCertificateDeposit opens a certificate with the given term in months.
func NewCertificateDeposit(number AccountNumber, holder Profile, balance float64, term int, opened Date) *Account {
	a := newAccount(number, holder, balance)
	a.term = term
	a.opened = opened
	return a
}

// WithClock overrides the clock used to date recorded activities.
func (a *Account) WithClock(nowFn func() time.Time) *Account {
	a.nowFn = nowFn
	return a
}

// Number returns the account number.
func (a *Account) Number() AccountNumber { return a.number }

// Holder returns the holder profile.
func (a *Account) Holder() Profile { return a.holder }

// Type returns the variant discriminant.
func (a *Account) Type() AccountType { return a.number.Type }

// Balance returns the current balance.
func (a *Account) Balance() float64 { return a.balance }

// SetBalance overwrites the balance. Used by the store when zeroing a closed
// account.
func (a *Account) SetBalance(balance float64) { a.balance = balance }

// Loyal reports the loyalty flag. Meaningful for savings and money market.
func (a *Account) Loyal() bool { return a.loyal }

// SetLoyal assigns the loyalty flag.
func (a *Account) SetLoyal(loyal bool) { a.loyal = loyal }

// Withdrawals returns the money market withdrawal count.
func (a *Account) Withdrawals() int { return a.withdrawals }

// Campus returns the college checking campus.
func (a *Account) Campus() Campus { return a.campus }

// Term returns the certificate term in months.
func (a *Account) Term() int { return a.term }

// OpenDate returns the certificate open date.
func (a *Account) OpenDate() Date { return a.opened }

// Activities returns the recorded transaction history, oldest first.
func (a *Account) Activities() []Activity {
	out := make([]Activity, len(a.activities))
	copy(out, a.activities)
	return out
}

// AddActivity appends an entry to the transaction history.
func (a *Account) AddActivity(activity Activity) {
	a.activities = append(a.activities, activity)
}

// Interest computes the monthly interest earned at the current balance.
// Pure; no rounding.
func (a *Account) Interest() float64 {
	switch a.number.Type {
	case Checking, CollegeChecking:
		return a.balance * (checkingAnnualRate / 12)
	case Savings:
		rate := savingsAnnualRate
		if a.loyal {
			rate += loyaltyBonusRate
		}
		return a.balance * (rate / 12)
	case MoneyMarket:
		rate := moneyMarketAnnualRate
		if a.loyal {
			rate += loyaltyBonusRate
		}
		return a.balance * (rate / 12)
	case CertificateDeposit:
		rate, ok := cdAnnualRates[a.term]
		if !ok {
			rate = cdAnnualRates[3]
		}
		return a.balance * (rate / 12)
	}
	return 0
}

// Fee computes the monthly maintenance fee at the current balance.
func (a *Account) Fee() float64 {
	switch a.number.Type {
	case Checking:
		if a.balance >= checkingFeeWaiver {
			return 0
		}
		return checkingFee
	case Savings:
		if a.balance >= savingsFeeWaiver {
			return 0
		}
		return savingsFee
	case MoneyMarket:
		fee := 0.0
		if a.balance < moneyMarketFeeWaiver {
			fee = savingsFee
		}
		if a.withdrawals > excessWithdrawalLimit {
			fee += excessWithdrawalFee
		}
		return fee
	}
	// College checking and certificates carry no fee.
	return 0
}

// Deposit adds amount to the balance and records a deposit activity dated
// now at the account's branch. Amount validation is the caller's job.
func (a *Account) Deposit(amount float64) {
	a.balance += amount
	a.AddActivity(Activity{
		Date:     DateOf(a.nowFn()),
		Location: a.number.Branch,
		Kind:     Deposit,
		Amount:   amount,
	})
}

// Withdraw subtracts amount from the balance and records a withdrawal
// activity. There is no insufficient-funds check here; the store gates that.
// Money market accounts additionally count the withdrawal, drop loyalty when
// the balance falls under the loyalty minimum, and pay a flat penalty out of
// the balance once the withdrawal count exceeds the free limit. The penalty
// is a side effect of the call, separate from the statement-time fee.
func (a *Account) Withdraw(amount float64) {
	a.balance -= amount
	a.AddActivity(Activity{
		Date:     DateOf(a.nowFn()),
		Location: a.number.Branch,
		Kind:     Withdrawal,
		Amount:   amount,
	})

	if a.number.Type != MoneyMarket {
		return
	}
	a.withdrawals++
	if a.balance < MoneyMarketLoyaltyMinimum {
		a.loyal = false
	}
	if a.withdrawals > excessWithdrawalLimit {
		a.balance -= excessWithdrawalFee
	}
}

// MaturityDate derives a certificate's maturity by adding the term to the
// open date, rolling month overflow into the year and clamping the day to
// the target month's length. Recomputed on demand, never stored.
func (a *Account) MaturityDate() Date {
	year := a.opened.Year
	month := a.opened.Month + a.term
	day := a.opened.Day

	for month > 12 {
		month -= 12
		year++
	}
	if last := DaysIn(month, year); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// Equal reports type-level equality: same holder and same account type. This
// is deliberately not instance identity; it is the basis for duplicate
// detection and for the store's removal lookup.
func (a *Account) Equal(other *Account) bool {
	return a.holder.Equal(other.holder) && a.number.Type == other.number.Type
}

// Compare orders accounts by account number only.
func (a *Account) Compare(other *Account) int {
	return a.number.Compare(other.number)
}

// Statement renders the activity history, the monthly interest and fee, and
// the resulting balance. Generating a statement applies the interest and fee
// to the stored balance as a side effect.
func (a *Account) Statement() string {
	var b strings.Builder

	if len(a.activities) == 0 {
		fmt.Fprintf(&b, "No activities for %s %s\n", a.holder.FirstName, a.holder.LastName)
	} else {
		fmt.Fprintf(&b, "%s\n[Account #] %s\n[Activity]\n", a.holder, a.number)
		for _, activity := range a.activities {
			b.WriteString(activity.String())
			b.WriteByte('\n')
		}
	}

	interest := a.Interest()
	fee := a.Fee()
	fmt.Fprintf(&b, "[interest] $%s [Fee] $%s\n", FormatCurrency(interest), FormatCurrency(fee))

	a.balance = a.balance + interest - fee
	fmt.Fprintf(&b, "[Balance] $%s\n", FormatCurrency(a.balance))

	return b.String()
}

// String renders the account's one-line form with variant-specific suffixes.
func (a *Account) String() string {
	base := fmt.Sprintf("Account#[%s] Holder[%s] Balance[$%s]", a.number, a.holder, FormatCurrency(a.balance))
	switch a.number.Type {
	case CollegeChecking:
		return fmt.Sprintf("%s Campus[%s]", base, a.campus)
	case MoneyMarket:
		return fmt.Sprintf("%s Withdrawal[%d]", base, a.withdrawals)
	case CertificateDeposit:
		return fmt.Sprintf("%s Term[%d] Date Opened[%s] Maturity Date[%s]", base, a.term, a.opened, a.MaturityDate())
	}
	return base
}
