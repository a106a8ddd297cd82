package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func testHolder() Profile {
	return Profile{FirstName: "John", LastName: "Doe", DOB: Date{Year: 1999, Month: 8, Day: 2}}
}

func TestInterest(t *testing.T) {
	holder := testHolder()
	number := func(tp AccountType) AccountNumber {
		return AccountNumber{Branch: Edison, Type: tp, Serial: "1111"}
	}

	checking := NewChecking(number(Checking), holder, 1000)
	assert.InDelta(t, 1.25, checking.Interest(), 1e-9)

	college := NewCollegeChecking(number(CollegeChecking), holder, 1000, NewBrunswick)
	assert.InDelta(t, 1.25, college.Interest(), 1e-9)

	savings := NewSavings(number(Savings), holder, 1200)
	assert.InDelta(t, 1200*0.025/12, savings.Interest(), 1e-9)
	savings.SetLoyal(true)
	assert.InDelta(t, 1200*0.0275/12, savings.Interest(), 1e-9)

	mm := NewMoneyMarket(number(MoneyMarket), holder, 5000)
	require.True(t, mm.Loyal())
	assert.InDelta(t, 5000*0.0375/12, mm.Interest(), 1e-9)
	mm.SetLoyal(false)
	assert.InDelta(t, 5000*0.035/12, mm.Interest(), 1e-9)

	opened := Date{Year: 2024, Month: 1, Day: 1}
	cdRates := map[int]float64{3: 0.03, 6: 0.0325, 9: 0.035, 12: 0.04}
	for term, rate := range cdRates {
		cd := NewCertificateDeposit(number(CertificateDeposit), holder, 1500, term, opened)
		assert.InDelta(t, 1500*rate/12, cd.Interest(), 1e-9, "term %d", term)
	}
}

func TestFee(t *testing.T) {
	holder := testHolder()
	number := func(tp AccountType) AccountNumber {
		return AccountNumber{Branch: Warren, Type: tp, Serial: "2222"}
	}

	tests := []struct {
		name    string
		account *Account
		want    float64
	}{
		{"checking under waiver", NewChecking(number(Checking), holder, 999.99), 15},
		{"checking at waiver", NewChecking(number(Checking), holder, 1000), 0},
		{"college never charged", NewCollegeChecking(number(CollegeChecking), holder, 10, Camden), 0},
		{"savings under waiver", NewSavings(number(Savings), holder, 499), 25},
		{"savings at waiver", NewSavings(number(Savings), holder, 500), 0},
		{"money market under waiver", NewMoneyMarket(number(MoneyMarket), holder, 1999), 25},
		{"money market at waiver", NewMoneyMarket(number(MoneyMarket), holder, 2000), 0},
		{"certificate never charged", NewCertificateDeposit(number(CertificateDeposit), holder, 1500, 3, Date{Year: 2024, Month: 1, Day: 1}), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.account.Fee(), 1e-9)
		})
	}
}

func TestMoneyMarketWithdrawSideEffects(t *testing.T) {
	holder := testHolder()
	number := AccountNumber{Branch: Edison, Type: MoneyMarket, Serial: "3333"}
	mm := NewMoneyMarket(number, holder, 5000).WithClock(fixedClock(2024, time.June, 1))
	require.True(t, mm.Loyal())

	mm.Withdraw(100)
	assert.InDelta(t, 4900, mm.Balance(), 1e-9)
	assert.False(t, mm.Loyal())
	assert.Equal(t, 1, mm.Withdrawals())

	mm.Withdraw(100)
	mm.Withdraw(100)
	assert.InDelta(t, 4700, mm.Balance(), 1e-9)
	assert.Equal(t, 3, mm.Withdrawals())
	assert.InDelta(t, 0, mm.Fee(), 1e-9)

	// Fourth withdrawal pays the penalty out of the balance and starts
	// charging the excess fee.
	mm.Withdraw(100)
	assert.Equal(t, 4, mm.Withdrawals())
	assert.InDelta(t, 4590, mm.Balance(), 1e-9)
	assert.InDelta(t, 10, mm.Fee(), 1e-9)
}

func TestMaturityDate(t *testing.T) {
	holder := testHolder()
	number := AccountNumber{Branch: Princeton, Type: CertificateDeposit, Serial: "4444"}

	tests := []struct {
		opened Date
		term   int
		want   Date
	}{
		{Date{Year: 2023, Month: 11, Day: 15}, 3, Date{Year: 2024, Month: 2, Day: 15}},
		{Date{Year: 2023, Month: 11, Day: 30}, 3, Date{Year: 2024, Month: 2, Day: 29}},
		{Date{Year: 2022, Month: 11, Day: 30}, 3, Date{Year: 2023, Month: 2, Day: 28}},
		{Date{Year: 2024, Month: 1, Day: 31}, 3, Date{Year: 2024, Month: 4, Day: 30}},
		{Date{Year: 2024, Month: 3, Day: 10}, 12, Date{Year: 2025, Month: 3, Day: 10}},
	}
	for _, tc := range tests {
		cd := NewCertificateDeposit(number, holder, 1500, tc.term, tc.opened)
		assert.Equal(t, tc.want, cd.MaturityDate(), "%s + %d months", tc.opened, tc.term)
	}
}

func TestStatement(t *testing.T) {
	holder := testHolder()
	number := AccountNumber{Branch: Edison, Type: Checking, Serial: "1234"}

	t.Run("no activities", func(t *testing.T) {
		checking := NewChecking(number, holder, 1000)
		got := checking.Statement()
		assert.Equal(t, "No activities for John Doe\n[interest] $1.25 [Fee] $0.00\n[Balance] $1,001.25\n", got)
		assert.InDelta(t, 1001.25, checking.Balance(), 1e-9)
	})

	t.Run("with activities", func(t *testing.T) {
		checking := NewChecking(number, holder, 1000).WithClock(fixedClock(2024, time.June, 1))
		checking.Deposit(100)
		got := checking.Statement()
		assert.Contains(t, got, "John Doe 8/2/1999\n[Account #] 100011234\n[Activity]\n")
		assert.Contains(t, got, "\t6/1/2024::EDISON::deposit:: $100.00\n")
	})
}

func TestAccountString(t *testing.T) {
	holder := testHolder()

	checking := NewChecking(AccountNumber{Branch: Edison, Type: Checking, Serial: "1234"}, holder, 1000)
	assert.Equal(t, "Account#[100011234] Holder[John Doe 8/2/1999] Balance[$1,000.00]", checking.String())

	college := NewCollegeChecking(AccountNumber{Branch: Edison, Type: CollegeChecking, Serial: "1234"}, holder, 1000, NewBrunswick)
	assert.Equal(t, "Account#[100041234] Holder[John Doe 8/2/1999] Balance[$1,000.00] Campus[New Brunswick]", college.String())

	mm := NewMoneyMarket(AccountNumber{Branch: Edison, Type: MoneyMarket, Serial: "1234"}, holder, 5000)
	assert.Equal(t, "Account#[100031234] Holder[John Doe 8/2/1999] Balance[$5,000.00] Withdrawal[0]", mm.String())

	cd := NewCertificateDeposit(AccountNumber{Branch: Edison, Type: CertificateDeposit, Serial: "1234"}, holder, 1500, 3, Date{Year: 2023, Month: 11, Day: 30})
	assert.Equal(t,
		"Account#[100051234] Holder[John Doe 8/2/1999] Balance[$1,500.00] Term[3] Date Opened[11/30/2023] Maturity Date[2/29/2024]",
		cd.String())
}

func TestDepositWithdrawInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.Float64Range(0, 1e6).Draw(t, "start")
		amount := rapid.Float64Range(0.01, 1e4).Draw(t, "amount")

		number := AccountNumber{Branch: Warren, Type: Savings, Serial: "0001"}
		savings := NewSavings(number, testHolder(), start).WithClock(fixedClock(2024, time.June, 1))
		savings.Deposit(amount)
		savings.Withdraw(amount)

		assert.InDelta(t, start, savings.Balance(), 1e-6)
		assert.Len(t, savings.Activities(), 2)
	})
}

func TestAccountEqual(t *testing.T) {
	holder := testHolder()
	a := NewChecking(AccountNumber{Branch: Edison, Type: Checking, Serial: "1111"}, holder, 100)
	b := NewChecking(AccountNumber{Branch: Warren, Type: Checking, Serial: "2222"}, holder, 900)
	c := NewSavings(AccountNumber{Branch: Edison, Type: Savings, Serial: "1111"}, holder, 100)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
