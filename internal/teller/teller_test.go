package teller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/store"
)

// All tests run against a frozen clock so age checks are reproducible.
var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newService() *Service {
	return New(store.New(nil), nil).WithClock(func() time.Time { return testNow })
}

func openReq(accountType string) OpenRequest {
	return OpenRequest{
		Type:      accountType,
		Branch:    "Edison",
		FirstName: "John",
		LastName:  "Doe",
		DOB:       "8/2/1999",
		Deposit:   500,
	}
}

func TestOpenChecking(t *testing.T) {
	svc := newService()
	account, err := svc.Open(openReq("checking"))
	require.NoError(t, err)

	assert.Equal(t, domain.Checking, account.Type())
	assert.Equal(t, domain.Edison, account.Number().Branch)
	assert.InDelta(t, 500, account.Balance(), 1e-9)
	assert.Equal(t, 1, svc.Store().Len())
}

func TestOpenValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OpenRequest)
		wantErr error
	}{
		{"unparseable dob", func(r *OpenRequest) { r.DOB = "yesterday" }, domain.ErrFormat},
		{"invalid dob", func(r *OpenRequest) { r.DOB = "2/30/1999" }, domain.ErrValidation},
		{"future dob", func(r *OpenRequest) { r.DOB = "1/1/2030" }, domain.ErrValidation},
		{"dob today", func(r *OpenRequest) { r.DOB = "6/1/2024" }, domain.ErrValidation},
		{"underage", func(r *OpenRequest) { r.DOB = "7/1/2007" }, domain.ErrValidation},
		{"zero deposit", func(r *OpenRequest) { r.Deposit = 0 }, domain.ErrValidation},
		{"negative deposit", func(r *OpenRequest) { r.Deposit = -5 }, domain.ErrValidation},
		{"unknown type", func(r *OpenRequest) { r.Type = "premium" }, domain.ErrValidation},
		{"unknown branch", func(r *OpenRequest) { r.Branch = "Hoboken" }, domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService()
			req := openReq("checking")
			tc.mutate(&req)
			_, err := svc.Open(req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, svc.Store().Len())
		})
	}
}

func TestOpenAgeBoundaries(t *testing.T) {
	svc := newService()

	// 18th birthday today: eligible.
	req := openReq("checking")
	req.DOB = "6/1/2006"
	_, err := svc.Open(req)
	assert.NoError(t, err)

	// One day short of 18.
	req = openReq("savings")
	req.FirstName = "Young"
	req.DOB = "6/2/2006"
	_, err = svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpenMoneyMarketMinimum(t *testing.T) {
	svc := newService()

	req := openReq("moneymarket")
	req.Deposit = 1999.99
	_, err := svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req.Deposit = 2000
	account, err := svc.Open(req)
	require.NoError(t, err)
	assert.Equal(t, domain.MoneyMarket, account.Type())
	assert.False(t, account.Loyal())
}

func TestOpenCollege(t *testing.T) {
	svc := newService()

	req := openReq("college")
	req.DOB = "3/3/2004"
	req.CampusCode = "2"
	account, err := svc.Open(req)
	require.NoError(t, err)
	assert.Equal(t, domain.Newark, account.Campus())

	req.FirstName = "Old"
	req.DOB = "5/1/2000" // 24 at the frozen clock
	_, err = svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req.DOB = "3/3/2004"
	req.CampusCode = "9"
	req.FirstName = "Lost"
	_, err = svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOpenCertificate(t *testing.T) {
	svc := newService()

	req := openReq("certificate")
	req.Deposit = 1500
	req.Term = 5
	req.OpenDate = "1/2/2024"
	_, err := svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation, "term must be 3, 6, 9 or 12")

	req.Term = 6
	req.Deposit = 999
	_, err = svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation, "certificate minimum")

	req.Deposit = 1500
	req.OpenDate = "2/30/2024"
	_, err = svc.Open(req)
	assert.ErrorIs(t, err, domain.ErrValidation, "open date must be a real day")

	req.OpenDate = "1/2/2024"
	account, err := svc.Open(req)
	require.NoError(t, err)
	assert.Equal(t, 6, account.Term())
	assert.Equal(t, domain.Date{Year: 2024, Month: 7, Day: 2}, account.MaturityDate())
}

func TestOpenDuplicate(t *testing.T) {
	svc := newService()

	_, err := svc.Open(openReq("checking"))
	require.NoError(t, err)
	_, err = svc.Open(openReq("checking"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Same holder, different type is fine.
	_, err = svc.Open(openReq("savings"))
	assert.NoError(t, err)

	// Certificates only collide on the same term.
	cd := openReq("certificate")
	cd.Deposit = 1500
	cd.Term = 3
	cd.OpenDate = "1/2/2024"
	_, err = svc.Open(cd)
	require.NoError(t, err)
	_, err = svc.Open(cd)
	assert.ErrorIs(t, err, domain.ErrValidation)
	cd.Term = 9
	_, err = svc.Open(cd)
	assert.NoError(t, err)
}

func TestDepositAndWithdraw(t *testing.T) {
	svc := newService()
	account, err := svc.Open(openReq("checking"))
	require.NoError(t, err)
	number := account.Number().String()

	require.NoError(t, svc.Deposit(number, 250))
	assert.InDelta(t, 750, account.Balance(), 1e-9)

	assert.ErrorIs(t, svc.Deposit(number, 0), domain.ErrValidation)
	assert.ErrorIs(t, svc.Deposit("100019999", 10), domain.ErrNotFound)

	result, err := svc.Withdraw(number, 100)
	require.NoError(t, err)
	assert.InDelta(t, 650, result.Account.Balance(), 1e-9)
	assert.False(t, result.BelowMinimum)

	_, err = svc.Withdraw(number, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Withdraw("100019999", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Withdraw(number, 651)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWithdrawFlagsMoneyMarketBelowMinimum(t *testing.T) {
	svc := newService()
	req := openReq("moneymarket")
	req.Deposit = 2100
	account, err := svc.Open(req)
	require.NoError(t, err)

	result, err := svc.Withdraw(account.Number().String(), 200)
	require.NoError(t, err)
	assert.True(t, result.BelowMinimum)
}

func TestCloseByNumber(t *testing.T) {
	svc := newService()
	account, err := svc.Open(openReq("checking"))
	require.NoError(t, err)

	closed, err := svc.CloseByNumber(account.Number().String(), "7/1/2024")
	require.NoError(t, err)
	assert.InDelta(t, 0, closed.Balance(), 1e-9)
	assert.Zero(t, svc.Store().Len())
	assert.Equal(t, 1, svc.Store().Archive().Len())

	_, err = svc.CloseByNumber(account.Number().String(), "7/1/2024")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CloseByNumber("100011111", "2/30/2024")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCloseByHolder(t *testing.T) {
	svc := newService()
	_, err := svc.Open(openReq("checking"))
	require.NoError(t, err)
	_, err = svc.Open(openReq("savings"))
	require.NoError(t, err)

	other := openReq("checking")
	other.FirstName = "Jane"
	_, err = svc.Open(other)
	require.NoError(t, err)

	closed, err := svc.CloseByHolder("john", "DOE", "8/2/1999", "7/1/2024")
	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	assert.Equal(t, 1, svc.Store().Len())
	assert.Equal(t, 2, svc.Store().Archive().Len())

	_, err = svc.CloseByHolder("John", "Doe", "8/2/1999", "7/1/2024")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
