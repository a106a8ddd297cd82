// Package teller layers the pre-validation contract over the store's
// mutation primitives: age and eligibility checks, opening minimums,
// duplicate detection, and close-by-number / close-by-holder flows. The
// store itself validates very little; everything interactive goes through
// here.
package teller

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/logging"
	"github.com/jmsilva/teller/internal/store"
)

// Opening minimums and eligibility bounds.
const (
	moneyMarketMinimum = 2000.0
	certificateMinimum = 1000.0
	adultAge           = 18
	collegeAgeLimit    = 24
)

// Service orchestrates account lifecycle operations against the store.
type Service struct {
	store  *store.AccountStore
	logger *slog.Logger
	nowFn  func() time.Time
}

// New constructs a Service. A nil logger disables logging.
func New(st *store.AccountStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		store:  st,
		logger: logger,
		nowFn:  time.Now,
	}
}

// WithClock overrides the clock used for age and future-date checks.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// Store exposes the underlying account store.
func (s *Service) Store() *store.AccountStore { return s.store }

// OpenRequest carries the fields of an account-open request. Term and
// OpenDate apply only to certificates, CampusCode only to college checking.
type OpenRequest struct {
	Type       string
	Branch     string
	FirstName  string
	LastName   string
	DOB        string
	Deposit    float64
	CampusCode string
	Term       int
	OpenDate   string
}

// Open validates the request and, when everything passes, adds a new account
// with a freshly generated number and recomputes the holder's loyalty.
func (s *Service) Open(req OpenRequest) (*domain.Account, error) {
	dob, err := domain.ParseDate(req.DOB)
	if err != nil {
		return nil, err
	}
	if !dob.IsValid() {
		return nil, fmt.Errorf("%w: DOB %s is not a valid calendar date", domain.ErrValidation, req.DOB)
	}

	today := domain.DateOf(s.nowFn())
	if !dob.Before(today) {
		return nil, fmt.Errorf("%w: DOB %s cannot be today or a future day", domain.ErrValidation, req.DOB)
	}
	if ageOn(dob, today) < adultAge {
		return nil, fmt.Errorf("%w: not eligible to open, %s under %d", domain.ErrValidation, req.DOB, adultAge)
	}

	if req.Deposit <= 0 {
		return nil, fmt.Errorf("%w: initial deposit cannot be 0 or negative", domain.ErrValidation)
	}

	holder := domain.Profile{FirstName: req.FirstName, LastName: req.LastName, DOB: dob}

	var (
		accountType domain.AccountType
		campus      domain.Campus
		opened      domain.Date
	)
	switch strings.ToLower(req.Type) {
	case "checking":
		accountType = domain.Checking
	case "savings":
		accountType = domain.Savings
	case "moneymarket":
		accountType = domain.MoneyMarket
		if req.Deposit < moneyMarketMinimum {
			return nil, fmt.Errorf("%w: minimum of $2,000 to open a Money Market account", domain.ErrValidation)
		}
	case "college":
		var ok bool
		campus, ok = domain.CampusByCode(req.CampusCode)
		if !ok {
			return nil, fmt.Errorf("%w: invalid campus code %q", domain.ErrValidation, req.CampusCode)
		}
		if ageOn(dob, today) >= collegeAgeLimit {
			return nil, fmt.Errorf("%w: not eligible to open, %s over %d", domain.ErrValidation, req.DOB, collegeAgeLimit)
		}
		accountType = domain.CollegeChecking
	case "certificate":
		if !domain.ValidCDTerm(req.Term) {
			return nil, fmt.Errorf("%w: %d is not a valid term", domain.ErrValidation, req.Term)
		}
		opened, err = domain.ParseDate(req.OpenDate)
		if err != nil {
			return nil, err
		}
		if !opened.IsValid() {
			return nil, fmt.Errorf("%w: invalid open date %s", domain.ErrValidation, req.OpenDate)
		}
		if req.Deposit < certificateMinimum {
			return nil, fmt.Errorf("%w: minimum of $1,000 to open a Certificate Deposit account", domain.ErrValidation)
		}
		accountType = domain.CertificateDeposit
	default:
		return nil, fmt.Errorf("%w: %s - invalid account type", domain.ErrValidation, req.Type)
	}

	branch, ok := domain.BranchByName(req.Branch)
	if !ok {
		return nil, fmt.Errorf("%w: %s - invalid branch", domain.ErrValidation, strings.ToLower(req.Branch))
	}

	if s.store.IsDuplicate(holder, accountType, req.Term) {
		if accountType == domain.CertificateDeposit {
			return nil, fmt.Errorf("%w: %s already has a CD account with term %d months",
				domain.ErrValidation, holder.FirstName, req.Term)
		}
		return nil, fmt.Errorf("%w: %s %s already has a %s account",
			domain.ErrValidation, holder.FirstName, holder.LastName, accountType)
	}

	number := domain.NewAccountNumber(branch, accountType, s.store.Serials())

	var account *domain.Account
	switch accountType {
	case domain.Checking:
		account = domain.NewChecking(number, holder, req.Deposit)
	case domain.Savings:
		account = domain.NewSavings(number, holder, req.Deposit)
	case domain.MoneyMarket:
		account = domain.NewMoneyMarket(number, holder, req.Deposit)
	case domain.CollegeChecking:
		account = domain.NewCollegeChecking(number, holder, req.Deposit, campus)
	case domain.CertificateDeposit:
		account = domain.NewCertificateDeposit(number, holder, req.Deposit, req.Term, opened)
	}

	s.store.Add(account)
	s.store.UpdateLoyalty(holder)

	s.logger.Info("account opened",
		"number", number.String(),
		"type", accountType.String(),
		"branch", branch.String(),
	)
	return account, nil
}

// Deposit validates the amount and applies it to the named account.
func (s *Service) Deposit(numberText string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount cannot be 0 or negative", domain.ErrValidation)
	}
	if !s.store.Deposit(numberText, amount) {
		return fmt.Errorf("%w: %s does not exist", domain.ErrNotFound, numberText)
	}
	return nil
}

// WithdrawResult reports a successful withdrawal. BelowMinimum is set when a
// money market account was left under its fee-waiver threshold.
type WithdrawResult struct {
	Account      *domain.Account
	Amount       float64
	BelowMinimum bool
}

// Withdraw validates the amount, resolves the account, and withdraws,
// distinguishing unknown accounts from insufficient funds.
func (s *Service) Withdraw(numberText string, amount float64) (WithdrawResult, error) {
	if amount <= 0 {
		return WithdrawResult{}, fmt.Errorf("%w: withdrawal amount cannot be 0 or negative", domain.ErrValidation)
	}

	number, err := domain.ParseAccountNumber(numberText)
	if err != nil {
		return WithdrawResult{}, fmt.Errorf("%w: %s does not exist", domain.ErrNotFound, numberText)
	}
	account := s.store.FindByNumber(number)
	if account == nil {
		return WithdrawResult{}, fmt.Errorf("%w: %s does not exist", domain.ErrNotFound, numberText)
	}
	if account.Balance() < amount {
		return WithdrawResult{}, fmt.Errorf("%w: withdrawing $%s from %s",
			domain.ErrInsufficientFunds, domain.FormatCurrency(amount), numberText)
	}

	account.Withdraw(amount)
	s.store.UpdateLoyalty(account.Holder())

	return WithdrawResult{
		Account:      account,
		Amount:       amount,
		BelowMinimum: account.Type() == domain.MoneyMarket && account.Balance() < moneyMarketMinimum,
	}, nil
}

// CloseByNumber archives the single account with the given number.
func (s *Service) CloseByNumber(numberText, closingDateText string) (*domain.Account, error) {
	closingDate, err := s.parseClosingDate(closingDateText)
	if err != nil {
		return nil, err
	}

	number, err := domain.ParseAccountNumber(numberText)
	if err != nil {
		return nil, err
	}
	account := s.store.FindByNumber(number)
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, numberText)
	}

	s.store.Close(account, closingDate)
	s.logger.Info("account closed", "number", numberText, "date", closingDate.String())
	return account, nil
}

// CloseByHolder archives every account the holder owns and returns how many
// were closed.
func (s *Service) CloseByHolder(first, last, dobText, closingDateText string) (int, error) {
	closingDate, err := s.parseClosingDate(closingDateText)
	if err != nil {
		return 0, err
	}

	dob, err := domain.ParseDate(dobText)
	if err != nil {
		return 0, err
	}
	if !dob.IsValid() {
		return 0, fmt.Errorf("%w: invalid DOB %s", domain.ErrValidation, dobText)
	}
	holder := domain.Profile{FirstName: first, LastName: last, DOB: dob}

	closed := 0
	for {
		var match *domain.Account
		for _, account := range s.store.Accounts() {
			if account.Holder().Equal(holder) {
				match = account
				break
			}
		}
		if match == nil {
			break
		}
		s.store.Close(match, closingDate)
		closed++
	}

	if closed == 0 {
		return 0, fmt.Errorf("%w: %s does not have any accounts in the database", domain.ErrNotFound, holder)
	}
	s.logger.Info("holder accounts closed", "holder", holder.String(), "count", closed)
	return closed, nil
}

func (s *Service) parseClosingDate(text string) (domain.Date, error) {
	date, err := domain.ParseDate(text)
	if err != nil {
		return domain.Date{}, err
	}
	if !date.IsValid() {
		return domain.Date{}, fmt.Errorf("%w: invalid closing date %s", domain.ErrValidation, text)
	}
	return date, nil
}

// ageOn computes whole years of age at the given date.
func ageOn(dob, on domain.Date) int {
	age := on.Year - dob.Year
	if on.Month < dob.Month || (on.Month == dob.Month && on.Day < dob.Day) {
		age--
	}
	return age
}
