package store

import (
	"github.com/jmsilva/teller/internal/domain"
)

// AccountStore is the in-memory collection of open accounts. It owns every
// open account and exactly one Archive for the closed ones. The store is
// single-writer, single-reader: none of its operations are safe for
// concurrent use.
type AccountStore struct {
	accounts []*domain.Account
	archive  Archive
	serials  *domain.SerialSource
}

// New creates an empty store. A nil serial source gets the default seed.
func New(serials *domain.SerialSource) *AccountStore {
	if serials == nil {
		serials = domain.NewSerialSource(domain.DefaultSerialSeed)
	}
	return &AccountStore{serials: serials}
}

// Serials exposes the store's serial source for account-number generation.
func (s *AccountStore) Serials() *domain.SerialSource { return s.serials }

// Archive exposes the closed-account archive.
func (s *AccountStore) Archive() *Archive { return &s.archive }

// Len returns the number of open accounts.
func (s *AccountStore) Len() int { return len(s.accounts) }

// Accounts returns the open accounts in their current iteration order.
// The slice is a copy; the accounts are not.
func (s *AccountStore) Accounts() []*domain.Account {
	out := make([]*domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Add appends an account to the open set. No duplicate check happens here;
// callers pre-check with IsDuplicate.
func (s *AccountStore) Add(account *domain.Account) {
	s.accounts = append(s.accounts, account)
}

// IsDuplicate reports whether the holder already has an open account of the
// given type. Certificates are the exception: a holder may hold several, and
// only a matching term counts as a duplicate.
func (s *AccountStore) IsDuplicate(holder domain.Profile, accountType domain.AccountType, cdTerm int) bool {
	for _, account := range s.accounts {
		if !account.Holder().Equal(holder) || account.Type() != accountType {
			continue
		}
		if accountType == domain.CertificateDeposit {
			if account.Term() == cdTerm {
				return true
			}
			continue
		}
		return true
	}
	return false
}

// FindByNumber returns the open account with the given number, or nil.
func (s *AccountStore) FindByNumber(number domain.AccountNumber) *domain.Account {
	for _, account := range s.accounts {
		if account.Number().Equal(number) {
			return account
		}
	}
	return nil
}

// Deposit resolves the 9-character number text and applies the deposit.
// Returns false when the text does not decode or no open account matches.
// Amount positivity is the caller's responsibility.
func (s *AccountStore) Deposit(numberText string, amount float64) bool {
	number, err := domain.ParseAccountNumber(numberText)
	if err != nil {
		return false
	}
	account := s.FindByNumber(number)
	if account == nil {
		return false
	}
	account.Deposit(amount)
	s.UpdateLoyalty(account.Holder())
	return true
}

// Withdraw resolves the number text and applies the withdrawal. Returns
// false, without mutating, when the text does not decode, no account
// matches, or the balance is under the requested amount.
func (s *AccountStore) Withdraw(numberText string, amount float64) bool {
	number, err := domain.ParseAccountNumber(numberText)
	if err != nil {
		return false
	}
	account := s.FindByNumber(number)
	if account == nil {
		return false
	}
	if account.Balance() < amount {
		return false
	}
	account.Withdraw(amount)
	s.UpdateLoyalty(account.Holder())
	return true
}

// Remove drops the first account matching acct by type+holder equality from
// the open set. Removal swaps the last element into the vacated slot, so
// iteration order is not preserved.
func (s *AccountStore) Remove(acct *domain.Account) {
	idx := s.indexOf(acct)
	if idx < 0 {
		return
	}
	s.removeAt(idx)
}

// Close removes the matching account, zeroes its balance, and moves it into
// the archive with the closing date, then recomputes loyalty for the holder
// across the remaining accounts.
func (s *AccountStore) Close(acct *domain.Account, closingDate domain.Date) {
	idx := s.indexOf(acct)
	if idx < 0 {
		return
	}
	closed := s.accounts[idx]
	closed.SetBalance(0)
	s.archive.Add(closed, closingDate)
	s.removeAt(idx)
	s.UpdateLoyalty(closed.Holder())
}

func (s *AccountStore) indexOf(acct *domain.Account) int {
	for i, account := range s.accounts {
		if account.Equal(acct) {
			return i
		}
	}
	return -1
}

func (s *AccountStore) removeAt(idx int) {
	last := len(s.accounts) - 1
	s.accounts[idx] = s.accounts[last]
	s.accounts[last] = nil
	s.accounts = s.accounts[:last]
}

// UpdateLoyalty recomputes loyalty for every account the holder owns. It is
// a full, idempotent recomputation: savings accounts are loyal while the
// holder also has a checking account (college checking counts), and money
// market accounts are loyal while the holder has a money market balance at
// or above the qualifying minimum. Certificates never change.
func (s *AccountStore) UpdateLoyalty(holder domain.Profile) {
	hasChecking := false
	hasQualifyingMoneyMarket := false
	for _, account := range s.accounts {
		if !account.Holder().Equal(holder) {
			continue
		}
		if account.Type().IsChecking() {
			hasChecking = true
		}
		if account.Type() == domain.MoneyMarket && account.Balance() >= domain.MoneyMarketLoyaltyMinimum {
			hasQualifyingMoneyMarket = true
		}
	}

	for _, account := range s.accounts {
		if !account.Holder().Equal(holder) {
			continue
		}
		switch account.Type() {
		case domain.Savings:
			account.SetLoyal(hasChecking)
		case domain.MoneyMarket:
			account.SetLoyal(hasQualifyingMoneyMarket)
		}
	}
}
