// Package batch parses line-oriented input files into store operations:
// comma-separated account-open lines and deposit/withdraw activity lines.
// Loaders never abort a whole batch on a bad line; they skip and continue,
// matching the store's validation contract.
package batch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/store"
)

// LoadAccounts parses account-open lines and adds every valid one to the
// store with a freshly generated account number. Lines with too few fields,
// unparseable or non-finite amounts, bad dates, unknown branches, types, or
// campuses, or certificates without a positive term and open date are
// skipped. There is no
// duplicate check during bulk load. Returns the number of accounts added.
func LoadAccounts(s *store.AccountStore, lines []string) int {
	added := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if loadAccountLine(s, line) {
			added++
		}
	}
	return added
}

func loadAccountLine(s *store.AccountStore, line string) bool {
	fields := splitFields(line)
	if len(fields) < 6 {
		return false
	}

	kind := strings.ToLower(fields[0])
	branch, ok := domain.BranchByName(fields[1])
	if !ok {
		return false
	}
	first, last := fields[2], fields[3]

	dob, err := domain.ParseDate(fields[4])
	if err != nil || !dob.IsValid() {
		return false
	}

	deposit, err := parseAmount(fields[5])
	if err != nil {
		return false
	}

	holder := domain.Profile{FirstName: first, LastName: last, DOB: dob}
	serials := s.Serials()

	var account *domain.Account
	switch kind {
	case "checking":
		number := domain.NewAccountNumber(branch, domain.Checking, serials)
		account = domain.NewChecking(number, holder, deposit)
	case "savings":
		number := domain.NewAccountNumber(branch, domain.Savings, serials)
		account = domain.NewSavings(number, holder, deposit)
	case "moneymarket":
		number := domain.NewAccountNumber(branch, domain.MoneyMarket, serials)
		account = domain.NewMoneyMarket(number, holder, deposit)
	case "college":
		if len(fields) < 7 {
			return false
		}
		campus, ok := domain.CampusByCode(fields[6])
		if !ok {
			return false
		}
		number := domain.NewAccountNumber(branch, domain.CollegeChecking, serials)
		account = domain.NewCollegeChecking(number, holder, deposit, campus)
	case "certificate":
		if len(fields) < 8 {
			return false
		}
		term, err := strconv.Atoi(fields[6])
		if err != nil || term <= 0 {
			return false
		}
		opened, err := domain.ParseDate(fields[7])
		if err != nil || !opened.IsValid() {
			return false
		}
		number := domain.NewAccountNumber(branch, domain.CertificateDeposit, serials)
		account = domain.NewCertificateDeposit(number, holder, deposit, term, opened)
	default:
		return false
	}

	s.Add(account)
	s.UpdateLoyalty(holder)
	return true
}

// ProcessActivities routes D/W activity lines to the store's deposit and
// withdraw operations. Every input line yields a human-readable outcome
// line; malformed rows and unparseable amounts become messages rather than
// errors, and the result is framed by leading and trailing banner lines
// naming the source.
func ProcessActivities(s *store.AccountStore, sourceName string, lines []string) []string {
	messages := []string{fmt.Sprintf("Processing %q...", sourceName)}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitFields(line)
		if len(fields) < 5 {
			messages = append(messages, "Invalid transaction format: "+line)
			continue
		}

		kind := fields[0]
		numberText := fields[1]
		date := fields[2]
		location := strings.ToUpper(fields[3])

		amount, err := parseAmount(fields[4])
		if err != nil {
			messages = append(messages, "Invalid amount format: "+fields[4])
			continue
		}

		success := false
		verb := "withdrawal"
		switch kind {
		case "D":
			success = s.Deposit(numberText, amount)
			verb = "deposit"
		case "W":
			success = s.Withdraw(numberText, amount)
		}

		if success {
			messages = append(messages, fmt.Sprintf("%s::%s::%s[ATM]::%s::$%s",
				numberText, date, location, verb, domain.FormatCurrency(amount)))
		} else {
			messages = append(messages, "Transaction failed for account: "+numberText)
		}
	}

	messages = append(messages, fmt.Sprintf("Account activities in %q processed.", sourceName))
	return messages
}

// parseAmount parses a monetary field. strconv.ParseFloat accepts "NaN" and
// "Inf", which are meaningless as amounts and break currency rendering, so
// non-finite values count as unparseable here.
func parseAmount(text string) (float64, error) {
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("non-finite amount %q", text)
	}
	return amount, nil
}

// splitFields tokenizes a comma-separated line, dropping empty fields the
// way a delimiter-run tokenizer would.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	fields := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}
