package store

import (
	"fmt"
	"strings"

	"github.com/jmsilva/teller/internal/domain"
)

// NoAccounts is the report body when the open set is empty.
const NoAccounts = "No accounts available."

const endOfList = "*end of list."

// ReportByBranch sorts the open accounts by branch location and renders them
// grouped by county. Sorting happens in place; loyalty is recomputed per
// account before formatting.
func (s *AccountStore) ReportByBranch() string {
	if len(s.accounts) == 0 {
		return NoAccounts
	}

	sortAccounts(s.accounts, ByBranch)

	var b strings.Builder
	b.WriteString("*List of accounts ordered by branch location (county, city).\n")

	currentCounty := ""
	for _, account := range s.accounts {
		s.UpdateLoyalty(account.Holder())

		county := account.Number().Branch.County()
		if county != currentCounty {
			if currentCounty != "" {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "County: %s\n", county)
			currentCounty = county
		}
		b.WriteString(reportLine(account))
		b.WriteByte('\n')
	}

	b.WriteString(endOfList)
	return b.String()
}

// ReportByType sorts the open accounts by account type and number and
// renders them grouped by type.
func (s *AccountStore) ReportByType() string {
	if len(s.accounts) == 0 {
		return NoAccounts
	}

	sortAccounts(s.accounts, ByType)

	var b strings.Builder
	b.WriteString("*List of accounts ordered by account type and number.\n")

	currentType := ""
	for _, account := range s.accounts {
		s.UpdateLoyalty(account.Holder())

		typeName := account.Type().ReportName()
		if typeName != currentType {
			if currentType != "" {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "Account Type: %s\n", typeName)
			currentType = typeName
		}
		b.WriteString(reportLine(account))
		b.WriteByte('\n')
	}

	b.WriteString(endOfList)
	return b.String()
}

// ReportByHolder sorts the open accounts by holder and number and renders
// them as a flat list.
func (s *AccountStore) ReportByHolder() string {
	if len(s.accounts) == 0 {
		return NoAccounts
	}

	sortAccounts(s.accounts, ByHolder)

	var b strings.Builder
	b.WriteString("*List of accounts ordered by account holder and number.\n")

	for _, account := range s.accounts {
		s.UpdateLoyalty(account.Holder())
		b.WriteString(reportLine(account))
		b.WriteByte('\n')
	}

	b.WriteString(endOfList)
	return b.String()
}

// ReportStatements renders every open account's statement in iteration
// order. Statement generation applies each account's interest and fee to its
// stored balance.
func (s *AccountStore) ReportStatements() string {
	if len(s.accounts) == 0 {
		return NoAccounts
	}

	var b strings.Builder
	for _, account := range s.accounts {
		b.WriteString(account.Statement())
		b.WriteByte('\n')
	}
	return b.String()
}

// ReportArchive renders the closed-account archive, newest first.
func (s *AccountStore) ReportArchive() string {
	return s.archive.Render()
}

// reportLine renders the single-line report form of an account, with the
// variant-specific trailing fields.
func reportLine(a *domain.Account) string {
	number := a.Number()
	base := fmt.Sprintf("Account#[%s] Holder[%s] Balance[$%s] Branch[%s]",
		number, a.Holder(), domain.FormatCurrency(a.Balance()), number.Branch)

	switch a.Type() {
	case domain.MoneyMarket:
		loyal := ""
		if a.Loyal() {
			loyal = " [LOYAL]"
		}
		return fmt.Sprintf("%s%s Withdrawal[%d]", base, loyal, a.Withdrawals())
	case domain.CertificateDeposit:
		return fmt.Sprintf("%s Term[%d] Date opened[%s] Maturity date[%s]",
			base, a.Term(), a.OpenDate(), a.MaturityDate())
	case domain.CollegeChecking:
		return fmt.Sprintf("%s Campus[%s]", base, a.Campus().Name())
	case domain.Savings:
		if a.Loyal() {
			return base + " [LOYAL]"
		}
	}
	return base
}

// Snapshot renders the open accounts in the batch loader's comma-separated
// line format, so the store can be reloaded from its own output. Activity
// history and money market withdrawal counts are not part of the snapshot;
// loyalty is rederived on load.
func (s *AccountStore) Snapshot() string {
	var b strings.Builder
	for _, account := range s.accounts {
		b.WriteString(snapshotLine(account))
		b.WriteByte('\n')
	}
	return b.String()
}

func snapshotLine(a *domain.Account) string {
	holder := a.Holder()
	base := fmt.Sprintf("%s,%s,%s,%s,%s,%.2f",
		snapshotKeyword(a.Type()), a.Number().Branch, holder.FirstName, holder.LastName, holder.DOB, a.Balance())

	switch a.Type() {
	case domain.CollegeChecking:
		return fmt.Sprintf("%s,%s", base, a.Campus().Code())
	case domain.CertificateDeposit:
		return fmt.Sprintf("%s,%d,%s", base, a.Term(), a.OpenDate())
	}
	return base
}

func snapshotKeyword(t domain.AccountType) string {
	switch t {
	case domain.Savings:
		return "savings"
	case domain.MoneyMarket:
		return "moneymarket"
	case domain.CollegeChecking:
		return "college"
	case domain.CertificateDeposit:
		return "certificate"
	}
	return "checking"
}
