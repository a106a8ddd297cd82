package domain

// AccountType discriminates the closed set of account variants. The 2-digit
// code is the middle field of the canonical 9-character account number.
type AccountType int

const (
	Checking AccountType = iota
	Savings
	MoneyMarket
	CollegeChecking
	CertificateDeposit
)

type accountTypeInfo struct {
	name       string
	reportName string
	code       string
}

var accountTypeTable = [...]accountTypeInfo{
	Checking:           {"CHECKING", "CHECKING", "01"},
	Savings:            {"SAVINGS", "SAVINGS", "02"},
	MoneyMarket:        {"MONEY_MARKET", "MONEY_MARKET", "03"},
	CollegeChecking:    {"COLLEGE_CHECKING", "COLLEGE_CHECKING", "04"},
	CertificateDeposit: {"CD", "CERTIFICATE_DEPOSIT", "05"},
}

// AccountTypes lists every account type in code order.
func AccountTypes() []AccountType {
	return []AccountType{Checking, Savings, MoneyMarket, CollegeChecking, CertificateDeposit}
}

// AccountTypeByCode resolves a 2-digit type code.
func AccountTypeByCode(code string) (AccountType, bool) {
	for _, t := range AccountTypes() {
		if accountTypeTable[t].code == code {
			return t, true
		}
	}
	return 0, false
}

// Code returns the 2-digit type code.
func (t AccountType) Code() string { return accountTypeTable[t].code }

// ReportName returns the group header used by the type-ordered report.
// It differs from String only for certificates.
func (t AccountType) ReportName() string { return accountTypeTable[t].reportName }

// IsChecking reports whether the type carries checking behavior. College
// checking counts: it qualifies its holder's savings accounts for loyalty
// the same way a regular checking account does.
func (t AccountType) IsChecking() bool {
	return t == Checking || t == CollegeChecking
}

// String returns the short enumeration name, e.g. "CD".
func (t AccountType) String() string { return accountTypeTable[t].name }
