package domain

import "strings"

// Branch identifies a physical branch location. Each branch carries a zip
// code, a 3-digit branch code used in account numbers, and a county used for
// the branch-ordered report.
type Branch int

const (
	Edison Branch = iota
	Bridgewater
	Princeton
	Piscataway
	Warren
)

type branchInfo struct {
	name   string
	zip    string
	code   string
	county string
}

var branchTable = [...]branchInfo{
	Edison:      {"EDISON", "08817", "100", "Middlesex"},
	Bridgewater: {"BRIDGEWATER", "08807", "200", "Somerset"},
	Princeton:   {"PRINCETON", "08542", "300", "Mercer"},
	Piscataway:  {"PISCATAWAY", "08854", "400", "Middlesex"},
	Warren:      {"WARREN", "07057", "500", "Somerset"},
}

// Branches lists every branch in declaration order.
func Branches() []Branch {
	return []Branch{Edison, Bridgewater, Princeton, Piscataway, Warren}
}

// BranchByCode resolves a 3-digit branch code.
func BranchByCode(code string) (Branch, bool) {
	for _, b := range Branches() {
		if branchTable[b].code == code {
			return b, true
		}
	}
	return 0, false
}

// BranchByName resolves a branch by its city name, case-insensitively.
func BranchByName(name string) (Branch, bool) {
	for _, b := range Branches() {
		if strings.EqualFold(branchTable[b].name, name) {
			return b, true
		}
	}
	return 0, false
}

// Code returns the 3-digit branch code.
func (b Branch) Code() string { return branchTable[b].code }

// Zip returns the branch zip code.
func (b Branch) Zip() string { return branchTable[b].zip }

// County returns the county the branch sits in.
func (b Branch) County() string { return branchTable[b].county }

// String returns the upper-case city name, e.g. "EDISON".
func (b Branch) String() string { return branchTable[b].name }
