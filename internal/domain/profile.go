package domain

import (
	"fmt"
	"strings"
)

// Profile identifies an account holder. Name matching is case-insensitive,
// and the (name, date of birth) pair is the identity key for "same holder"
// across the whole store: duplicate detection and loyalty aggregation both
// hang off Profile equality.
type Profile struct {
	FirstName string
	LastName  string
	DOB       Date
}

// Equal reports whether two profiles name the same holder.
func (p Profile) Equal(other Profile) bool {
	return strings.EqualFold(p.FirstName, other.FirstName) &&
		strings.EqualFold(p.LastName, other.LastName) &&
		p.DOB.Equal(other.DOB)
}

// Compare orders profiles by last name, first name (case-insensitive), then
// date of birth.
func (p Profile) Compare(other Profile) int {
	if cmp := compareFold(p.LastName, other.LastName); cmp != 0 {
		return cmp
	}
	if cmp := compareFold(p.FirstName, other.FirstName); cmp != 0 {
		return cmp
	}
	return p.DOB.Compare(other.DOB)
}

// String renders "First Last M/D/Y".
func (p Profile) String() string {
	return fmt.Sprintf("%s %s %s", p.FirstName, p.LastName, p.DOB)
}

func compareFold(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
