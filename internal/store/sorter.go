package store

import (
	"strings"

	"github.com/jmsilva/teller/internal/domain"
)

// SortKey selects the comparator used to order accounts for reports.
type SortKey byte

const (
	// ByBranch orders by county, then branch name.
	ByBranch SortKey = 'B'
	// ByHolder orders by holder profile, then account number.
	ByHolder SortKey = 'H'
	// ByType orders by type code, then account number.
	ByType SortKey = 'T'
)

// sortAccounts selection-sorts the slice in place under the given key.
// Ties beyond the stated secondary key land wherever the swap pattern puts
// them; callers must not rely on tie order.
func sortAccounts(accounts []*domain.Account, key SortKey) {
	n := len(accounts)
	for i := 0; i < n-1; i++ {
		min := i
		for j := i + 1; j < n; j++ {
			if accountLess(accounts[j], accounts[min], key) {
				min = j
			}
		}
		if min != i {
			accounts[i], accounts[min] = accounts[min], accounts[i]
		}
	}
}

func accountLess(a, b *domain.Account, key SortKey) bool {
	switch key {
	case ByBranch:
		ab, bb := a.Number().Branch, b.Number().Branch
		if cmp := strings.Compare(ab.County(), bb.County()); cmp != 0 {
			return cmp < 0
		}
		return strings.Compare(ab.String(), bb.String()) < 0
	case ByHolder:
		if cmp := a.Holder().Compare(b.Holder()); cmp != 0 {
			return cmp < 0
		}
		return a.Number().Compare(b.Number()) < 0
	case ByType:
		if cmp := strings.Compare(a.Type().Code(), b.Type().Code()); cmp != 0 {
			return cmp < 0
		}
		return a.Number().Compare(b.Number()) < 0
	}
	return false
}
