package store

import (
	"strings"

	"github.com/jmsilva/teller/internal/domain"
)

// NoClosedAccounts is the archive report body when nothing has been closed.
const NoClosedAccounts = "No closed accounts."

type archiveEntry struct {
	account *domain.Account
	closed  domain.Date
}

// Archive is the append-only record of closed accounts. Once the store moves
// an account here it relinquishes it; the archive is the account's sole
// owner. Entries render most recently closed first.
type Archive struct {
	entries []archiveEntry
}

// Add appends a closed account with its closure date. O(1).
func (ar *Archive) Add(account *domain.Account, closed domain.Date) {
	ar.entries = append(ar.entries, archiveEntry{account: account, closed: closed})
}

// Len returns the number of archived accounts.
func (ar *Archive) Len() int { return len(ar.entries) }

// Render produces one line per archived account, newest first.
func (ar *Archive) Render() string {
	if len(ar.entries) == 0 {
		return NoClosedAccounts
	}

	var b strings.Builder
	for i := len(ar.entries) - 1; i >= 0; i-- {
		entry := ar.entries[i]
		b.WriteString(entry.account.String())
		b.WriteString(" Closed[")
		b.WriteString(entry.closed.String())
		b.WriteString("]\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
