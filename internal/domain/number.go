package domain

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultSerialSeed seeds the serial generator unless configured otherwise.
// The fixed seed keeps generated account numbers deterministic run to run.
const DefaultSerialSeed = 9999

const serialBound = 9999

// SerialSource draws 4-digit account serials from a seeded pseudo-random
// sequence. The store owns one source; there is no process-wide shared
// generator. Serials are not checked for uniqueness across branch/type
// combinations, matching the original numbering scheme.
type SerialSource struct {
	rng *rand.Rand
}

// NewSerialSource creates a source with the given seed.
func NewSerialSource(seed int64) *SerialSource {
	return &SerialSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next zero-padded 4-digit serial.
func (s *SerialSource) Next() string {
	return fmt.Sprintf("%04d", s.rng.Intn(serialBound))
}

// AccountNumber is the branch+type+serial encoding of an account identity.
// Its canonical 9-character string form is the sole key used for lookup,
// equality, and ordering.
type AccountNumber struct {
	Branch Branch
	Type   AccountType
	Serial string
}

// NewAccountNumber draws the next serial from src for the given branch and
// account type.
func NewAccountNumber(branch Branch, accountType AccountType, src *SerialSource) AccountNumber {
	return AccountNumber{Branch: branch, Type: accountType, Serial: src.Next()}
}

// ParseAccountNumber decodes the canonical 9-character form: a known 3-digit
// branch code, a known 2-digit type code, and a 4-digit serial.
func ParseAccountNumber(text string) (AccountNumber, error) {
	text = strings.TrimSpace(text)
	if len(text) != 9 {
		return AccountNumber{}, fmt.Errorf("%w: account number %q must be 9 characters", ErrFormat, text)
	}

	branch, ok := BranchByCode(text[:3])
	if !ok {
		return AccountNumber{}, fmt.Errorf("%w: unknown branch code %q", ErrFormat, text[:3])
	}
	accountType, ok := AccountTypeByCode(text[3:5])
	if !ok {
		return AccountNumber{}, fmt.Errorf("%w: unknown account type code %q", ErrFormat, text[3:5])
	}

	serial := text[5:]
	for _, r := range serial {
		if r < '0' || r > '9' {
			return AccountNumber{}, fmt.Errorf("%w: serial %q is not numeric", ErrFormat, serial)
		}
	}

	return AccountNumber{Branch: branch, Type: accountType, Serial: serial}, nil
}

// Equal compares canonical string forms.
func (n AccountNumber) Equal(other AccountNumber) bool {
	return n.String() == other.String()
}

// Compare orders account numbers by their canonical string forms.
func (n AccountNumber) Compare(other AccountNumber) int {
	return strings.Compare(n.String(), other.String())
}

// String returns the defining 9-character form: branch code, type code,
// serial.
func (n AccountNumber) String() string {
	return n.Branch.Code() + n.Type.Code() + n.Serial
}
