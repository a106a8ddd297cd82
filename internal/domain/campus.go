package domain

// Campus identifies the university campus attached to a college checking
// account. Codes: 1 = New Brunswick, 2 = Newark, 3 = Camden.
type Campus int

const (
	NewBrunswick Campus = iota
	Newark
	Camden
)

type campusInfo struct {
	name    string
	display string
	code    string
}

var campusTable = [...]campusInfo{
	NewBrunswick: {"NEW_BRUNSWICK", "New Brunswick", "1"},
	Newark:       {"NEWARK", "Newark", "2"},
	Camden:       {"CAMDEN", "Camden", "3"},
}

// CampusByCode resolves a campus code.
func CampusByCode(code string) (Campus, bool) {
	for _, c := range []Campus{NewBrunswick, Newark, Camden} {
		if campusTable[c].code == code {
			return c, true
		}
	}
	return 0, false
}

// Code returns the single-digit campus code.
func (c Campus) Code() string { return campusTable[c].code }

// Name returns the upper-case enumeration name, e.g. "NEW_BRUNSWICK".
func (c Campus) Name() string { return campusTable[c].name }

// String returns the display name, e.g. "New Brunswick".
func (c Campus) String() string { return campusTable[c].display }
