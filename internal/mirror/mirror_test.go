package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/graph"
)

func testAccount() *domain.Account {
	holder := domain.Profile{FirstName: "John", LastName: "Doe", DOB: domain.Date{Year: 1999, Month: 8, Day: 2}}
	number := domain.AccountNumber{Branch: domain.Edison, Type: domain.Checking, Serial: "1234"}
	return domain.NewChecking(number, holder, 500)
}

func TestNewReturnsNilForNilClient(t *testing.T) {
	assert.Nil(t, New(nil))
}

func TestUpsertAccount(t *testing.T) {
	mem := graph.NewMemoryClient()
	m := New(mem)

	require.NoError(t, m.UpsertAccount(context.Background(), testAccount()))

	writes := mem.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, upsertAccountCypher, writes[0].Cypher)
	assert.Equal(t, "100011234", writes[0].Params["number"])
	assert.Equal(t, "john|doe|8/2/1999", writes[0].Params["holderKey"])
	assert.Equal(t, "EDISON", writes[0].Params["branch"])
	assert.Equal(t, "Middlesex", writes[0].Params["county"])
	assert.Equal(t, 500.0, writes[0].Params["balance"])
}

func TestRecordActivity(t *testing.T) {
	mem := graph.NewMemoryClient()
	m := New(mem)

	activity := domain.Activity{
		Date:     domain.Date{Year: 2024, Month: 6, Day: 1},
		Location: domain.Warren,
		Kind:     domain.Withdrawal,
		Amount:   200,
	}
	number := testAccount().Number()
	require.NoError(t, m.RecordActivity(context.Background(), number, activity))

	writes := mem.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "W", writes[0].Params["kind"])
	assert.Equal(t, "6/1/2024", writes[0].Params["date"])
	assert.Equal(t, "WARREN", writes[0].Params["location"])
}

func TestCloseAccount(t *testing.T) {
	mem := graph.NewMemoryClient()
	m := New(mem)

	number := testAccount().Number()
	require.NoError(t, m.CloseAccount(context.Background(), number, domain.Date{Year: 2024, Month: 7, Day: 1}))

	writes := mem.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, closeAccountCypher, writes[0].Cypher)
	assert.Equal(t, "7/1/2024", writes[0].Params["closedOn"])
}

func TestHoldersAtBranch(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.QueueReadResult(graph.Result{Records: []graph.Record{
		{"firstName": "Amy", "lastName": "Abbot"},
		{"firstName": "John", "lastName": "Doe"},
	}})
	m := New(mem)

	holders, err := m.HoldersAtBranch(context.Background(), domain.Edison)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amy Abbot", "John Doe"}, holders)

	reads := mem.Reads()
	require.Len(t, reads, 1)
	assert.Equal(t, "EDISON", reads[0].Params["branch"])
}

func TestHoldersAtBranchMalformedRecord(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.QueueReadResult(graph.Result{Records: []graph.Record{{"firstName": 7}}})
	m := New(mem)

	_, err := m.HoldersAtBranch(context.Background(), domain.Edison)
	assert.Error(t, err)
}

func TestExportAccounts(t *testing.T) {
	mem := graph.NewMemoryClient()
	m := New(mem)

	account := testAccount()
	account.AddActivity(domain.Activity{
		Date:     domain.Date{Year: 2024, Month: 6, Day: 1},
		Location: domain.Edison,
		Kind:     domain.Deposit,
		Amount:   100,
	})

	require.NoError(t, m.ExportAccounts(context.Background(), []*domain.Account{account}))
	assert.Len(t, mem.Writes(), 2)
}

func TestErrorsCarryContext(t *testing.T) {
	boom := errors.New("boom")
	mem := graph.NewMemoryClient().FailWith(boom)
	m := New(mem)

	err := m.UpsertAccount(context.Background(), testAccount())
	assert.ErrorIs(t, err, boom)
}
