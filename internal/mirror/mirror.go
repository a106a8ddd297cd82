// Package mirror exports holders, accounts, and activities to the optional
// relationship graph. It is strictly an observer of the account store: every
// method is called after the corresponding store mutation has already
// succeeded, and a mirror failure never rolls the store back.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/graph"
)

const upsertAccountCypher = `
MERGE (h:Holder {key: $holderKey})
SET h.firstName = $firstName,
    h.lastName = $lastName,
    h.dob = $dob
MERGE (a:Account {number: $number})
SET a.type = $type,
    a.balance = $balance,
    a.closed = false
MERGE (b:Branch {name: $branch})
SET b.county = $county,
    b.zip = $zip
MERGE (h)-[:OWNS]->(a)
MERGE (a)-[:HELD_AT]->(b)
`

const recordActivityCypher = `
MATCH (a:Account {number: $number})
CREATE (t:Activity {kind: $kind, amount: $amount, date: $date, location: $location})
CREATE (a)-[:POSTED]->(t)
`

const closeAccountCypher = `
MATCH (a:Account {number: $number})
SET a.closed = true,
    a.balance = 0,
    a.closedOn = $closedOn
`

const holdersAtBranchCypher = `
MATCH (h:Holder)-[:OWNS]->(a:Account {closed: false})-[:HELD_AT]->(b:Branch {name: $branch})
RETURN DISTINCT h.firstName AS firstName, h.lastName AS lastName
ORDER BY lastName, firstName
`

// Mirror maps store entities onto graph upserts.
type Mirror struct {
	client graph.Client
}

// New builds a Mirror over the given client. Returns nil for a nil client,
// which callers treat as "mirroring disabled".
func New(client graph.Client) *Mirror {
	if client == nil {
		return nil
	}
	return &Mirror{client: client}
}

// UpsertAccount ensures the holder, account, and branch nodes exist with
// current balances and ownership edges.
func (m *Mirror) UpsertAccount(ctx context.Context, account *domain.Account) error {
	number := account.Number()
	holder := account.Holder()

	params := map[string]any{
		"holderKey": holderKey(holder),
		"firstName": holder.FirstName,
		"lastName":  holder.LastName,
		"dob":       holder.DOB.String(),
		"number":    number.String(),
		"type":      number.Type.String(),
		"balance":   account.Balance(),
		"branch":    number.Branch.String(),
		"county":    number.Branch.County(),
		"zip":       number.Branch.Zip(),
	}

	if _, err := m.client.ExecuteWrite(ctx, upsertAccountCypher, params); err != nil {
		return fmt.Errorf("mirror account %s: %w", number, err)
	}
	return nil
}

// RecordActivity attaches one transaction node to the account.
func (m *Mirror) RecordActivity(ctx context.Context, number domain.AccountNumber, activity domain.Activity) error {
	params := map[string]any{
		"number":   number.String(),
		"kind":     string(rune(activity.Kind)),
		"amount":   activity.Amount,
		"date":     activity.Date.String(),
		"location": activity.Location.String(),
	}

	if _, err := m.client.ExecuteWrite(ctx, recordActivityCypher, params); err != nil {
		return fmt.Errorf("mirror activity on %s: %w", number, err)
	}
	return nil
}

// CloseAccount marks the account node closed with a zero balance.
func (m *Mirror) CloseAccount(ctx context.Context, number domain.AccountNumber, closedOn domain.Date) error {
	params := map[string]any{
		"number":   number.String(),
		"closedOn": closedOn.String(),
	}

	if _, err := m.client.ExecuteWrite(ctx, closeAccountCypher, params); err != nil {
		return fmt.Errorf("mirror close %s: %w", number, err)
	}
	return nil
}

// HoldersAtBranch lists the names of holders with open accounts at a branch.
func (m *Mirror) HoldersAtBranch(ctx context.Context, branch domain.Branch) ([]string, error) {
	res, err := m.client.ExecuteRead(ctx, holdersAtBranchCypher, map[string]any{
		"branch": branch.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("holders at %s: %w", branch, err)
	}

	names := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		first, ok1 := rec["firstName"].(string)
		last, ok2 := rec["lastName"].(string)
		if !ok1 || !ok2 {
			return nil, errors.New("malformed holder record")
		}
		names = append(names, first+" "+last)
	}
	return names, nil
}

// holderKey is the graph identity of a holder: the same case-insensitive
// (name, date of birth) key the store uses for Profile equality.
func holderKey(p domain.Profile) string {
	return strings.ToLower(p.FirstName) + "|" + strings.ToLower(p.LastName) + "|" + p.DOB.String()
}

// ExportAccounts replays an entire store into the graph: every account is
// upserted along with its activity history. Used by batch loads.
func (m *Mirror) ExportAccounts(ctx context.Context, accounts []*domain.Account) error {
	if m == nil {
		return nil
	}
	for _, account := range accounts {
		if err := m.UpsertAccount(ctx, account); err != nil {
			return err
		}
		for _, activity := range account.Activities() {
			if err := m.RecordActivity(ctx, account.Number(), activity); err != nil {
				return err
			}
		}
	}
	return nil
}
