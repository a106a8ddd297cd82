package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsilva/teller/internal/batch"
	"github.com/jmsilva/teller/internal/domain"
	"github.com/jmsilva/teller/internal/store"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := Config{NumAccounts: 50, NumActivities: 100, Seed: 7, SerialSeed: 7}

	a, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	b, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGeneratedAccountsLoadCleanly(t *testing.T) {
	cfg := Config{NumAccounts: 50, NumActivities: 200, Seed: 7, SerialSeed: 123, BadNumberChance: 0}

	dataset, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, dataset.Accounts, 50)

	s := store.New(domain.NewSerialSource(123))
	assert.Equal(t, 50, batch.LoadAccounts(s, dataset.Accounts))
	assert.Equal(t, 50, s.Len())
}

func TestGeneratedActivityNumbersResolve(t *testing.T) {
	// BadNumberChance forced to zero: every activity must reference a real
	// account when the store shares the generator's serial seed.
	cfg := Config{NumAccounts: 30, NumActivities: 100, Seed: 11, SerialSeed: 55, BadNumberChance: 0}

	dataset, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	s := store.New(domain.NewSerialSource(55))
	require.Equal(t, 30, batch.LoadAccounts(s, dataset.Accounts))

	for _, line := range dataset.Activities {
		numberText := strings.Split(line, ",")[1]
		number, err := domain.ParseAccountNumber(numberText)
		require.NoError(t, err, line)
		assert.NotNil(t, s.FindByNumber(number), line)
	}
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
