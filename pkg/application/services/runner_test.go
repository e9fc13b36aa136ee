package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanu/foodlink/pkg/domain/entities"
)

func TestCatalogNames(t *testing.T) {
	catalog := NewCatalog()
	names := catalog.Names()

	assert.Len(t, names, 22)
	assert.Equal(t, "table_counts", names[0])
	assert.Equal(t, "unclaimed_providers", names[len(names)-1])

	seen := make(map[string]bool)
	for _, name := range names {
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
		_, ok := catalog.Entry(name)
		assert.True(t, ok, "name %s has no entry", name)
	}
}

func TestRunUnknownQuery(t *testing.T) {
	s := newFixtureStore(t)
	runner := NewRunner(s, NewCatalog())

	_, err := runner.Run("no_such_query", Params{})
	require.Error(t, err)
	var uerr *UnknownQueryError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "no_such_query", uerr.Name)
}

func TestRunFillsResultMetadata(t *testing.T) {
	s := newFixtureStore(t)
	runner := NewRunner(s, NewCatalog())

	result, err := runner.Run("table_counts", Params{})
	require.NoError(t, err)
	assert.Equal(t, "table_counts", result.Query)
	assert.Equal(t, []string{"Table", "Count"}, result.Columns)
	assert.Equal(t, 4, result.RowCount)
	assert.Len(t, result.Rows, 4)
	assert.GreaterOrEqual(t, result.Elapsed.Nanoseconds(), int64(0))
}

func TestRunParamsDefaults(t *testing.T) {
	s := newFixtureStore(t)
	runner := NewRunner(s, NewCatalog())

	// zero Limit falls back to the default cap
	result, err := runner.Run("top_receivers_by_claims", Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowCount)

	capped, err := runner.Run("top_receivers_by_claims", Params{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, capped.RowCount)

	window, err := runner.Run("expiring_within", Params{Days: 3, Now: fixtureNow})
	require.NoError(t, err)
	assert.Equal(t, 3, window.RowCount)
}

func TestRunCityParam(t *testing.T) {
	s := newFixtureStore(t)
	runner := NewRunner(s, NewCatalog())

	result, err := runner.Run("providers_in_city", Params{City: "Shelbyville"})
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, "Fresh Basket", result.Rows[0][1])
}

func TestRunAllCoversCatalog(t *testing.T) {
	s := newFixtureStore(t)
	runner := NewRunner(s, NewCatalog())

	outcomes := runner.RunAll(Params{Now: fixtureNow})
	require.Len(t, outcomes, 22)
	for name, outcome := range outcomes {
		require.NoError(t, outcome.Err, "query %s", name)
		require.NotNil(t, outcome.Result, "query %s", name)
		assert.Equal(t, name, outcome.Result.Query)
	}
}

// brokenStore fails every read so runner error isolation can be tested
type brokenStore struct{}

var errBroken = errors.New("store unavailable")

func (brokenStore) Providers() ([]*entities.Provider, error)       { return nil, errBroken }
func (brokenStore) Receivers() ([]*entities.Receiver, error)       { return nil, errBroken }
func (brokenStore) FoodListings() ([]*entities.FoodListing, error) { return nil, errBroken }
func (brokenStore) Claims() ([]*entities.Claim, error)             { return nil, errBroken }

func TestRunAllIsolatesFailures(t *testing.T) {
	runner := NewRunner(brokenStore{}, NewCatalog())

	outcomes := runner.RunAll(Params{})
	require.Len(t, outcomes, 22)
	for name, outcome := range outcomes {
		require.Error(t, outcome.Err, "query %s", name)
		assert.True(t, errors.Is(outcome.Err, errBroken), "query %s", name)
		assert.Nil(t, outcome.Result, "query %s", name)
	}
}
