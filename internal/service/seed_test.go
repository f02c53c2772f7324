package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
	"github.com/alexanderramin/rotina/internal/testutil"
)

func TestEnsureDefaultsSeedsEmptyStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	require.NoError(t, EnsureDefaults(s, nil))

	jobs, err := store.Records[domain.Job](s, domain.Jobs)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	people, err := store.Records[domain.Person](s, domain.People)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Me", people[0].Name)

	cats, err := store.Records[domain.FinanceCategory](s, domain.FinanceCategories)
	require.NoError(t, err)
	assert.Len(t, cats, 6)

	// Tasks and the rest stay untouched.
	data, err := s.Get(domain.Tasks)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestEnsureDefaultsLeavesExistingDataAlone(t *testing.T) {
	s := testutil.NewTestStore(t)
	require.NoError(t, store.SaveRecords(s, domain.Jobs, []domain.Job{{ID: 99, Name: "Mine"}}))

	require.NoError(t, EnsureDefaults(s, nil))

	jobs, err := store.Records[domain.Job](s, domain.Jobs)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Mine", jobs[0].Name)
}
