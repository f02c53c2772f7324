package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

func TestDeleteJobCascades(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	tasks := NewTaskService(s, nil)
	finance := NewFinanceService(s, nil)

	doomed, err := tasks.Add(domain.Task{Title: "on job 2", JobID: 2, Type: domain.TaskProject})
	require.NoError(t, err)
	survivor, err := tasks.Add(domain.Task{Title: "on job 1", JobID: 1, Type: domain.TaskProject})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Income, Amount: 50000, Description: "invoice", JobID: 2, CategoryID: 2,
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteJob(2))

	// The job's tasks are gone; other jobs' tasks survive.
	_, err = tasks.Get(doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tasks.Get(survivor.ID)
	assert.NoError(t, err)

	// Its transactions stay but lose the job reference.
	tx, err := finance.Get(created[0].ID)
	require.NoError(t, err)
	assert.Zero(t, tx.JobID)
}

func TestDeleteLastJobRefused(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	require.NoError(t, catalog.DeleteJob(2))
	require.NoError(t, catalog.DeleteJob(3))
	assert.ErrorIs(t, catalog.DeleteJob(1), ErrLastJob)
}

func TestDeleteTagStripsFromTasks(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	tasks := NewTaskService(s, nil)

	tag, err := catalog.AddTag("urgent")
	require.NoError(t, err)
	other, err := catalog.AddTag("later")
	require.NoError(t, err)

	task, err := tasks.Add(domain.Task{
		Title: "x", JobID: 1, Type: domain.TaskProject, TagIDs: []int64{tag.ID, other.ID},
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteTag(tag.ID))

	got, err := tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID}, got.TagIDs)
}

func TestDeletePersonReassignsOwnership(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	partner, err := catalog.AddPerson("Partner")
	require.NoError(t, err)

	card, err := catalog.AddCard(domain.CreditCard{
		Name: "Visa", OwnerID: partner.ID, ClosingDay: 5, DueDay: 12,
	})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 2500, Description: "dinner",
		Method: domain.PayCredit, CardID: card.ID, OwnerID: partner.ID, CategoryID: 4,
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeletePerson(partner.ID))

	// Person 1 ("Me") inherits the card and the transaction.
	cards, err := catalog.Cards()
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, int64(1), cards[0].OwnerID)

	tx, err := finance.Get(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.OwnerID)
}

func TestDeleteLastPersonRefused(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	assert.ErrorIs(t, catalog.DeletePerson(1), ErrLastPerson)
}

func TestDeleteCardDetachesTransactions(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{
		Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12,
	})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 9900, Description: "shoes",
		Method: domain.PayCredit, CardID: card.ID, CategoryID: 6,
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteCard(card.ID))

	tx, err := finance.Get(created[0].ID)
	require.NoError(t, err)
	assert.Zero(t, tx.CardID)
	assert.Equal(t, domain.PayChecking, tx.Method)
}

func TestDeleteCategoryDetachesTransactions(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 1200, Description: "lunch", CategoryID: 4,
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteCategory(4))

	tx, err := finance.Get(created[0].ID)
	require.NoError(t, err)
	assert.Zero(t, tx.CategoryID)
}

func TestAddCardValidation(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)

	_, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 999, ClosingDay: 5, DueDay: 12})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 0, DueDay: 12})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 40})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPaletteCyclesForNewRecords(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)

	var colors []domain.ColorTag
	for i := 0; i < len(domain.Palette)+1; i++ {
		tag, err := catalog.AddTag("t")
		require.NoError(t, err)
		colors = append(colors, tag.Color)
	}
	assert.Equal(t, domain.Palette[0], colors[0])
	assert.Equal(t, domain.Palette[0], colors[len(domain.Palette)])
}

func TestCatalogCascadeReportsChangedCollections(t *testing.T) {
	s := seededStore(t)
	seen := map[domain.Collection]int{}
	catalog := NewCatalogService(s, func(c domain.Collection) { seen[c]++ })
	tasks := NewTaskService(s, nil)

	_, err := tasks.Add(domain.Task{Title: "x", JobID: 2, Type: domain.TaskProject})
	require.NoError(t, err)
	require.NoError(t, store.SaveRecords(s, domain.Transactions, []domain.Transaction{
		{ID: 1, Type: domain.Income, Amount: 100, JobID: 2, Method: domain.PayChecking, OwnerID: 1},
	}))

	require.NoError(t, catalog.DeleteJob(2))

	assert.Equal(t, 1, seen[domain.Jobs])
	assert.Equal(t, 1, seen[domain.Tasks])
	assert.Equal(t, 1, seen[domain.Transactions])
}
