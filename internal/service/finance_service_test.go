package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rotina/internal/domain"
)

func TestFinanceIncomeClearsCardFields(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	// An income entry keeps no trace of a card payment.
	created, err := finance.Add(domain.Transaction{
		Type: domain.Income, Amount: 300000, Description: "salary",
		Method: domain.PayCredit, CardID: card.ID, CategoryID: 1,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, domain.PayChecking, created[0].Method)
	assert.Zero(t, created[0].CardID)
}

func TestFinanceCreditRequiresCard(t *testing.T) {
	s := seededStore(t)
	finance := NewFinanceService(s, nil)

	_, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 1000, Method: domain.PayCredit,
	})
	assert.ErrorIs(t, err, ErrCardRequired)

	_, err = finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 1000, Method: domain.PayCredit, CardID: 999,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinanceValidation(t *testing.T) {
	s := seededStore(t)
	finance := NewFinanceService(s, nil)

	_, err := finance.Add(domain.Transaction{Type: "transfer", Amount: 100})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = finance.Add(domain.Transaction{Type: domain.Expense, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalid)

	// Category kind must accept the transaction type: "Salary" is income-only.
	_, err = finance.Add(domain.Transaction{Type: domain.Expense, Amount: 100, CategoryID: 1})
	assert.ErrorIs(t, err, ErrInvalid)

	// "Other" accepts both.
	_, err = finance.Add(domain.Transaction{Type: domain.Expense, Amount: 100, CategoryID: 6})
	assert.NoError(t, err)
}

func TestFinanceOwnerDefaultsToFirstPerson(t *testing.T) {
	s := seededStore(t)
	finance := NewFinanceService(s, nil)

	created, err := finance.Add(domain.Transaction{Type: domain.Expense, Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created[0].OwnerID)
}

func TestInstallmentExpansion(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 100000, Description: "phone",
		Date: "2025-01-15", Method: domain.PayCredit, CardID: card.ID,
		Completed: true, IsInstallment: true, InstallmentCount: 4, CategoryID: 6,
	})
	require.NoError(t, err)
	require.Len(t, created, 4)

	base := created[0].ID
	wantDates := []string{"2025-01-15", "2025-02-15", "2025-03-15", "2025-04-15"}
	for i, tx := range created {
		assert.Equal(t, base+int64(i), tx.ID)
		assert.Equal(t, base, tx.ParentID)
		assert.Equal(t, i+1, tx.CurrentInstallment)
		assert.Equal(t, 4, tx.InstallmentCount)
		assert.Equal(t, wantDates[i], tx.Date)
		// Each month bills the full amount.
		assert.Equal(t, int64(100000), tx.Amount)
		// Only the first month inherits the settled flag.
		assert.Equal(t, i == 0, tx.Completed)
	}
}

func TestInstallmentEndOfMonthDates(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 6000, Date: "2025-01-31",
		Method: domain.PayCredit, CardID: card.ID,
		IsInstallment: true, InstallmentCount: 2,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	// AddDate normalizes Jan 31 + 1 month to Mar 3 (2025 is not a leap year).
	assert.Equal(t, "2025-03-03", created[1].Date)
}

func TestInstallmentIDsClearNextTransaction(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 30000, Date: "2025-01-15",
		Method: domain.PayCredit, CardID: card.ID,
		IsInstallment: true, InstallmentCount: 3,
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	// A record created right after, in the same millisecond, must land
	// past the whole sibling range, or deleting the set takes it along.
	other, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 500, Date: "2025-01-15",
	})
	require.NoError(t, err)
	assert.Greater(t, other[0].ID, created[2].ID)

	require.NoError(t, finance.Delete(created[0].ID, true))
	got, err := finance.Get(other[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Amount)
}

func TestDeleteSingleInstallment(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 3000, Date: "2025-01-15",
		Method: domain.PayCredit, CardID: card.ID,
		IsInstallment: true, InstallmentCount: 3,
	})
	require.NoError(t, err)

	require.NoError(t, finance.Delete(created[1].ID, false))
	_, err = finance.Get(created[1].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = finance.Get(created[0].ID)
	assert.NoError(t, err)
	_, err = finance.Get(created[2].ID)
	assert.NoError(t, err)
}

func TestDeleteWholeInstallmentSet(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 3000, Date: "2025-01-15",
		Method: domain.PayCredit, CardID: card.ID,
		IsInstallment: true, InstallmentCount: 3,
	})
	require.NoError(t, err)

	other, err := finance.Add(domain.Transaction{Type: domain.Expense, Amount: 700})
	require.NoError(t, err)

	require.NoError(t, finance.Delete(created[1].ID, true))
	for _, tx := range created {
		_, err := finance.Get(tx.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	_, err = finance.Get(other[0].ID)
	assert.NoError(t, err)
}

func TestFinanceToggleSettled(t *testing.T) {
	s := seededStore(t)
	finance := NewFinanceService(s, nil)

	created, err := finance.Add(domain.Transaction{Type: domain.Expense, Amount: 1500})
	require.NoError(t, err)

	tx, err := finance.Toggle(created[0].ID)
	require.NoError(t, err)
	assert.True(t, tx.Completed)
}

func TestMonthlySummary(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	partner, err := catalog.AddPerson("Partner")
	require.NoError(t, err)
	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	add := func(tx domain.Transaction) {
		_, err := finance.Add(tx)
		require.NoError(t, err)
	}
	add(domain.Transaction{Type: domain.Income, Amount: 500000, Date: "2026-02-01", CategoryID: 1})
	add(domain.Transaction{Type: domain.Expense, Amount: 120050, Date: "2026-02-10", CategoryID: 3})
	add(domain.Transaction{
		Type: domain.Expense, Amount: 9999, Date: "2026-02-14",
		Method: domain.PayCredit, CardID: card.ID, OwnerID: partner.ID, CategoryID: 4,
	})
	// Outside the month; must not count.
	add(domain.Transaction{Type: domain.Expense, Amount: 777700, Date: "2026-03-01", CategoryID: 3})

	sum, err := finance.Summary(2026, time.February)
	require.NoError(t, err)

	assert.True(t, sum.Income.Equal(decimal.RequireFromString("5000")), sum.Income.String())
	assert.True(t, sum.Expenses.Equal(decimal.RequireFromString("1300.49")), sum.Expenses.String())
	assert.True(t, sum.Balance.Equal(decimal.RequireFromString("3699.51")), sum.Balance.String())
	// Nothing is settled yet, so the whole expense total is pending.
	assert.True(t, sum.Pending.Equal(decimal.RequireFromString("1300.49")), sum.Pending.String())

	assert.True(t, sum.ByPerson[1].Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, sum.ByPerson[partner.ID].Equal(decimal.RequireFromString("99.99")))
	assert.True(t, sum.ByCard[card.ID].Equal(decimal.RequireFromString("99.99")))
	assert.True(t, sum.ByCategory[3].Equal(decimal.RequireFromString("1200.50")))
}

func TestFinanceUpdatePreservesInstallmentBookkeeping(t *testing.T) {
	s := seededStore(t)
	catalog := NewCatalogService(s, nil)
	finance := NewFinanceService(s, nil)

	card, err := catalog.AddCard(domain.CreditCard{Name: "Visa", OwnerID: 1, ClosingDay: 5, DueDay: 12})
	require.NoError(t, err)

	created, err := finance.Add(domain.Transaction{
		Type: domain.Expense, Amount: 3000, Date: "2025-01-15",
		Method: domain.PayCredit, CardID: card.ID,
		IsInstallment: true, InstallmentCount: 3,
	})
	require.NoError(t, err)

	edit := created[1]
	edit.Description = "updated"
	require.NoError(t, finance.Update(edit))

	got, err := finance.Get(created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, 2, got.CurrentInstallment)
	assert.Equal(t, created[0].ID, got.ParentID)
}
