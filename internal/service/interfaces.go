// Package service implements the application's use cases over the local
// store: task management, the jobs/tags/people/cards/categories catalog
// with its cascades, and finance entry with installment expansion and
// monthly summaries. Services only touch the store; pushing changes to
// the cloud is the sync coordinator's job, fed through the ChangeFunc
// hook when a coordinator is running in-process.
package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rotina/internal/domain"
)

// ChangeFunc is invoked after every successful write with the collection
// that changed. Nil disables the hook.
type ChangeFunc func(c domain.Collection)

// TaskRange selects which slice of the calendar List returns.
type TaskRange int

const (
	RangeAll TaskRange = iota
	RangeToday
	RangeWeek
	RangeMonth
)

// TaskFilter narrows List results. Zero values mean "any".
type TaskFilter struct {
	Range TaskRange
	// Now anchors the range; zero means time.Now().
	Now   time.Time
	JobID int64
	TagID int64
	// Pending hides completed tasks when set.
	Pending bool
}

type TaskService interface {
	Add(t domain.Task) (domain.Task, error)
	Get(id int64) (domain.Task, error)
	Update(t domain.Task) error
	Toggle(id int64) (domain.Task, error)
	Delete(id int64) error
	List(f TaskFilter) ([]domain.Task, error)
}

// CatalogService manages the reference collections tasks and transactions
// point into. Deletes cascade so no dangling reference survives.
type CatalogService interface {
	Jobs() ([]domain.Job, error)
	AddJob(name string) (domain.Job, error)
	RenameJob(id int64, name string) error
	// DeleteJob removes a job, deletes its tasks, and detaches its
	// transactions. The last job cannot be deleted.
	DeleteJob(id int64) error

	Tags() ([]domain.Tag, error)
	AddTag(name string) (domain.Tag, error)
	// DeleteTag removes a tag and strips it from every task.
	DeleteTag(id int64) error

	People() ([]domain.Person, error)
	AddPerson(name string) (domain.Person, error)
	// DeletePerson reassigns the person's transactions and cards to the
	// first remaining person. The last person cannot be deleted.
	DeletePerson(id int64) error

	Cards() ([]domain.CreditCard, error)
	AddCard(card domain.CreditCard) (domain.CreditCard, error)
	// DeleteCard detaches the card's transactions and moves them back to
	// the checking payment method.
	DeleteCard(id int64) error

	Categories() ([]domain.FinanceCategory, error)
	AddCategory(name string, kind domain.CategoryKind) (domain.FinanceCategory, error)
	// DeleteCategory removes a category and detaches its transactions.
	DeleteCategory(id int64) error
}

// MonthlySummary aggregates one month of transactions. Amounts are in
// currency units, not cents.
type MonthlySummary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	// Pending is the unsettled share of the month's expenses.
	Pending decimal.Decimal

	ByCategory map[int64]decimal.Decimal
	ByPerson   map[int64]decimal.Decimal
	ByCard     map[int64]decimal.Decimal
}

type FinanceService interface {
	// Add validates and persists a transaction. An installment purchase
	// expands into InstallmentCount sibling records, one per month; all
	// created records are returned.
	Add(tx domain.Transaction) ([]domain.Transaction, error)
	Get(id int64) (domain.Transaction, error)
	Update(tx domain.Transaction) error
	Toggle(id int64) (domain.Transaction, error)
	// Delete removes one transaction, or the entire installment set when
	// wholeSet is true and the record belongs to one.
	Delete(id int64, wholeSet bool) error
	// ListMonth returns transactions dated in the given month.
	ListMonth(year int, month time.Month) ([]domain.Transaction, error)
	Summary(year int, month time.Month) (MonthlySummary, error)
}
