package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

type financeService struct {
	store    store.Store
	onChange ChangeFunc
}

// NewFinanceService creates a FinanceService over s. onChange may be nil.
func NewFinanceService(s store.Store, onChange ChangeFunc) FinanceService {
	return &financeService{store: s, onChange: onChange}
}

func (s *financeService) changed(c domain.Collection) {
	if s.onChange != nil {
		s.onChange(c)
	}
}

func (s *financeService) Add(tx domain.Transaction) ([]domain.Transaction, error) {
	if err := s.normalize(&tx); err != nil {
		return nil, err
	}

	created := expandInstallments(tx)

	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return nil, err
	}
	txs = append(txs, created...)
	if err := store.SaveRecords(s.store, domain.Transactions, txs); err != nil {
		return nil, err
	}
	s.changed(domain.Transactions)
	return created, nil
}

// normalize validates a transaction and applies the form rules: income is
// always paid from checking with no card, and a credit expense must name
// an existing card. The owner defaults to the first person.
func (s *financeService) normalize(tx *domain.Transaction) error {
	if tx.Type != domain.Income && tx.Type != domain.Expense {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, tx.Type)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	if tx.Date == "" {
		tx.Date = time.Now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, tx.Date); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrInvalid, tx.Date)
	}
	if tx.IsRecurring && !domain.ValidRecurringTypes[tx.RecurringType] {
		return fmt.Errorf("%w: unknown recurring type %q", ErrInvalid, tx.RecurringType)
	}

	if tx.Type == domain.Income {
		tx.Method = domain.PayChecking
		tx.CardID = 0
		tx.IsInstallment = false
		tx.InstallmentCount = 0
	}
	if tx.Method == "" {
		tx.Method = domain.PayChecking
	}
	if tx.Method != domain.PayChecking && tx.Method != domain.PayCredit {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalid, tx.Method)
	}
	if tx.Method == domain.PayCredit {
		if tx.CardID == 0 {
			return ErrCardRequired
		}
		if err := s.requireCard(tx.CardID); err != nil {
			return err
		}
	} else {
		tx.CardID = 0
	}

	if tx.CategoryID != 0 {
		cat, err := s.findCategory(tx.CategoryID)
		if err != nil {
			return err
		}
		if !cat.Kind.Matches(tx.Type) {
			return fmt.Errorf("%w: category %q does not accept %s", ErrInvalid, cat.Name, tx.Type)
		}
	}

	if tx.OwnerID == 0 {
		people, err := store.Records[domain.Person](s.store, domain.People)
		if err != nil {
			return err
		}
		if len(people) > 0 {
			tx.OwnerID = people[0].ID
		}
	}

	if tx.ID == 0 {
		if tx.IsInstallment && tx.InstallmentCount > 1 {
			// Siblings take base+i, so the whole range must be reserved.
			tx.ID = domain.NewIDRange(tx.InstallmentCount)
		} else {
			tx.ID = domain.NewID()
		}
	}
	return nil
}

func (s *financeService) requireCard(id int64) error {
	cards, err := store.Records[domain.CreditCard](s.store, domain.CreditCards)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if c.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: card %d", ErrNotFound, id)
}

func (s *financeService) findCategory(id int64) (domain.FinanceCategory, error) {
	cats, err := store.Records[domain.FinanceCategory](s.store, domain.FinanceCategories)
	if err != nil {
		return domain.FinanceCategory{}, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.FinanceCategory{}, fmt.Errorf("%w: category %d", ErrNotFound, id)
}

// expandInstallments turns an installment purchase into one record per
// month. Each sibling carries the full amount, a sequential ID derived
// from the first, and the first record's ID as parent. Only the first
// inherits the settled flag; future months are unpaid.
func expandInstallments(tx domain.Transaction) []domain.Transaction {
	if !tx.IsInstallment || tx.InstallmentCount < 2 {
		tx.IsInstallment = false
		tx.InstallmentCount = 0
		tx.CurrentInstallment = 0
		tx.ParentID = 0
		return []domain.Transaction{tx}
	}

	base, _ := time.Parse(domain.DateLayout, tx.Date)
	out := make([]domain.Transaction, 0, tx.InstallmentCount)
	for i := 0; i < tx.InstallmentCount; i++ {
		inst := tx
		inst.ID = tx.ID + int64(i)
		inst.ParentID = tx.ID
		inst.CurrentInstallment = i + 1
		inst.Date = base.AddDate(0, i, 0).Format(domain.DateLayout)
		if i > 0 {
			inst.Completed = false
		}
		out = append(out, inst)
	}
	return out
}

func (s *financeService) Get(id int64) (domain.Transaction, error) {
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return domain.Transaction{}, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
}

func (s *financeService) Update(tx domain.Transaction) error {
	if err := s.normalize(&tx); err != nil {
		return err
	}
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return err
	}
	for i := range txs {
		if txs[i].ID == tx.ID {
			// Installment bookkeeping is set at creation and survives edits.
			tx.IsInstallment = txs[i].IsInstallment
			tx.InstallmentCount = txs[i].InstallmentCount
			tx.CurrentInstallment = txs[i].CurrentInstallment
			tx.ParentID = txs[i].ParentID
			txs[i] = tx
			if err := store.SaveRecords(s.store, domain.Transactions, txs); err != nil {
				return err
			}
			s.changed(domain.Transactions)
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %d", ErrNotFound, tx.ID)
}

func (s *financeService) Toggle(id int64) (domain.Transaction, error) {
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return domain.Transaction{}, err
	}
	for i := range txs {
		if txs[i].ID == id {
			txs[i].Completed = !txs[i].Completed
			if err := store.SaveRecords(s.store, domain.Transactions, txs); err != nil {
				return domain.Transaction{}, err
			}
			s.changed(domain.Transactions)
			return txs[i], nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
}

func (s *financeService) Delete(id int64, wholeSet bool) error {
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return err
	}

	var target *domain.Transaction
	for i := range txs {
		if txs[i].ID == id {
			target = &txs[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}

	parent := target.ParentID
	kept := txs[:0]
	for _, tx := range txs {
		switch {
		case tx.ID == id:
			continue
		case wholeSet && parent != 0 && tx.ParentID == parent:
			continue
		}
		kept = append(kept, tx)
	}
	if err := store.SaveRecords(s.store, domain.Transactions, kept); err != nil {
		return err
	}
	s.changed(domain.Transactions)
	return nil
}

func (s *financeService) ListMonth(year int, month time.Month) ([]domain.Transaction, error) {
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		d, err := time.Parse(domain.DateLayout, tx.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Summary totals one month. Cents convert to currency units through
// decimal so repeated additions stay exact.
func (s *financeService) Summary(year int, month time.Month) (MonthlySummary, error) {
	txs, err := s.ListMonth(year, month)
	if err != nil {
		return MonthlySummary{}, err
	}

	sum := MonthlySummary{
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Pending:    decimal.Zero,
		ByCategory: make(map[int64]decimal.Decimal),
		ByPerson:   make(map[int64]decimal.Decimal),
		ByCard:     make(map[int64]decimal.Decimal),
	}
	cents := decimal.NewFromInt(100)

	for _, tx := range txs {
		amount := decimal.NewFromInt(tx.Amount).Div(cents)
		if tx.Type == domain.Income {
			sum.Income = sum.Income.Add(amount)
		} else {
			sum.Expenses = sum.Expenses.Add(amount)
			if !tx.Completed {
				sum.Pending = sum.Pending.Add(amount)
			}
			sum.ByPerson[tx.OwnerID] = sum.ByPerson[tx.OwnerID].Add(amount)
			if tx.CardID != 0 {
				sum.ByCard[tx.CardID] = sum.ByCard[tx.CardID].Add(amount)
			}
		}
		if tx.CategoryID != 0 {
			sum.ByCategory[tx.CategoryID] = sum.ByCategory[tx.CategoryID].Add(amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expenses)
	return sum, nil
}
