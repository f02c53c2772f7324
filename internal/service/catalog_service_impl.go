package service

import (
	"fmt"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

type catalogService struct {
	store    store.Store
	onChange ChangeFunc
}

// NewCatalogService creates a CatalogService over s. onChange may be nil.
func NewCatalogService(s store.Store, onChange ChangeFunc) CatalogService {
	return &catalogService{store: s, onChange: onChange}
}

func (s *catalogService) changed(c domain.Collection) {
	if s.onChange != nil {
		s.onChange(c)
	}
}

func (s *catalogService) Jobs() ([]domain.Job, error) {
	return store.Records[domain.Job](s.store, domain.Jobs)
}

func (s *catalogService) AddJob(name string) (domain.Job, error) {
	if name == "" {
		return domain.Job{}, fmt.Errorf("%w: job name required", ErrInvalid)
	}
	jobs, err := s.Jobs()
	if err != nil {
		return domain.Job{}, err
	}
	job := domain.Job{ID: domain.NewID(), Name: name, Color: domain.PaletteColor(len(jobs))}
	jobs = append(jobs, job)
	if err := store.SaveRecords(s.store, domain.Jobs, jobs); err != nil {
		return domain.Job{}, err
	}
	s.changed(domain.Jobs)
	return job, nil
}

func (s *catalogService) RenameJob(id int64, name string) error {
	if name == "" {
		return fmt.Errorf("%w: job name required", ErrInvalid)
	}
	jobs, err := s.Jobs()
	if err != nil {
		return err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			jobs[i].Name = name
			if err := store.SaveRecords(s.store, domain.Jobs, jobs); err != nil {
				return err
			}
			s.changed(domain.Jobs)
			return nil
		}
	}
	return fmt.Errorf("%w: job %d", ErrNotFound, id)
}

// DeleteJob removes a job together with its tasks and detaches its
// transactions. Refused when it is the only job left so tasks always have
// a home.
func (s *catalogService) DeleteJob(id int64) error {
	jobs, err := s.Jobs()
	if err != nil {
		return err
	}
	if len(jobs) <= 1 {
		return ErrLastJob
	}
	kept := jobs[:0]
	found := false
	for _, j := range jobs {
		if j.ID == id {
			found = true
			continue
		}
		kept = append(kept, j)
	}
	if !found {
		return fmt.Errorf("%w: job %d", ErrNotFound, id)
	}
	if err := store.SaveRecords(s.store, domain.Jobs, kept); err != nil {
		return err
	}
	s.changed(domain.Jobs)

	// Cascade: drop the job's tasks.
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return err
	}
	keptTasks := tasks[:0]
	removed := false
	for _, t := range tasks {
		if t.JobID == id {
			removed = true
			continue
		}
		keptTasks = append(keptTasks, t)
	}
	if removed {
		if err := store.SaveRecords(s.store, domain.Tasks, keptTasks); err != nil {
			return err
		}
		s.changed(domain.Tasks)
	}

	// Cascade: detach the job's transactions.
	return s.updateTransactions(func(tx *domain.Transaction) bool {
		if tx.JobID != id {
			return false
		}
		tx.JobID = 0
		return true
	})
}

func (s *catalogService) Tags() ([]domain.Tag, error) {
	return store.Records[domain.Tag](s.store, domain.Tags)
}

func (s *catalogService) AddTag(name string) (domain.Tag, error) {
	if name == "" {
		return domain.Tag{}, fmt.Errorf("%w: tag name required", ErrInvalid)
	}
	tags, err := s.Tags()
	if err != nil {
		return domain.Tag{}, err
	}
	tag := domain.Tag{ID: domain.NewID(), Name: name, Color: domain.PaletteColor(len(tags))}
	tags = append(tags, tag)
	if err := store.SaveRecords(s.store, domain.Tags, tags); err != nil {
		return domain.Tag{}, err
	}
	s.changed(domain.Tags)
	return tag, nil
}

// DeleteTag removes a tag and strips it from every task that carries it.
func (s *catalogService) DeleteTag(id int64) error {
	tags, err := s.Tags()
	if err != nil {
		return err
	}
	kept := tags[:0]
	found := false
	for _, tag := range tags {
		if tag.ID == id {
			found = true
			continue
		}
		kept = append(kept, tag)
	}
	if !found {
		return fmt.Errorf("%w: tag %d", ErrNotFound, id)
	}
	if err := store.SaveRecords(s.store, domain.Tags, kept); err != nil {
		return err
	}
	s.changed(domain.Tags)

	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return err
	}
	touched := false
	for i := range tasks {
		if !tasks[i].HasTag(id) {
			continue
		}
		keptIDs := tasks[i].TagIDs[:0]
		for _, tid := range tasks[i].TagIDs {
			if tid != id {
				keptIDs = append(keptIDs, tid)
			}
		}
		tasks[i].TagIDs = keptIDs
		touched = true
	}
	if !touched {
		return nil
	}
	if err := store.SaveRecords(s.store, domain.Tasks, tasks); err != nil {
		return err
	}
	s.changed(domain.Tasks)
	return nil
}

func (s *catalogService) People() ([]domain.Person, error) {
	return store.Records[domain.Person](s.store, domain.People)
}

func (s *catalogService) AddPerson(name string) (domain.Person, error) {
	if name == "" {
		return domain.Person{}, fmt.Errorf("%w: person name required", ErrInvalid)
	}
	people, err := s.People()
	if err != nil {
		return domain.Person{}, err
	}
	p := domain.Person{ID: domain.NewID(), Name: name, Color: domain.PaletteColor(len(people))}
	people = append(people, p)
	if err := store.SaveRecords(s.store, domain.People, people); err != nil {
		return domain.Person{}, err
	}
	s.changed(domain.People)
	return p, nil
}

// DeletePerson hands the person's transactions and cards to the first
// remaining person. The last person cannot be deleted; finance records
// always have an owner.
func (s *catalogService) DeletePerson(id int64) error {
	people, err := s.People()
	if err != nil {
		return err
	}
	if len(people) <= 1 {
		return ErrLastPerson
	}
	kept := people[:0]
	found := false
	for _, p := range people {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: person %d", ErrNotFound, id)
	}
	heir := kept[0].ID
	if err := store.SaveRecords(s.store, domain.People, kept); err != nil {
		return err
	}
	s.changed(domain.People)

	cards, err := s.Cards()
	if err != nil {
		return err
	}
	touched := false
	for i := range cards {
		if cards[i].OwnerID == id {
			cards[i].OwnerID = heir
			touched = true
		}
	}
	if touched {
		if err := store.SaveRecords(s.store, domain.CreditCards, cards); err != nil {
			return err
		}
		s.changed(domain.CreditCards)
	}

	return s.updateTransactions(func(tx *domain.Transaction) bool {
		if tx.OwnerID != id {
			return false
		}
		tx.OwnerID = heir
		return true
	})
}

func (s *catalogService) Cards() ([]domain.CreditCard, error) {
	return store.Records[domain.CreditCard](s.store, domain.CreditCards)
}

func (s *catalogService) AddCard(card domain.CreditCard) (domain.CreditCard, error) {
	if card.Name == "" {
		return domain.CreditCard{}, fmt.Errorf("%w: card name required", ErrInvalid)
	}
	if card.ClosingDay < 1 || card.ClosingDay > 31 || card.DueDay < 1 || card.DueDay > 31 {
		return domain.CreditCard{}, fmt.Errorf("%w: closing and due days must be 1-31", ErrInvalid)
	}
	people, err := s.People()
	if err != nil {
		return domain.CreditCard{}, err
	}
	ownerOK := false
	for _, p := range people {
		if p.ID == card.OwnerID {
			ownerOK = true
			break
		}
	}
	if !ownerOK {
		return domain.CreditCard{}, fmt.Errorf("%w: card owner %d", ErrNotFound, card.OwnerID)
	}

	cards, err := s.Cards()
	if err != nil {
		return domain.CreditCard{}, err
	}
	if card.ID == 0 {
		card.ID = domain.NewID()
	}
	if card.Color == "" {
		card.Color = domain.PaletteColor(len(cards))
	}
	cards = append(cards, card)
	if err := store.SaveRecords(s.store, domain.CreditCards, cards); err != nil {
		return domain.CreditCard{}, err
	}
	s.changed(domain.CreditCards)
	return card, nil
}

// DeleteCard detaches the card's transactions and moves them back to the
// checking method so no payment points at a card that no longer exists.
func (s *catalogService) DeleteCard(id int64) error {
	cards, err := s.Cards()
	if err != nil {
		return err
	}
	kept := cards[:0]
	found := false
	for _, c := range cards {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: card %d", ErrNotFound, id)
	}
	if err := store.SaveRecords(s.store, domain.CreditCards, kept); err != nil {
		return err
	}
	s.changed(domain.CreditCards)

	return s.updateTransactions(func(tx *domain.Transaction) bool {
		if tx.CardID != id {
			return false
		}
		tx.CardID = 0
		tx.Method = domain.PayChecking
		return true
	})
}

func (s *catalogService) Categories() ([]domain.FinanceCategory, error) {
	return store.Records[domain.FinanceCategory](s.store, domain.FinanceCategories)
}

func (s *catalogService) AddCategory(name string, kind domain.CategoryKind) (domain.FinanceCategory, error) {
	if name == "" {
		return domain.FinanceCategory{}, fmt.Errorf("%w: category name required", ErrInvalid)
	}
	switch kind {
	case domain.CategoryIncome, domain.CategoryExpense, domain.CategoryBoth:
	default:
		return domain.FinanceCategory{}, fmt.Errorf("%w: unknown category type %q", ErrInvalid, kind)
	}
	cats, err := s.Categories()
	if err != nil {
		return domain.FinanceCategory{}, err
	}
	cat := domain.FinanceCategory{
		ID:    domain.NewID(),
		Name:  name,
		Kind:  kind,
		Color: domain.PaletteColor(len(cats)),
	}
	cats = append(cats, cat)
	if err := store.SaveRecords(s.store, domain.FinanceCategories, cats); err != nil {
		return domain.FinanceCategory{}, err
	}
	s.changed(domain.FinanceCategories)
	return cat, nil
}

// DeleteCategory removes a category and detaches its transactions.
func (s *catalogService) DeleteCategory(id int64) error {
	cats, err := s.Categories()
	if err != nil {
		return err
	}
	kept := cats[:0]
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if err := store.SaveRecords(s.store, domain.FinanceCategories, kept); err != nil {
		return err
	}
	s.changed(domain.FinanceCategories)

	return s.updateTransactions(func(tx *domain.Transaction) bool {
		if tx.CategoryID != id {
			return false
		}
		tx.CategoryID = 0
		return true
	})
}

// updateTransactions applies fn to every transaction and persists when
// anything changed. fn returns whether it modified the record.
func (s *catalogService) updateTransactions(fn func(tx *domain.Transaction) bool) error {
	txs, err := store.Records[domain.Transaction](s.store, domain.Transactions)
	if err != nil {
		return err
	}
	touched := false
	for i := range txs {
		if fn(&txs[i]) {
			touched = true
		}
	}
	if !touched {
		return nil
	}
	if err := store.SaveRecords(s.store, domain.Transactions, txs); err != nil {
		return err
	}
	s.changed(domain.Transactions)
	return nil
}
