package service

import (
	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

// EnsureDefaults seeds the catalog collections a fresh install needs:
// jobs to file tasks under, a person to own finance records, and a basic
// category set. Collections that already hold data are left alone, so
// this is safe to run on every startup.
func EnsureDefaults(s store.Store, onChange ChangeFunc) error {
	changed := func(c domain.Collection) {
		if onChange != nil {
			onChange(c)
		}
	}

	jobs, err := store.Records[domain.Job](s, domain.Jobs)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		jobs = []domain.Job{
			{ID: 1, Name: "Main Job", Color: "blue"},
			{ID: 2, Name: "Second Job", Color: "green"},
			{ID: 3, Name: "Freelance", Color: "purple"},
		}
		if err := store.SaveRecords(s, domain.Jobs, jobs); err != nil {
			return err
		}
		changed(domain.Jobs)
	}

	people, err := store.Records[domain.Person](s, domain.People)
	if err != nil {
		return err
	}
	if len(people) == 0 {
		people = []domain.Person{{ID: 1, Name: "Me", Color: "blue"}}
		if err := store.SaveRecords(s, domain.People, people); err != nil {
			return err
		}
		changed(domain.People)
	}

	cats, err := store.Records[domain.FinanceCategory](s, domain.FinanceCategories)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		cats = []domain.FinanceCategory{
			{ID: 1, Name: "Salary", Kind: domain.CategoryIncome, Color: "green"},
			{ID: 2, Name: "Freelance", Kind: domain.CategoryIncome, Color: "teal"},
			{ID: 3, Name: "Housing", Kind: domain.CategoryExpense, Color: "blue"},
			{ID: 4, Name: "Food", Kind: domain.CategoryExpense, Color: "yellow"},
			{ID: 5, Name: "Transport", Kind: domain.CategoryExpense, Color: "purple"},
			{ID: 6, Name: "Other", Kind: domain.CategoryBoth, Color: "red"},
		}
		if err := store.SaveRecords(s, domain.FinanceCategories, cats); err != nil {
			return err
		}
		changed(domain.FinanceCategories)
	}

	return nil
}
