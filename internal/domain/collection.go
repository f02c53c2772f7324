package domain

// Collection names one of the seven synchronized record sets. The name is
// also the persisted key in the local store and the table/topic name on the
// remote side.
type Collection string

const (
	Tasks             Collection = "tasks"
	Jobs              Collection = "jobs"
	Tags              Collection = "tags"
	Transactions      Collection = "transactions"
	FinanceCategories Collection = "financeCategories"
	People            Collection = "people"
	CreditCards       Collection = "creditCards"
)

// AllCollections lists every synchronized collection in a stable order.
var AllCollections = []Collection{
	Tasks, Jobs, Tags, Transactions, FinanceCategories, People, CreditCards,
}

var validCollections = map[Collection]bool{
	Tasks: true, Jobs: true, Tags: true, Transactions: true,
	FinanceCategories: true, People: true, CreditCards: true,
}

func (c Collection) Valid() bool {
	return validCollections[c]
}

func (c Collection) String() string {
	return string(c)
}
