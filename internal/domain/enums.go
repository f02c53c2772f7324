package domain

type TaskType string

const (
	TaskProject   TaskType = "project"
	TaskService   TaskType = "service"
	TaskFreelance TaskType = "freelance"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[TaskType]bool{
	TaskProject: true, TaskService: true, TaskFreelance: true,
}

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
	CategoryBoth    CategoryKind = "both"
)

// Matches returns whether a category of this kind can classify a
// transaction of the given type.
func (k CategoryKind) Matches(t TransactionType) bool {
	switch k {
	case CategoryBoth:
		return true
	case CategoryIncome:
		return t == Income
	case CategoryExpense:
		return t == Expense
	default:
		return false
	}
}

type PaymentMethod string

const (
	PayChecking PaymentMethod = "checking"
	PayCredit   PaymentMethod = "credit"
)

type RecurringType string

const (
	RecurWeekly  RecurringType = "weekly"
	RecurMonthly RecurringType = "monthly"
	RecurYearly  RecurringType = "yearly"
)

var ValidRecurringTypes = map[RecurringType]bool{
	RecurWeekly: true, RecurMonthly: true, RecurYearly: true,
}

// ColorTag is a display hint attached to jobs, tags, people, cards and
// categories. The UI maps it to whatever styling it wants.
type ColorTag string

// Palette is the fixed rotation of color tags assigned to new records.
var Palette = []ColorTag{
	"blue", "green", "purple", "pink", "yellow", "indigo", "red", "teal",
}

// PaletteColor returns the palette entry for the i-th record, cycling.
func PaletteColor(i int) ColorTag {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
