package domain

type FinanceCategory struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Kind  CategoryKind `json:"type"`
	Color ColorTag     `json:"color"`
}

type Person struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Color ColorTag `json:"color"`
}

type CreditCard struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	OwnerID    int64    `json:"ownerId"`
	ClosingDay int      `json:"closingDay"` // 1..31
	DueDay     int      `json:"dueDay"`     // 1..31
	Color      ColorTag `json:"color"`
}

// Transaction is a single finance entry. Amounts are integer cents.
// Installment purchases are expanded into installmentCount sibling rows
// sharing one ParentTransactionID.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	CategoryID  int64           `json:"categoryId"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	JobID       int64           `json:"jobId,omitempty"`
	Completed   bool            `json:"completed"` // settled / paid
	Method      PaymentMethod   `json:"paymentMethod"`
	CardID      int64           `json:"creditCardId,omitempty"`
	OwnerID     int64           `json:"ownerId"`

	IsRecurring   bool          `json:"isRecurring,omitempty"`
	RecurringType RecurringType `json:"recurringType,omitempty"`

	IsInstallment      bool  `json:"isInstallment,omitempty"`
	InstallmentCount   int   `json:"installmentCount,omitempty"`
	CurrentInstallment int   `json:"currentInstallment,omitempty"`
	ParentID           int64 `json:"parentTransactionId,omitempty"`
}
