package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/notify"
)

// Money renders integer cents as a currency string.
func Money(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// Checkbox renders a completion marker.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// TaskLine renders one task for list output.
func TaskLine(t domain.Task, job domain.Job) string {
	var b strings.Builder
	b.WriteString(Checkbox(t.Completed))
	fmt.Fprintf(&b, " %-13d ", t.ID)
	title := t.Title
	if t.Completed {
		title = StyleDim.Strikethrough(true).Render(title)
	}
	b.WriteString(title)
	if job.Name != "" {
		b.WriteString("  ")
		b.WriteString(TagStyle(job.Color).Render(job.Name))
	}
	if t.Date != "" {
		b.WriteString(StyleDim.Render("  " + t.Date))
		if t.Time != "" {
			b.WriteString(StyleDim.Render(" " + t.Time))
		}
	}
	return b.String()
}

// TransactionLine renders one transaction for list output.
func TransactionLine(tx domain.Transaction) string {
	amount := Money(tx.Amount)
	if tx.Type == domain.Income {
		amount = StyleGreen.Render("+" + amount)
	} else {
		amount = StyleRed.Render("-" + amount)
	}
	var b strings.Builder
	b.WriteString(Checkbox(tx.Completed))
	fmt.Fprintf(&b, " %-13d %s  %s", tx.ID, tx.Date, amount)
	if tx.Description != "" {
		b.WriteString("  " + tx.Description)
	}
	if tx.IsInstallment {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  (%d/%d)", tx.CurrentInstallment, tx.InstallmentCount)))
	}
	if tx.Method == domain.PayCredit {
		b.WriteString(StyleYellow.Render("  credit"))
	}
	return b.String()
}

// Notification renders a sync notification with its severity color.
func Notification(n notify.Notification) string {
	switch n.Severity {
	case notify.Success:
		return StyleGreen.Render("✓ ") + n.Message
	case notify.Error:
		return StyleRed.Render("✗ ") + n.Message
	case notify.Warning:
		return StyleYellow.Render("! ") + n.Message
	default:
		return StyleDim.Render("· ") + n.Message
	}
}

// SnapshotCard renders one side of the conflict prompt: a titled box with
// record counts and the side's last-modified time.
func SnapshotCard(title string, snap domain.Snapshot) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(title))
	b.WriteString("\n")
	for _, c := range domain.AllCollections {
		fmt.Fprintf(&b, "%-18s %d\n", string(c), snap.Count(c))
	}
	if !snap.LastModified.IsZero() {
		b.WriteString(StyleDim.Render("modified " + snap.LastModified.Local().Format("2006-01-02 15:04")))
	}
	return StyleCard.Render(b.String())
}
