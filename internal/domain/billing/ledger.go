package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentState classifies a row on the payment statement
type InstallmentState string

const (
	StatePaid        InstallmentState = "PAID"
	StateNextPayable InstallmentState = "NEXT_PAYABLE"
	StateLocked      InstallmentState = "LOCKED"
)

// InstallmentRow is one line of a unit's payment statement: a planned
// installment reconciled against the payments actually received.
type InstallmentRow struct {
	Category          Category
	InstallmentNumber int
	Expected          decimal.Decimal
	State             InstallmentState
	DueDate           *time.Time
	Payment           *Payment
}

// CategoryStatement groups the statement rows of one phase
type CategoryStatement struct {
	Category Category
	Label    string
	Rows     []InstallmentRow
}

// Statement is the fully reconciled view of one unit's installment plan
type Statement struct {
	Total         decimal.Decimal
	TotalReceived decimal.Decimal
	Progress      float64
	Categories    []CategoryStatement
}

// Ledger reconciles the payments received against a unit's derived
// schedule. It is a pure in-memory computation over the payment rows;
// nothing here touches storage.
type Ledger struct {
	schedule Schedule
	payments map[Category]map[int]*Payment
	counts   map[Category]int
}

// NewLedger builds a ledger for one unit from its total payable and the
// payments recorded against it. The total must be a valid schedule total.
// When the same installment appears more than once the earliest receipt
// wins; persistence prevents duplicates, so this is only a guard against
// historical data.
func NewLedger(total decimal.Decimal, payments []Payment) (*Ledger, error) {
	schedule, err := NewSchedule(total)
	if err != nil {
		return nil, err
	}
	byCat := make(map[Category]map[int]*Payment)
	counts := make(map[Category]int)
	for i := range payments {
		p := &payments[i]
		if byCat[p.Category] == nil {
			byCat[p.Category] = make(map[int]*Payment)
		}
		if existing, ok := byCat[p.Category][p.InstallmentNumber]; ok {
			if p.PaidDate.Before(existing.PaidDate) {
				byCat[p.Category][p.InstallmentNumber] = p
			}
			continue
		}
		byCat[p.Category][p.InstallmentNumber] = p
		counts[p.Category]++
	}
	return &Ledger{
		schedule: schedule,
		payments: byCat,
		counts:   counts,
	}, nil
}

// Schedule exposes the derived installment amounts
func (l *Ledger) Schedule() Schedule {
	return l.schedule
}

// PaidCount returns how many distinct installments of a category are paid
func (l *Ledger) PaidCount(category Category) int {
	return l.counts[category]
}

// IsPaid returns true when the given installment has a recorded payment
func (l *Ledger) IsPaid(category Category, installmentNumber int) bool {
	_, ok := l.payments[category][installmentNumber]
	return ok
}

// IsCategoryPayable reports whether any installment of a category can be
// paid yet. Booking is always open. Allotment unlocks after the booking
// installment. Monthly and half-yearly unlock in parallel after the
// allotment installment. Possession unlocks only when every monthly and
// every half-yearly installment is settled.
func (l *Ledger) IsCategoryPayable(category Category) bool {
	switch category {
	case CategoryBooking:
		return true
	case CategoryAllotment:
		return l.counts[CategoryBooking] >= categories[CategoryBooking].Installments
	case CategoryMonthly, CategoryHalfYearly:
		return l.counts[CategoryAllotment] >= categories[CategoryAllotment].Installments
	case CategoryPossession:
		return l.counts[CategoryMonthly] >= categories[CategoryMonthly].Installments &&
			l.counts[CategoryHalfYearly] >= categories[CategoryHalfYearly].Installments
	}
	return false
}

// NextPayableInstallment returns the cursor of a category: the lowest
// installment number without a payment, or 0 when the category is fully
// paid. The cursor ignores whether the category itself is unlocked.
func (l *Ledger) NextPayableInstallment(category Category) int {
	for n := 1; n <= categories[category].Installments; n++ {
		if !l.IsPaid(category, n) {
			return n
		}
	}
	return 0
}

// IsInstallmentPayable reports whether one specific installment is the
// one that may be paid right now: its category is unlocked and it sits
// at the category cursor. Everything past the cursor stays locked so
// installments are always settled in order.
func (l *Ledger) IsInstallmentPayable(category Category, installmentNumber int) bool {
	if !l.IsCategoryPayable(category) {
		return false
	}
	return l.NextPayableInstallment(category) == installmentNumber
}

// AllotmentPaidDate returns when the allotment installment was paid, or
// nil while it is outstanding. It anchors the due-date chain.
func (l *Ledger) AllotmentPaidDate() *time.Time {
	p, ok := l.payments[CategoryAllotment][1]
	if !ok {
		return nil
	}
	d := p.PaidDate
	return &d
}

// LastPaidDateForCategory returns the paid date of the highest-numbered
// settled installment in a category, or nil when none is paid yet.
func (l *Ledger) LastPaidDateForCategory(category Category) *time.Time {
	var best *Payment
	for _, p := range l.payments[category] {
		if best == nil || p.InstallmentNumber > best.InstallmentNumber {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	d := best.PaidDate
	return &d
}

// NextDueDate computes the due date of a category's next payable
// installment, or nil for phases without due dates or before allotment
// is paid.
func (l *Ledger) NextDueDate(category Category) *time.Time {
	return DueDate(category, l.AllotmentPaidDate(), l.LastPaidDateForCategory(category))
}

// TotalReceived sums every recorded payment amount
func (l *Ledger) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, byNum := range l.payments {
		for _, p := range byNum {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Progress returns the received share of the total payable as a
// percentage between 0 and 100. A zero total reports zero progress.
func (l *Ledger) Progress() float64 {
	if l.schedule.Total.IsZero() {
		return 0
	}
	ratio, _ := l.TotalReceived().Div(l.schedule.Total).Mul(hundred).Float64()
	if ratio > 100 {
		ratio = 100
	}
	return ratio
}

// BuildStatement reconciles the whole plan into display rows. Each row
// is PAID, NEXT_PAYABLE or LOCKED; at most one row per category is
// NEXT_PAYABLE and only that row carries a due date.
func (l *Ledger) BuildStatement() Statement {
	stmt := Statement{
		Total:         l.schedule.Total,
		TotalReceived: l.TotalReceived(),
		Progress:      l.Progress(),
	}
	for _, cat := range CategoryOrder {
		cfg := categories[cat]
		cs := CategoryStatement{Category: cat, Label: cfg.Label}
		payable := l.IsCategoryPayable(cat)
		cursor := l.NextPayableInstallment(cat)
		for n := 1; n <= cfg.Installments; n++ {
			row := InstallmentRow{
				Category:          cat,
				InstallmentNumber: n,
				Expected:          l.schedule.ExpectedAmount(cat, n),
				State:             StateLocked,
			}
			if p, ok := l.payments[cat][n]; ok {
				row.State = StatePaid
				row.Payment = p
			} else if payable && cursor == n {
				row.State = StateNextPayable
				row.DueDate = l.NextDueDate(cat)
			}
			cs.Rows = append(cs.Rows, row)
		}
		stmt.Categories = append(stmt.Categories, cs)
	}
	return stmt
}
