package split

import (
	"strings"

	"github.com/splitmate/backend/internal/models"
)

// Filter narrows an expense list. Empty fields impose no constraint, so
// the zero Filter matches everything.
type Filter struct {
	// PaidBy keeps only expenses with exactly this payer.
	PaidBy string
	// Description keeps only expenses whose description contains this
	// value, case-insensitively.
	Description string
}

// Matches reports whether the expense passes both predicates.
func (f Filter) Matches(e models.Expense) bool {
	if f.PaidBy != "" && e.PaidBy != f.PaidBy {
		return false
	}
	if f.Description != "" &&
		!strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Description)) {
		return false
	}
	return true
}

// Apply returns the expenses that match, in their original order. The
// result is never nil so it serializes as an empty array.
func (f Filter) Apply(expenses []models.Expense) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
