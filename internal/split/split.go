// Package split contains the expense-splitting arithmetic and the expense
// list filter. Everything here is pure: no storage, no transport.
package split

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNoParticipants is returned when an expense has nobody left to split
// between. Write-side validation rejects such expenses, so this is only
// reachable for data created outside the API.
var ErrNoParticipants = errors.New("expense has no participants to split between")

// Share is one participant's owed amount for a single expense.
type Share struct {
	Participant string  `json:"participant"`
	Amount      float64 `json:"amount"`
}

// BreakdownRow is a Share plus its rendered display line.
type BreakdownRow struct {
	Participant string  `json:"participant"`
	Amount      float64 `json:"amount"`
	Text        string  `json:"text"`
}

// ExcludePayer returns splitBetween without any occurrence of paidBy,
// preserving order. The payer never owes themselves.
func ExcludePayer(paidBy string, splitBetween []string) []string {
	out := make([]string, 0, len(splitBetween))
	for _, p := range splitBetween {
		if p != paidBy {
			out = append(out, p)
		}
	}
	return out
}

// Shares divides amount equally among splitBetween. Share amounts are not
// rounded; rounding happens only when a share is rendered.
func Shares(amount float64, splitBetween []string) ([]Share, error) {
	if len(splitBetween) == 0 {
		return nil, ErrNoParticipants
	}

	perPerson := amount / float64(len(splitBetween))
	shares := make([]Share, 0, len(splitBetween))
	for _, p := range splitBetween {
		shares = append(shares, Share{Participant: p, Amount: perPerson})
	}
	return shares, nil
}

// Breakdown renders the owed-amount lines for an expense, one per
// participant: "<participant> owes <payer> <amount>".
func Breakdown(paidBy string, amount float64, splitBetween []string) ([]BreakdownRow, error) {
	shares, err := Shares(amount, splitBetween)
	if err != nil {
		return nil, err
	}

	rows := make([]BreakdownRow, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, BreakdownRow{
			Participant: s.Participant,
			Amount:      s.Amount,
			Text:        fmt.Sprintf("%s owes %s %s", s.Participant, paidBy, FormatShare(s.Amount)),
		})
	}
	return rows, nil
}

// RoundHalfUp rounds to two decimal places, half away from zero upward.
// Currency display rounding; stored values are never rounded.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// FormatShare renders a share amount with exactly two decimals.
func FormatShare(v float64) string {
	return strconv.FormatFloat(RoundHalfUp(v), 'f', 2, 64)
}
