package split

import (
	"errors"
	"math"
	"testing"
)

func TestExcludePayer(t *testing.T) {
	tests := []struct {
		name         string
		paidBy       string
		splitBetween []string
		want         []string
	}{
		{
			name:         "payer removed from middle",
			paidBy:       "B",
			splitBetween: []string{"A", "B", "C"},
			want:         []string{"A", "C"},
		},
		{
			name:         "payer not in list is a no-op",
			paidBy:       "D",
			splitBetween: []string{"A", "B", "C"},
			want:         []string{"A", "B", "C"},
		},
		{
			name:         "every occurrence of the payer is removed",
			paidBy:       "A",
			splitBetween: []string{"A", "B", "A", "C"},
			want:         []string{"B", "C"},
		},
		{
			name:         "payer-only list becomes empty",
			paidBy:       "A",
			splitBetween: []string{"A"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcludePayer(tt.paidBy, tt.splitBetween)
			if len(got) != len(tt.want) {
				t.Fatalf("ExcludePayer() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ExcludePayer() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestShares(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		splitBetween []string
		wantErr      bool
		wantEach     float64
	}{
		{
			name:         "equal split between two people",
			amount:       90.0,
			splitBetween: []string{"B", "C"},
			wantEach:     45.0,
		},
		{
			name:         "non-terminating division keeps full precision",
			amount:       100.0,
			splitBetween: []string{"A", "B", "C"},
			wantEach:     100.0 / 3.0,
		},
		{
			name:         "zero amount yields zero shares",
			amount:       0,
			splitBetween: []string{"A", "B"},
			wantEach:     0,
		},
		{
			name:         "no participants is an error",
			amount:       10.0,
			splitBetween: []string{},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Shares(tt.amount, tt.splitBetween)
			if tt.wantErr {
				if !errors.Is(err, ErrNoParticipants) {
					t.Fatalf("Shares() error = %v, want ErrNoParticipants", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Shares() unexpected error: %v", err)
			}
			if len(shares) != len(tt.splitBetween) {
				t.Fatalf("Shares() returned %d shares, want %d", len(shares), len(tt.splitBetween))
			}

			sum := 0.0
			for i, s := range shares {
				if s.Participant != tt.splitBetween[i] {
					t.Errorf("share %d participant = %q, want %q", i, s.Participant, tt.splitBetween[i])
				}
				if math.Abs(s.Amount-tt.wantEach) > 1e-9 {
					t.Errorf("share %d amount = %v, want %v", i, s.Amount, tt.wantEach)
				}
				sum += s.Amount
			}
			// Shares must reconstruct the full amount.
			if math.Abs(sum-tt.amount) > 1e-9 {
				t.Errorf("sum of shares = %v, want %v", sum, tt.amount)
			}
		})
	}
}

func TestBreakdown(t *testing.T) {
	rows, err := Breakdown("A", 90.0, []string{"B", "C"})
	if err != nil {
		t.Fatalf("Breakdown() unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Breakdown() returned %d rows, want 2", len(rows))
	}

	want := []string{"B owes A 45.00", "C owes A 45.00"}
	for i, row := range rows {
		if row.Text != want[i] {
			t.Errorf("row %d text = %q, want %q", i, row.Text, want[i])
		}
	}

	if _, err := Breakdown("A", 10.0, nil); !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("Breakdown() with no participants: error = %v, want ErrNoParticipants", err)
	}
}

func TestFormatShare(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "whole number keeps two decimals", value: 45.0, want: "45.00"},
		{name: "repeating decimal truncates after rounding", value: 100.0 / 3.0, want: "33.33"},
		{name: "half rounds up", value: 0.125, want: "0.13"},
		{name: "just below half rounds down", value: 10.114, want: "10.11"},
		{name: "zero", value: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatShare(tt.value); got != tt.want {
				t.Errorf("FormatShare(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
