// Package report holds activity accountability entries published by a
// club: which activity ran, how many people joined, and what it cost.
package report

import (
	"strconv"
	"strings"
)

// Entry is one row in a club's public accountability report. Field
// tags match the wire format.
type Entry struct {
	Activity     string `json:"kegiatan"`
	Participants int    `json:"peserta"`
	Cost         int64  `json:"biaya"`
}

// Totals aggregates a report for the summary footer.
type Totals struct {
	Entries      int
	Participants int
	Cost         int64
}

// Summarize folds a report into totals.
// INVARIANT: entries slice is not mutated
func Summarize(entries []Entry) Totals {
	t := Totals{Entries: len(entries)}
	for _, e := range entries {
		t.Participants += e.Participants
		t.Cost += e.Cost
	}
	return t
}

// FormatRupiah renders an amount as "Rp 1.234.567". Negative amounts
// keep the sign in front of the prefix.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(".")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(".")
		}
	}
	return b.String()
}
