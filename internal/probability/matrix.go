// Package probability computes pairwise win chances across a dice set. The
// numbers are advisory only: they are shown on a help request and never feed
// back into game state.
package probability

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/diceproof/diceduel/internal/dice"
)

// NotApplicable marks the diagonal cells; a die never plays against itself.
const NotApplicable = "-"

// pairings is the number of equally likely face pairings between two dice.
const pairings = dice.FaceCount * dice.FaceCount

// winCount returns how many of the 36 face pairings die a strictly beats die
// b. Ties count for neither side.
func winCount(a, b dice.FaceSet) int {
	wins := 0
	for i := 0; i < dice.FaceCount; i++ {
		for j := 0; j < dice.FaceCount; j++ {
			if a.Face(i) > b.Face(j) {
				wins++
			}
		}
	}
	return wins
}

// WinPercent formats the chance of die a strictly beating die b as a
// percentage with exactly two decimals, e.g. "55.56%". Decimal division keeps
// repeating fractions like 20/36 from picking up float drift.
func WinPercent(a, b dice.FaceSet) string {
	pct := decimal.NewFromInt(int64(winCount(a, b) * 100)).
		Div(decimal.NewFromInt(pairings))
	return pct.StringFixed(2) + "%"
}

// Matrix returns the full win table for the set. Cell (i, j) is the chance of
// die i beating die j; the diagonal is NotApplicable. The table is recomputed
// on every call so it always reflects the set it is given.
func Matrix(set dice.Set) [][]string {
	out := make([][]string, len(set))
	for i := range set {
		row := make([]string, len(set))
		for j := range set {
			if i == j {
				row[j] = NotApplicable
				continue
			}
			row[j] = WinPercent(set[i], set[j])
		}
		out[i] = row
	}
	return out
}

// Render produces the human-readable help table, rows and columns labeled by
// die index, with each die's faces listed alongside its row.
func Render(set dice.Set) string {
	var sb strings.Builder
	sb.WriteString("Chance of the row die beating the column die (ties favor neither):\n")

	w := tabwriter.NewWriter(&sb, 2, 0, 2, ' ', 0)
	fmt.Fprint(w, "die\tfaces")
	for j := range set {
		fmt.Fprintf(w, "\tvs %d", j)
	}
	fmt.Fprintln(w)

	for i, row := range Matrix(set) {
		fmt.Fprintf(w, "%d\t%s", i, set[i])
		for _, cell := range row {
			fmt.Fprintf(w, "\t%s", cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	return sb.String()
}
