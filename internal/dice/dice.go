// Package dice models the configurable six-faced dice the duel is played
// with. A die is an ordered list of exactly six integer faces; duplicates are
// allowed, which is how a face's effective probability can exceed 1/6.
package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

const (
	// FaceCount is the number of faces every die must have.
	FaceCount = 6

	// MinDice is the smallest playable set. A meaningful non-transitive
	// comparison needs at least three options.
	MinDice = 3
)

// FaceSet is the immutable face list of a single die. Construct it with
// ParseFaceSet; the zero value is not a valid die.
type FaceSet struct {
	faces [FaceCount]int
}

// ParseFaceSet parses a configuration token of the form "2,2,4,4,9,9" into a
// FaceSet. The error names the offending token so the operator can fix the
// right argument.
func ParseFaceSet(token string) (FaceSet, error) {
	parts := strings.Split(token, ",")
	if len(parts) != FaceCount {
		return FaceSet{}, fmt.Errorf("die %q: expected exactly %d comma-separated integers, got %d", token, FaceCount, len(parts))
	}

	var fs FaceSet
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return FaceSet{}, fmt.Errorf("die %q: face %q is not an integer", token, part)
		}
		fs.faces[i] = v
	}

	return fs, nil
}

// Face returns the face value at position i.
func (f FaceSet) Face(i int) int {
	return f.faces[i]
}

// Faces returns a copy of the face values in configuration order.
func (f FaceSet) Faces() []int {
	out := make([]int, FaceCount)
	copy(out, f.faces[:])
	return out
}

// Roll returns one face chosen uniformly (1/6 per position) from crypto/rand.
// A validated FaceSet cannot produce an out-of-range roll.
func (f FaceSet) Roll() int {
	n, _ := rand.Int(rand.Reader, big.NewInt(FaceCount))
	return f.faces[n.Int64()]
}

// String renders the die back in its configuration form.
func (f FaceSet) String() string {
	parts := make([]string, FaceCount)
	for i, v := range f.faces {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Set is the full collection of dice available for one duel. Index order
// matches the configuration order and is how dice are presented and selected.
type Set []FaceSet

// ParseSet parses all configuration tokens into a Set. Token errors are
// aggregated so a single run reports every bad die, not just the first.
func ParseSet(tokens []string) (Set, error) {
	if len(tokens) < MinDice {
		return nil, fmt.Errorf("at least %d dice are required, got %d", MinDice, len(tokens))
	}

	var errs error
	set := make(Set, 0, len(tokens))
	for _, token := range tokens {
		fs, err := ParseFaceSet(token)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		set = append(set, fs)
	}
	if errs != nil {
		return nil, errs
	}

	return set, nil
}
