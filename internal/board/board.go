// Package board holds the mutable 3x3 entry grid for one round.
package board

import (
	"math/rand"

	"svw.info/sumgrid/internal/domain"
)

// Board tracks the entry grid, the pending duplicate pair, and derived
// row/column sums. It is not safe for concurrent use; the owning
// session serializes access.
type Board struct {
	solution domain.Solution
	cells    [9]uint8
	dup      *domain.DuplicatePair
	rng      *rand.Rand
}

// New builds a board for the puzzle, seeded with its givens.
func New(p *domain.Puzzle, rng *rand.Rand) *Board {
	b := &Board{solution: p.Solution, rng: rng}
	for i, v := range p.Givens {
		if v != 0 {
			b.cells[i] = v
		}
	}
	return b
}

// parse maps the boundary string form to the internal digit.
// Anything other than "" or "1".."9" is invalid.
func parse(v string) (uint8, bool) {
	if v == "" {
		return 0, true
	}
	if len(v) != 1 || v[0] < '1' || v[0] > '9' {
		return 0, false
	}
	return v[0] - '0', true
}

// SetCell writes v to the cell ("" clears it). Invalid input or index
// is rejected without mutation. A colliding digit still lands: the
// collision is recorded as the pending duplicate pair, replacing any
// earlier one. A write that leaves a pending pair's cells unequal
// resolves the pair.
func (b *Board) SetCell(idx int, v string) bool {
	if idx < 0 || idx >= len(b.cells) {
		return false
	}
	d, ok := parse(v)
	if !ok {
		return false
	}
	b.cells[idx] = d
	if d != 0 {
		if other := b.indexOf(d, idx); other >= 0 {
			b.dup = &domain.DuplicatePair{A: other, B: idx, Clear: idx}
			return true
		}
	}
	if b.dup != nil && (b.cells[b.dup.A] == 0 || b.cells[b.dup.A] != b.cells[b.dup.B]) {
		b.dup = nil
	}
	return true
}

// ClearCell empties the cell.
func (b *Board) ClearCell(idx int) bool { return b.SetCell(idx, "") }

// indexOf returns a cell other than except holding d, or -1.
func (b *Board) indexOf(d uint8, except int) int {
	for i, v := range b.cells {
		if i != except && v == d {
			return i
		}
	}
	return -1
}

// ExpireDuplicate applies the timed invalidation: the most recent
// offender is emptied and the marker dropped. Reports whether a pair
// was pending.
func (b *Board) ExpireDuplicate() bool {
	if b.dup == nil {
		return false
	}
	b.cells[b.dup.Clear] = 0
	b.dup = nil
	return true
}

// Duplicate returns the pending duplicate pair, if any.
func (b *Board) Duplicate() (domain.DuplicatePair, bool) {
	if b.dup == nil {
		return domain.DuplicatePair{}, false
	}
	return *b.dup, true
}

// Value returns the cell in its boundary string form ("" when empty).
func (b *Board) Value(idx int) string {
	if idx < 0 || idx >= len(b.cells) || b.cells[idx] == 0 {
		return ""
	}
	return string('0' + rune(b.cells[idx]))
}

// Cells returns a copy of the raw grid (0 = empty).
func (b *Board) Cells() [9]uint8 { return b.cells }

// RowSum sums the filled cells of row r, empty cells counting 0.
func (b *Board) RowSum(r int) int {
	sum := 0
	for c := 0; c < 3; c++ {
		sum += int(b.cells[r*3+c])
	}
	return sum
}

// ColSum sums the filled cells of column c, empty cells counting 0.
func (b *Board) ColSum(c int) int {
	sum := 0
	for r := 0; r < 3; r++ {
		sum += int(b.cells[r*3+c])
	}
	return sum
}

// IsComplete reports whether all 9 cells are filled with pairwise
// distinct digits, i.e. the filled multiset is exactly {1..9}.
func (b *Board) IsComplete() bool {
	m := 0
	for _, v := range b.cells {
		if v == 0 {
			return false
		}
		bit := 1 << v
		if m&bit != 0 {
			return false
		}
		m |= bit
	}
	return true
}

// IsFullyCorrect reports whether every cell equals its solution digit.
// This is the authoritative win predicate; matching row/column sums is
// necessary but not sufficient.
func (b *Board) IsFullyCorrect() bool {
	for i, v := range b.cells {
		if v != b.solution[i] {
			return false
		}
	}
	return true
}

// RevealHint fills one uniformly random empty cell with its solution
// digit through the normal write path, so duplicate detection stays in
// force. Returns the index, or false on a full grid.
func (b *Board) RevealHint() (int, bool) {
	empty := make([]int, 0, len(b.cells))
	for i, v := range b.cells {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return -1, false
	}
	idx := empty[b.rng.Intn(len(empty))]
	b.SetCell(idx, string('0'+rune(b.solution[idx])))
	return idx, true
}
