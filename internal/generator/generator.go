package generator

import (
	"math/rand"

	"svw.info/sumgrid/internal/domain"
)

// Shuffler creates puzzles from an unbiased permutation of 1..9.
type Shuffler struct{}

// New wires a generator. Generation is pure and never fails: 9!
// equally likely boards per seed space.
func New() *Shuffler { return &Shuffler{} }

// givensForLevel maps the level to the count of pre-filled cells.
// The table is fixed: 4 down to 1 for levels 1-4, none from level 5 on.
func givensForLevel(level int) int {
	switch {
	case level <= 1:
		return 4
	case level == 2:
		return 3
	case level == 3:
		return 2
	case level == 4:
		return 1
	default:
		return 0
	}
}

// Generate produces a puzzle for the given level: a random solution
// permutation, its derived row/column targets, and a random subset of
// cells seeded with their correct digits.
func (g *Shuffler) Generate(seed int64, level int) *domain.Puzzle {
	rng := rand.New(rand.NewSource(seed))

	var sol domain.Solution
	for i := range sol {
		sol[i] = uint8(i + 1)
	}
	rng.Shuffle(len(sol), func(i, j int) { sol[i], sol[j] = sol[j], sol[i] })

	var givens [9]uint8
	for _, idx := range rng.Perm(9)[:givensForLevel(level)] {
		givens[idx] = sol[idx]
	}

	return &domain.Puzzle{
		Solution: sol,
		Targets:  sol.Targets(),
		Givens:   givens,
		Seed:     seed,
		Level:    level,
	}
}
