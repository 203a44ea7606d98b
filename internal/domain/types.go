package domain

// Solution is a permutation of the digits 1..9 laid out row-major on the
// 3x3 grid: index = row*3 + col.
type Solution [9]uint8

// Targets holds the row and column sums a filled grid must reach.
type Targets struct {
	Rows [3]int `json:"rows"`
	Cols [3]int `json:"cols"`
}

// Targets derives the row/column sums for this solution. Both triples
// always total 45, the sum of 1..9.
func (s Solution) Targets() Targets {
	var t Targets
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := int(s[r*3+c])
			t.Rows[r] += v
			t.Cols[c] += v
		}
	}
	return t
}

// Puzzle is one round's board definition.
type Puzzle struct {
	Solution Solution `json:"-"`
	Targets  Targets  `json:"targets"`
	Givens   [9]uint8 `json:"givens"`
	Seed     int64    `json:"seed,omitempty"`
	Level    int      `json:"level"`
}

// DuplicatePair marks two cells holding the same digit, pending forced
// resolution. Clear is the cell the timed invalidation will empty
// (always the most recent write).
type DuplicatePair struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Clear int `json:"clear"`
}

// Snapshot is the immutable view of a session handed to observers.
type Snapshot struct {
	Cells      [9]string      `json:"cells"`
	Targets    Targets        `json:"targets"`
	RowSums    [3]int         `json:"rowSums"`
	ColSums    [3]int         `json:"colSums"`
	Duplicate  *DuplicatePair `json:"duplicate,omitempty"`
	Correct    [9]bool        `json:"correct"`
	Score      int            `json:"score"`
	Level      int            `json:"level"`
	TimeLeft   int            `json:"timeLeft"`
	ShowErrors bool           `json:"showErrors"`
	State      State          `json:"state"`
}
