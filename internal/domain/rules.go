package domain

// RowHighlightable reports whether a correct cell in the given row may
// be shown as correct at this level. Levels 1-5 permit every row,
// level 6 only the top and bottom rows, level 7 only the middle row,
// and level 8 upward none.
func RowHighlightable(level, row int) bool {
	switch {
	case level <= 5:
		return true
	case level == 6:
		return row == 0 || row == 2
	case level == 7:
		return row == 1
	default:
		return false
	}
}
