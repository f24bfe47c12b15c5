package vt

// blankRow returns a row of cols default cells, with bg used for the
// background color of each (spec.md's erase/scroll fill rule).
func blankRow(cols int, bg Color) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell(bg)
	}
	return row
}

func cloneRow(row []Cell) []Cell {
	c := make([]Cell, len(row))
	copy(c, row)
	return c
}

// pushScrollback appends row to the scrollback ring, evicting the
// oldest row first once maxScrollback is exceeded (spec.md §3).
func pushScrollback(sb [][]Cell, row []Cell, max int) [][]Cell {
	if max == 0 {
		return sb
	}
	sb = append(sb, row)
	if len(sb) > max {
		sb = sb[len(sb)-max:]
	}
	return sb
}
