package parser

import "fmt"

// grid is a lazily grown row-major cell store. Rows and cells are created
// on first write; finish pads it to a rectangle and seals it.
type grid struct {
	rows [][]string
	// cells counts allocated cells across all rows. When limit is positive,
	// exceeding it marks the grid as over budget.
	cells    int
	limit    int
	finished bool
}

func (g *grid) ensureRow(r int) {
	for len(g.rows) <= r {
		g.rows = append(g.rows, nil)
	}
}

func (g *grid) set(r, c int, value string) {
	if g.finished {
		panic("parser: grid written after finish")
	}
	g.ensureRow(r)
	g.grow(r, c+1)
	g.rows[r][c] = value
}

func (g *grid) appendRow(row []string) {
	if g.finished {
		panic("parser: grid written after finish")
	}
	g.rows = append(g.rows, row)
	g.cells += len(row)
}

func (g *grid) grow(r, n int) {
	before := len(g.rows[r])
	g.rows[r] = growRow(g.rows[r], n)
	g.cells += len(g.rows[r]) - before
}

func (g *grid) rowCount() int {
	return len(g.rows)
}

func (g *grid) width() int {
	width := 0
	for _, row := range g.rows {
		width = max(width, len(row))
	}
	return width
}

// overBudget reports whether pending more cells would exceed the limit.
func (g *grid) overBudget(pending int) bool {
	return g.limit > 0 && g.cells+pending > g.limit
}

func (g *grid) budgetError() error {
	return fmt.Errorf("%w: more than %d cells", ErrSheetTooLarge, g.limit)
}

// checkBudget fails when the rectangle finish would build, widened by the
// given merges, holds more than limit cells. A negative limit disables it.
func (g *grid) checkBudget(merges []Region, limit int) error {
	if limit < 0 {
		return nil
	}
	rows, width := len(g.rows), g.width()
	for _, m := range merges {
		if m.Row1 < rows {
			width = max(width, m.Col2+1)
		}
	}
	if rows*width > limit {
		return fmt.Errorf("%w: %d rows x %d columns exceeds %d cells", ErrSheetTooLarge, rows, width, limit)
	}
	return nil
}

// applyMerges keeps each region's origin value and blanks every other
// cell it covers. Regions starting below the last row are ignored.
func (g *grid) applyMerges(regions []Region) {
	for _, m := range regions {
		if m.Row1 >= len(g.rows) {
			continue
		}
		last := min(m.Row2, len(g.rows)-1)

		for r := m.Row1; r <= last; r++ {
			g.grow(r, m.Col2+1)
		}

		origin := g.rows[m.Row1][m.Col1]
		for r := m.Row1; r <= last; r++ {
			for c := m.Col1; c <= m.Col2; c++ {
				g.rows[r][c] = ""
			}
		}
		g.rows[m.Row1][m.Col1] = origin
	}
}

// finish pads every row to the widest one and returns the rows. A grid
// without a single cell yields no rows. It runs once; later writes panic.
func (g *grid) finish() [][]string {
	if g.finished {
		return g.rows
	}
	g.finished = true

	width := g.width()
	if width == 0 {
		// Only empty rows were seen.
		g.rows = nil
		return nil
	}
	for i := range g.rows {
		g.grow(i, width)
	}
	return g.rows
}

func growRow(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
