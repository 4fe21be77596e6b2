package datastructure

import "strings"

// String draws the maze with north at the top.
func (g *Grid) String() string {
	return g.render(func(cell Index) string { return "   " })
}

// Render draws the snapshot, marking start S, end E, pickup P and, when showPath is set, path cells.
func (s *Snapshot) Render(showPath bool) string {
	onPath := make(map[Index]struct{})
	if showPath && s.path != nil {
		for _, c := range s.path.GetCells() {
			onPath[c] = struct{}{}
		}
	}

	return s.view().render(func(cell Index) string {
		switch {
		case cell == s.start:
			return " S "
		case cell == s.end:
			return " E "
		case cell == s.pickup:
			return " P "
		}
		if _, ok := onPath[cell]; ok {
			return " . "
		}
		return "   "
	})
}

func (g *Grid) render(label func(cell Index) string) string {
	var sb strings.Builder

	horizontal := func(z int) {
		sb.WriteString("+")
		for x := 0; x < g.width; x++ {
			if g.northWalls[x][z] {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	horizontal(g.height)
	for z := g.height - 1; z >= 0; z-- {
		if g.westWalls[0][z] {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for x := 0; x < g.width; x++ {
			sb.WriteString(label(g.cellIndex(x, z)))
			if g.westWalls[x+1][z] {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
		horizontal(z)
	}

	return sb.String()
}
