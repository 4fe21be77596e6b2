package datastructure

import (
	"github.com/spakin/disjoint"
)

// ConnectivityReport describes the cell graph induced by the open interior walls.
type ConnectivityReport struct {
	Cells      int
	OpenEdges  int
	Components int
	// Cycles is the number of open edges that joined two cells already connected.
	Cycles int
}

// IsSpanningTree reports whether the open edges connect every cell without a cycle,
// i.e. exactly cells-1 edges in one component.
func (r ConnectivityReport) IsSpanningTree() bool {
	return r.Components == 1 && r.Cycles == 0
}

func (r ConnectivityReport) IsConnected() bool {
	return r.Components == 1
}

// AnalyzeConnectivity runs union-find over the open interior walls.
func AnalyzeConnectivity(g *Grid) ConnectivityReport {
	n := g.NumberOfCells()
	elements := make([]*disjoint.Element, n)
	for i := range elements {
		elements[i] = disjoint.NewElement()
	}

	report := ConnectivityReport{Cells: n, Components: n}
	join := func(a, b Index) {
		report.OpenEdges++
		if elements[a].Find() == elements[b].Find() {
			report.Cycles++
			return
		}
		disjoint.Union(elements[a], elements[b])
		report.Components--
	}

	// each interior edge once: the north side of rows below the top and the east side of columns
	// left of the last one.
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			cell := g.cellIndex(x, z)
			if z+1 < g.height && !g.northWalls[x][z+1] {
				join(cell, g.cellIndex(x, z+1))
			}
			if x+1 < g.width && !g.westWalls[x+1][z] {
				join(cell, g.cellIndex(x+1, z))
			}
		}
	}
	return report
}

// ComponentOf returns all cells reachable from cell through open walls.
func ComponentOf(g *Grid, cell Index) []Index {
	seen := make([]bool, g.NumberOfCells())
	stack := []Index{cell}
	seen[cell] = true
	component := make([]Index, 0)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, cur)
		for _, n := range g.OpenNeighbors(cur) {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return component
}
