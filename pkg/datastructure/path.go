package datastructure

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Path is a search result: the cells from start to end (inclusive) and every cell the search touched.
type Path struct {
	cells   []Index
	visited mapset.Set[Index]
}

func NewPath(cells []Index, visited mapset.Set[Index]) *Path {
	return &Path{
		cells:   cells,
		visited: visited,
	}
}

func (p *Path) GetCells() []Index {
	return p.cells
}

func (p *Path) GetVisited() mapset.Set[Index] {
	return p.visited
}

func (p *Path) Len() int {
	return len(p.cells)
}

func (p *Path) GetStart() Index {
	if len(p.cells) == 0 {
		return INVALID_CELL_ID
	}
	return p.cells[0]
}

func (p *Path) GetEnd() Index {
	if len(p.cells) == 0 {
		return INVALID_CELL_ID
	}
	return p.cells[len(p.cells)-1]
}

func (p *Path) Contains(cell Index) bool {
	for _, c := range p.cells {
		if c == cell {
			return true
		}
	}
	return false
}

// VisitedCells returns the visited set in ascending order.
func (p *Path) VisitedCells() []Index {
	cells := make([]Index, 0, p.visited.Size())
	p.visited.Each(func(c Index) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(i, j int) bool { return cells[i] < cells[j] })
	return cells
}

func (p *Path) Clone() *Path {
	visited := mapset.New[Index]()
	p.visited.Each(func(c Index) {
		visited.Put(c)
	})
	return NewPath(append([]Index(nil), p.cells...), visited)
}

func setOf(cells []Index) mapset.Set[Index] {
	s := mapset.New[Index]()
	for _, c := range cells {
		s.Put(c)
	}
	return s
}
