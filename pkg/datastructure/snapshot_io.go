package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

/*
WriteSnapshot writes s to w as bzip2 compressed text:

	width height seed start end pickup
	height+1 lines of width north-edge bits, z = 0 first
	height lines of width+1 west-edge bits, z = 0 first
	the path cells, space separated (may be empty)

absent cells (pickup, unknown start/end) are written as -1.
*/
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(bz)
	g := s.view()

	fmt.Fprintf(bw, "%d %d %d %d %d %d\n", g.width, g.height, s.seed,
		cellToInt(s.start), cellToInt(s.end), cellToInt(s.pickup))

	for z := 0; z <= g.height; z++ {
		for x := 0; x < g.width; x++ {
			bw.WriteByte(bitChar(g.northWalls[x][z]))
		}
		bw.WriteByte('\n')
	}

	for z := 0; z < g.height; z++ {
		for x := 0; x <= g.width; x++ {
			bw.WriteByte(bitChar(g.westWalls[x][z]))
		}
		bw.WriteByte('\n')
	}

	if s.path != nil {
		for i, c := range s.path.GetCells() {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatUint(uint64(c), 10))
		}
	}
	bw.WriteByte('\n')

	if err := bw.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

// ReadSnapshot decodes the output of WriteSnapshot. The visited set is not part of the format,
// the decoded path carries the path cells as its visited set.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	bz, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)
	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	line, err := readLine()
	if err != nil {
		return nil, err
	}
	var (
		width, height      int
		seed               int64
		start, end, pickup int64
	)
	if _, err := fmt.Sscanf(line, "%d %d %d %d %d %d", &width, &height, &seed, &start, &end, &pickup); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidSnapshot, err)
	}
	if width > MAX_GRID_DIMENSION || height > MAX_GRID_DIMENSION {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSnapshot, width, height, MAX_GRID_DIMENSION)
	}

	g, err := NewGrid(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	for z := 0; z <= height; z++ {
		line, err = readLine()
		if err != nil {
			return nil, err
		}
		if len(line) != width {
			return nil, fmt.Errorf("%w: north edge row %d has %d bits, want %d", ErrInvalidSnapshot, z, len(line), width)
		}
		for x := 0; x < width; x++ {
			v, err := parseBit(line[x])
			if err != nil {
				return nil, err
			}
			g.setNorthEdge(x, z, v)
		}
	}

	for z := 0; z < height; z++ {
		line, err = readLine()
		if err != nil {
			return nil, err
		}
		if len(line) != width+1 {
			return nil, fmt.Errorf("%w: west edge row %d has %d bits, want %d", ErrInvalidSnapshot, z, len(line), width+1)
		}
		for x := 0; x <= width; x++ {
			v, err := parseBit(line[x])
			if err != nil {
				return nil, err
			}
			g.setWestEdge(x, z, v)
		}
	}

	startCell, err := intToCell(g, start)
	if err != nil {
		return nil, err
	}
	endCell, err := intToCell(g, end)
	if err != nil {
		return nil, err
	}
	pickupCell, err := intToCell(g, pickup)
	if err != nil {
		return nil, err
	}

	if err := checkBoundary(g, startCell, endCell); err != nil {
		return nil, err
	}

	line, err = readLine()
	if err != nil {
		return nil, err
	}
	var path *Path
	if fields := strings.Fields(line); len(fields) > 0 {
		cells := make([]Index, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: path: %v", ErrInvalidSnapshot, err)
			}
			if cells[i], err = intToCell(g, v); err != nil || cells[i] == INVALID_CELL_ID {
				return nil, fmt.Errorf("%w: path cell %d", ErrInvalidSnapshot, v)
			}
		}
		path = NewPath(cells, setOf(cells))
	}

	s := NewSnapshot(g, seed, startCell, endCell, path)
	s.SetPickup(pickupCell)
	return s, nil
}

// checkBoundary allows open boundary walls only around the start cell and the end cell.
func checkBoundary(g *Grid, start, end Index) error {
	allowed := func(x, z int) bool {
		if !g.InBounds(x, z) {
			return false
		}
		c := g.cellIndex(x, z)
		return c == start || c == end
	}
	for x := 0; x < g.width; x++ {
		if !g.northWalls[x][0] && !allowed(x, 0) {
			return fmt.Errorf("%w: open south boundary at x=%d", ErrInvalidSnapshot, x)
		}
		if !g.northWalls[x][g.height] && !allowed(x, g.height-1) {
			return fmt.Errorf("%w: open north boundary at x=%d", ErrInvalidSnapshot, x)
		}
	}
	for z := 0; z < g.height; z++ {
		if !g.westWalls[0][z] && !allowed(0, z) {
			return fmt.Errorf("%w: open west boundary at z=%d", ErrInvalidSnapshot, z)
		}
		if !g.westWalls[g.width][z] && !allowed(g.width-1, z) {
			return fmt.Errorf("%w: open east boundary at z=%d", ErrInvalidSnapshot, z)
		}
	}
	return nil
}

func bitChar(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

func parseBit(c byte) (bool, error) {
	switch c {
	case '1':
		return true, nil
	case '0':
		return false, nil
	}
	return false, fmt.Errorf("%w: unexpected wall bit %q", ErrInvalidSnapshot, c)
}

func cellToInt(c Index) int64 {
	if c == INVALID_CELL_ID {
		return -1
	}
	return int64(c)
}

func intToCell(g *Grid, v int64) (Index, error) {
	if v == -1 {
		return INVALID_CELL_ID, nil
	}
	if v < 0 || v >= int64(g.NumberOfCells()) {
		return INVALID_CELL_ID, fmt.Errorf("%w: cell %d outside grid", ErrInvalidSnapshot, v)
	}
	return Index(v), nil
}
