package datastructure

// Direction is one of the four sides of a cell. The numbering is clockwise starting at north,
// so rotating by one is a quarter turn.
type Direction uint8

const (
	NORTH Direction = iota
	EAST
	SOUTH
	WEST
)

const NUM_DIRECTIONS = 4

var (
	// unit deltas indexed by Direction. north is +z.
	DELTA_X = [NUM_DIRECTIONS]int{0, +1, 0, -1}
	DELTA_Z = [NUM_DIRECTIONS]int{+1, 0, -1, 0}

	Directions = [NUM_DIRECTIONS]Direction{NORTH, EAST, SOUTH, WEST}
)

func (d Direction) Opposite() Direction {
	return (d + 2) % NUM_DIRECTIONS
}

// Clockwise returns the direction a quarter turn to the right.
func (d Direction) Clockwise() Direction {
	return (d + 1) % NUM_DIRECTIONS
}

func (d Direction) CounterClockwise() Direction {
	return (d + NUM_DIRECTIONS - 1) % NUM_DIRECTIONS
}

func (d Direction) IsPerpendicular(other Direction) bool {
	return d%2 != other%2
}

func (d Direction) Valid() bool {
	return d < NUM_DIRECTIONS
}

func (d Direction) String() string {
	switch d {
	case NORTH:
		return "North"
	case EAST:
		return "East"
	case SOUTH:
		return "South"
	case WEST:
		return "West"
	default:
		return "Unknown"
	}
}

// ParseDirection accepts the names produced by String (case sensitive) and the single letters N, E, S, W.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "North", "N":
		return NORTH, true
	case "East", "E":
		return EAST, true
	case "South", "S":
		return SOUTH, true
	case "West", "W":
		return WEST, true
	}
	return 0, false
}
