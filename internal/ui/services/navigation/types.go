package navigation

// None is the hover index when no row is highlighted
const None = -1

// State holds the hover position over the current rows
type State struct {
	HoverIndex int
	Count      int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)
