package navigation

// Service tracks which row is highlighted. Movement wraps at both ends and
// the index is always None or a valid row.
type Service struct {
	state State
}

// NewService creates a navigator over an empty list
func NewService() *Service {
	return &Service{state: State{HoverIndex: None}}
}

// HoverIndex returns the highlighted row, or None
func (s *Service) HoverIndex() int {
	return s.state.HoverIndex
}

// Count returns the number of rows being navigated
func (s *Service) Count() int {
	return s.state.Count
}

// SetCount replaces the row list size and clears the highlight
func (s *Service) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.state.Count = n
	s.state.HoverIndex = None
}

// Reset clears the highlight
func (s *Service) Reset() {
	s.state.HoverIndex = None
}

// Select highlights index. Out of range values clear the highlight.
func (s *Service) Select(index int) {
	if index < 0 || index >= s.state.Count {
		s.state.HoverIndex = None
		return
	}
	s.state.HoverIndex = index
}

// Navigate moves the highlight one row, wrapping around.
// It reports false when there are no rows.
func (s *Service) Navigate(direction Direction) bool {
	if s.state.Count == 0 {
		return false
	}

	switch direction {
	case DirectionUp:
		s.moveUp()
	case DirectionDown:
		s.moveDown()
	default:
		return false
	}
	return true
}

func (s *Service) moveUp() {
	if s.state.HoverIndex <= 0 {
		s.state.HoverIndex = s.state.Count - 1
		return
	}
	s.state.HoverIndex--
}

func (s *Service) moveDown() {
	if s.state.HoverIndex == None || s.state.HoverIndex >= s.state.Count-1 {
		s.state.HoverIndex = 0
		return
	}
	s.state.HoverIndex++
}
