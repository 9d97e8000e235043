package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigateEmptyListIsNoop(t *testing.T) {
	s := NewService()

	assert.False(t, s.Navigate(DirectionDown))
	assert.False(t, s.Navigate(DirectionUp))
	assert.Equal(t, None, s.HoverIndex())
}

func TestDownWrapsAfterFullCycle(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		s := NewService()
		s.SetCount(n)

		for i := 0; i < n; i++ {
			s.Navigate(DirectionDown)
			assert.Equal(t, i, s.HoverIndex())
		}
		// one more press wraps from the last row to the first
		s.Navigate(DirectionDown)
		assert.Equal(t, 0, s.HoverIndex(), "n=%d", n)
	}
}

func TestUpFromNoneAndZeroWrapsToLast(t *testing.T) {
	s := NewService()
	s.SetCount(3)

	s.Navigate(DirectionUp)
	assert.Equal(t, 2, s.HoverIndex())

	s.Select(0)
	s.Navigate(DirectionUp)
	assert.Equal(t, 2, s.HoverIndex())

	s.Navigate(DirectionUp)
	assert.Equal(t, 1, s.HoverIndex())
}

func TestSetCountResetsHover(t *testing.T) {
	s := NewService()
	s.SetCount(4)
	s.Select(3)

	s.SetCount(2)
	assert.Equal(t, None, s.HoverIndex())
	assert.Equal(t, 2, s.Count())
}

func TestSelectOutOfRangeClears(t *testing.T) {
	s := NewService()
	s.SetCount(2)
	s.Select(1)
	assert.Equal(t, 1, s.HoverIndex())

	s.Select(5)
	assert.Equal(t, None, s.HoverIndex())
	s.Select(-3)
	assert.Equal(t, None, s.HoverIndex())
}
