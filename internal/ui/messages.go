package ui

// statusClearMsg clears the status line if it still shows generation gen
type statusClearMsg struct {
	gen int
}
