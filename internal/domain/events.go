package domain

// EventType represents the type of widget event
type EventType string

// Event types
const (
	EventShow          EventType = "show"
	EventHide          EventType = "hide"
	EventItemSelect    EventType = "item-select"
	EventItemUnselect  EventType = "item-unselect"
	EventSelectionMade EventType = "selection-made"
	EventFetchFailed   EventType = "fetch-failed"
)

// DomainEvent is the interface for all widget events
type DomainEvent interface {
	Type() EventType
	// Origin is the id of the widget that raised the event, "" for page-wide events
	Origin() string
}

// ShowEvent is emitted after a non-empty result set has been rendered
type ShowEvent struct {
	Source string
}

func (e ShowEvent) Type() EventType { return EventShow }
func (e ShowEvent) Origin() string  { return e.Source }

// HideEvent closes the dropdown. An empty Source hides every widget on the page.
type HideEvent struct {
	Source string
}

func (e HideEvent) Type() EventType { return EventHide }
func (e HideEvent) Origin() string  { return e.Source }

// ItemSelectEvent is emitted when a row is hovered or reached by keyboard
type ItemSelectEvent struct {
	Source string
	Index  int
}

func (e ItemSelectEvent) Type() EventType { return EventItemSelect }
func (e ItemSelectEvent) Origin() string  { return e.Source }

// ItemUnselectEvent is emitted when the pointer leaves a row
type ItemUnselectEvent struct {
	Source string
	Index  int
}

func (e ItemUnselectEvent) Type() EventType { return EventItemUnselect }
func (e ItemUnselectEvent) Origin() string  { return e.Source }

// SelectionMadeEvent is emitted after a row has been committed into the input
type SelectionMadeEvent struct {
	Source string
	Row    Row
}

func (e SelectionMadeEvent) Type() EventType { return EventSelectionMade }
func (e SelectionMadeEvent) Origin() string  { return e.Source }

// FetchFailedEvent is emitted when a suggestion request fails.
// The widget itself shows nothing for it.
type FetchFailedEvent struct {
	Source string
	URL    string
	Term   string
	Err    error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }
func (e FetchFailedEvent) Origin() string  { return e.Source }
