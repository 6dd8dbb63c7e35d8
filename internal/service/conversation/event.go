package conversation

// EventKind discriminates inbound webhook events.
type EventKind int

const (
	// EventText is a plain text message.
	EventText EventKind = iota
	// EventButton is a tapped reply button; Value carries the button id.
	EventButton
	// EventList is a list selection; Value carries the item id.
	EventList
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventButton:
		return "button"
	case EventList:
		return "list"
	default:
		return "unknown"
	}
}

// Event is one inbound message, already unwrapped from the platform envelope.
type Event struct {
	Kind  EventKind
	Value string
}

// Button ids the engine understands. Anything else is ignored.
const (
	ButtonMenu        = "menu_button"
	ButtonContact     = "contact_button"
	ButtonAddMore     = "add_more"
	ButtonConfirm     = "confirm_order"
	ButtonPaymentDone = "payment_done"
)
