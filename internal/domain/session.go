package domain

// ConversationState tracks where a user is in the text-driven order flow.
type ConversationState int

const (
	// StateIdle means the user has no pending prompt.
	StateIdle ConversationState = iota
	// StateAwaitingMenuOrConfirm means the user was asked to reply
	// "menu" or "confirm" after adding an item. A user in this state
	// always has a non-empty cart.
	StateAwaitingMenuOrConfirm
)
