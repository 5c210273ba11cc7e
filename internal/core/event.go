package core

// Actions tag the events pushed to live connections. The strings are
// the wire values.
const (
	// ActionNewWish notifies clients that a wish was added.
	ActionNewWish = "new_wish"
	// ActionDeleteWish notifies clients that a wish was removed.
	ActionDeleteWish = "delete_wish"
	// ActionPong acknowledges an inbound liveness probe.
	ActionPong = "pong"
)

// Event describes a state change to broadcast. Exactly one of Wish and
// ID is set depending on the action; neither ever carries a password
// digest.
type Event struct {
	Action string
	Wish   *View  // set for ActionNewWish
	ID     string // set for ActionDeleteWish
}

// NewWishEvent builds the broadcast event for a freshly stored wish.
func NewWishEvent(v View) *Event {
	return &Event{Action: ActionNewWish, Wish: &v}
}

// DeleteWishEvent builds the broadcast event for a deleted wish.
func DeleteWishEvent(id string) *Event {
	return &Event{Action: ActionDeleteWish, ID: id}
}

// PongEvent builds the acknowledgment for a liveness probe. It is sent
// to the probing connection only, never broadcast.
func PongEvent() *Event {
	return &Event{Action: ActionPong}
}
