package domain

// EventType tags the kind of platform update that reached the engine.
// Relations declare which event types they apply to; an event of a type
// no relation listens for always resolves as unhandled.
type EventType string

const (
	EventMessage       EventType = "message"
	EventCommand       EventType = "command"
	EventCallbackQuery EventType = "callback_query"
	EventEditedMessage EventType = "edited_message"
	EventPoll          EventType = "poll"
	EventPollAnswer    EventType = "poll_answer"
	EventChannelPost   EventType = "channel_post"
	EventChatMember    EventType = "chat_member"
)

// Event is a single platform update addressed to one (chat, user) session.
// The engine only interprets Type, ChatID and UserID; Text and Payload are
// passed through to predicates, hooks and views untouched.
type Event struct {
	Type    EventType      `json:"type"`
	ChatID  string         `json:"chat_id"`
	UserID  string         `json:"user_id"`
	Text    string         `json:"text,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SessionKey identifies the session the event belongs to.
func (e Event) SessionKey() string {
	return e.ChatID + "/" + e.UserID
}

// Result is the outcome of processing one event.
type Result struct {
	// Handled reports whether at least one scene was entered. A false value
	// means the dialog graph does not own this event; the caller is free to
	// dispatch it elsewhere.
	Handled bool `json:"handled"`

	// Chain lists the full names of the scenes entered during this run, in
	// order. A chain longer than one means transitional scenes were absorbed.
	Chain []string `json:"chain,omitempty"`
}
