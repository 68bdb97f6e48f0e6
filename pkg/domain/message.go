package domain

import "context"

// Message is an outgoing message produced by a scene's view. The engine does
// not interpret its content; Meta carries platform hints (parse mode,
// keyboard name, attachment reference) opaque to the core.
type Message struct {
	Text string            `json:"text"`
	Meta map[string]string `json:"meta,omitempty"`
}

// Plain builds a text-only message.
func Plain(text string) Message {
	return Message{Text: text}
}

// MessageFunc produces the messages of a scene for one event. Scenes carry an
// ordered bag of these; the default view action walks the bag and sends
// everything it yields.
type MessageFunc func(ctx context.Context, ev *Context) ([]Message, error)

// StaticMessages wraps fixed texts into a MessageFunc.
func StaticMessages(texts ...string) MessageFunc {
	msgs := make([]Message, len(texts))
	for i, t := range texts {
		msgs[i] = Plain(t)
	}
	return func(context.Context, *Context) ([]Message, error) {
		return msgs, nil
	}
}
