// Package chat relays study questions to the chat backend and keeps the
// ordered conversation shown on the study screen.
package chat

import "strings"

const (
	// Greeting is the assistant message every conversation starts with.
	Greeting = "Hello! I'm your AI study assistant. How can I help you today?"

	// Placeholder marks an assistant reply that has not arrived yet.
	Placeholder = "..."
)

// Message is one entry in the conversation.
type Message struct {
	Text     string
	FromUser bool
	Pending  bool
}

// Roles used in Turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one settled exchange line sent to the backend as context.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Ticket identifies a pending placeholder so the reply lands in the right
// slot even if more messages were appended meanwhile.
type Ticket int

// Conversation is the ordered list of messages. Not safe for concurrent use.
type Conversation struct {
	messages []Message
}

// NewConversation returns a conversation holding only the greeting.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []Message{{Text: Greeting}},
	}
}

// Messages returns a copy of the messages in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Begin appends the user's input and a pending placeholder. Blank input is
// ignored and ok is false. The input is kept as typed.
func (c *Conversation) Begin(input string) (t Ticket, ok bool) {
	if strings.TrimSpace(input) == "" {
		return 0, false
	}
	c.messages = append(c.messages,
		Message{Text: input, FromUser: true},
		Message{Text: Placeholder, Pending: true},
	)
	return Ticket(len(c.messages) - 1), true
}

// Resolve replaces the placeholder for t with text. It reports false if t
// does not name a pending placeholder.
func (c *Conversation) Resolve(t Ticket, text string) bool {
	i := int(t)
	if i < 0 || i >= len(c.messages) || !c.messages[i].Pending {
		return false
	}
	c.messages[i] = Message{Text: text}
	return true
}

// Pending reports whether any reply is still outstanding.
func (c *Conversation) Pending() bool {
	for _, m := range c.messages {
		if m.Pending {
			return true
		}
	}
	return false
}

// LastAssistant returns the most recent non-user message.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if !c.messages[i].FromUser {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// History returns the answered part of the conversation, oldest first. The
// greeting is left out. A question whose reply is still pending or came
// back as ErrorReply or FallbackReply is dropped together with that reply.
func (c *Conversation) History() []Turn {
	var out []Turn
	for i, m := range c.messages {
		if i == 0 {
			continue
		}
		if m.FromUser {
			out = append(out, Turn{Role: RoleUser, Text: m.Text})
			continue
		}
		if m.Pending || m.Text == ErrorReply || m.Text == FallbackReply {
			if n := len(out); n > 0 && out[n-1].Role == RoleUser {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, Turn{Role: RoleAssistant, Text: m.Text})
	}
	return out
}
