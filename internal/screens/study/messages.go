package study

import "github.com/abhisek/ailearn/internal/chat"

// replyMsg carries the backend's answer for the placeholder at Ticket.
type replyMsg struct {
	Ticket chat.Ticket
	Text   string
}
