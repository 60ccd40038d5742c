package domain

import "time"

// ParseMode is the rendering mode of an outgoing message
type ParseMode string

const (
	ParseModeNone       ParseMode = ""
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
)

// InboundMessage is a chat update reduced to what the router needs
type InboundMessage struct {
	UpdateID  int
	ChatID    int64
	SenderID  int64
	Text      string
	Command   string   // command name without slash, empty for plain text
	Args      []string // whitespace-split command arguments
	CreatedAt time.Time
}

// IsCommand reports whether the message is a slash command
func (m *InboundMessage) IsCommand() bool {
	return m.Command != ""
}

// OutgoingMessage is a message to deliver to one chat or broadcast to all admins
type OutgoingMessage struct {
	Text   string
	Mode   ParseMode
	Silent bool // deliver without a notification sound
}
