package chat

import "time"

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one line of the chat log.
type Message struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// Config sets the typing delays.
type Config struct {
	ReplyDelay    time.Duration
	GuidanceDelay time.Duration
}
