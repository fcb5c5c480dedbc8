package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only. An empty ReceiverID marks a message for the
// general (broadcast) channel.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	ReceiverID string `json:"receiverId,omitempty"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"`
}

func (m ChatMessage) IsBroadcast() bool { return m.ReceiverID == "" }

// NewMessage stamps a fresh id and the current time in Unix milliseconds.
func NewMessage(senderID, senderName, receiverID, content string) ChatMessage {
	return ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		SenderName: senderName,
		ReceiverID: strings.TrimSpace(receiverID),
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
	}
}
