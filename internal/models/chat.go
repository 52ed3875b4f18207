package models

type ChatMessage struct {
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type ChatConversation struct {
	ID           string        `json:"id"`
	Participants [2]string     `json:"participants"` // always 2 for a direct chat
	Messages     []ChatMessage `json:"messages"`
}

// Clone returns a deep copy sharing no memory with c.
func (c *ChatConversation) Clone() *ChatConversation {
	out := *c
	out.Messages = append([]ChatMessage(nil), c.Messages...)
	return &out
}
