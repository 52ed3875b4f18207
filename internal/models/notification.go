package models

import "time"

// Notification is a persisted alert for a single user. The read flag
// only ever transitions unread -> read.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy sharing no memory with n.
func (n *Notification) Clone() *Notification {
	c := *n
	return &c
}
