package models

import "time"

// Collab lifecycle states.
const (
	CollabOpen       = "abierto"
	CollabInProgress = "en progreso"
	CollabClosed     = "cerrado"
)

// Participant is a member of a collaboration together with the role
// they play in it ("vocalista", "guitarrista", ...).
type Participant struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// CollabMessage is one entry in a collaboration's live chat.
type CollabMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Collab represents a collaboration project between musicians.
type Collab struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	CreatorID    string          `json:"creatorId"`
	Description  string          `json:"description"`
	Genre        string          `json:"genre"`
	Tags         []string        `json:"tags"`
	Location     string          `json:"location"`
	Requirements string          `json:"requirements"`
	Participants []Participant   `json:"participants"`
	Chat         []CollabMessage `json:"chat"`
	Likes        []string        `json:"-"`
	State        string          `json:"state"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Clone returns a deep copy sharing no memory with c.
func (c *Collab) Clone() *Collab {
	out := *c
	out.Tags = append([]string(nil), c.Tags...)
	out.Participants = append([]Participant(nil), c.Participants...)
	out.Chat = append([]CollabMessage(nil), c.Chat...)
	out.Likes = append([]string(nil), c.Likes...)
	return &out
}

// HasParticipant reports whether userID is already a member.
func (c *Collab) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
