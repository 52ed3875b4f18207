package models

import "time"

// Event represents a gig or concert listing created by a user.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	Genres    []string  `json:"genres"`    // genre tags used for scoring
	CreatorID string    `json:"creatorId"`
	Likes     []string  `json:"-"`         // user IDs that liked this event
	LikeCount int       `json:"likes"`     // derived from Likes, kept for JSON
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy sharing no memory with e.
func (e *Event) Clone() *Event {
	c := *e
	c.Genres = append([]string(nil), e.Genres...)
	c.Likes = append([]string(nil), e.Likes...)
	return &c
}

// Upcoming reports whether the event has not happened yet.
func (e *Event) Upcoming(now time.Time) bool {
	return e.Date.After(now)
}
