package models

import "time"

// Stream represents a scheduled or live streaming session.
type Stream struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatorID   string    `json:"creatorId"`
	URL         string    `json:"url"`
	Likes       []string  `json:"-"`
	LikeCount   int       `json:"likes"`
	Views       int       `json:"views"`
	Followers   []string  `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a deep copy sharing no memory with s.
func (s *Stream) Clone() *Stream {
	c := *s
	c.Likes = append([]string(nil), s.Likes...)
	c.Followers = append([]string(nil), s.Followers...)
	return &c
}
