package models

import "time"

// User account types. Events and venues may be created by any type,
// but only "musico" profiles are candidates for musician recommendations.
const (
	UserTypeMusician = "musico"
	UserTypeProducer = "productor"
	UserTypeVenue    = "venue"
)

// ValidUserType reports whether t is one of the known account types.
func ValidUserType(t string) bool {
	return t == UserTypeMusician || t == UserTypeProducer || t == UserTypeVenue
}

// User represents a platform account. Genres drive all recommendation
// scoring; Location is a free-text string matched verbatim.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	Type         string    `json:"type"`       // musico | productor | venue
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Genres       []string  `json:"genres"`     // music-genre interest tags
	Premium      bool      `json:"premium"`
	Likes        int       `json:"likes"`      // received "me gusta" count
	Followers    []string  `json:"-"`          // user IDs following this account
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicProfile is the projection of a User safe to return to other
// users (no email, no follower list).
type PublicProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Bio      string   `json:"bio"`
	Location string   `json:"location"`
	Genres   []string `json:"genres"`
	Likes    int      `json:"likes"`
}

// Clone returns a deep copy sharing no memory with u.
func (u *User) Clone() *User {
	c := *u
	c.Genres = append([]string(nil), u.Genres...)
	c.Followers = append([]string(nil), u.Followers...)
	return &c
}

// Public returns the shareable projection of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Name:     u.Name,
		Type:     u.Type,
		Bio:      u.Bio,
		Location: u.Location,
		Genres:   u.Genres,
		Likes:    u.Likes,
	}
}
