package models

// Kinds a saved recommendation may reference. Closed enumeration:
// anything else is rejected at the API boundary.
const (
	RecommendationEvent    = "event"
	RecommendationMusician = "musician"
)

// ValidRecommendationKind reports whether kind is part of the closed set.
func ValidRecommendationKind(kind string) bool {
	return kind == RecommendationEvent || kind == RecommendationMusician
}

// SavedRecommendation is a bookmark on a scored item, unique per
// (user, kind, item) tuple.
type SavedRecommendation struct {
	Kind   string `json:"kind"` // event | musician
	ItemID string `json:"id"`
}

// ScoredEvent is an event together with its computed affinity score.
// Transient: computed per request, never persisted.
type ScoredEvent struct {
	Event *Event  `json:"event"`
	Score float64 `json:"score"`
}

// ScoredMusician is a musician profile with its affinity score.
type ScoredMusician struct {
	Musician PublicProfile `json:"musician"`
	Score    float64       `json:"score"`
}

// Recommendations is the full response of the recommendation engine.
type Recommendations struct {
	Message            string          `json:"message,omitempty"`
	Events             []ScoredEvent   `json:"events"`
	Musicians          []ScoredMusician `json:"musicians"`
	PriorCollaborators []PublicProfile `json:"priorCollaborators"`
}

// ResolvedRecommendation is a saved entry resolved against its target.
// Item is null when the referenced entity no longer exists.
type ResolvedRecommendation struct {
	Kind   string      `json:"kind"`
	ItemID string      `json:"id"`
	Item   interface{} `json:"item"`
}
