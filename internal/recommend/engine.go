package recommend

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// Maximum entries returned per category.
const topN = 5

// Message returned when the user has no genre preferences yet.
const noPreferencesMessage = "No recommendations found. Add your music genres to your profile."

// Policy tunes candidate filtering and the score cutoff.
type Policy struct {
	// MinScore is the exclusive lower bound: candidates scoring at or
	// below it are discarded. 0 for the baseline tag policy, 0.5 for
	// the stricter embedding policy.
	MinScore float64
	// FilterLocation restricts the event pool to the user's location.
	FilterLocation bool
}

// Engine ranks events and musicians for a user. Read-only: it never
// mutates any store.
type Engine struct {
	Users   storage.UserStore
	Events  storage.EventStore
	Collabs storage.CollabStore
	Scorer  Scorer
	Policy  Policy
}

func NewEngine(users storage.UserStore, events storage.EventStore, collabs storage.CollabStore, scorer Scorer, policy Policy) *Engine {
	return &Engine{Users: users, Events: events, Collabs: collabs, Scorer: scorer, Policy: policy}
}

// Recommend computes the top events and musicians for the user plus the
// set of prior collaborators. A user with no genre preferences gets
// empty lists and an explanatory message, not an error. Any store
// failure aborts the whole computation; partial results are never
// returned.
func (e *Engine) Recommend(ctx context.Context, userID string) (*models.Recommendations, error) {
	user, err := e.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFound("user")
		}
		return nil, models.NewInternal(err)
	}

	if len(user.Genres) == 0 {
		return &models.Recommendations{
			Message:            noPreferencesMessage,
			Events:             []models.ScoredEvent{},
			Musicians:          []models.ScoredMusician{},
			PriorCollaborators: []models.PublicProfile{},
		}, nil
	}

	events, err := e.recommendEvents(ctx, user)
	if err != nil {
		return nil, models.NewInternal(err)
	}
	musicians, err := e.recommendMusicians(ctx, user)
	if err != nil {
		return nil, models.NewInternal(err)
	}
	collaborators, err := e.priorCollaborators(ctx, user)
	if err != nil {
		return nil, models.NewInternal(err)
	}

	log.Printf("[Recs] Generated recommendations for user %s: %d events, %d musicians, %d collaborators",
		userID, len(events), len(musicians), len(collaborators))
	return &models.Recommendations{
		Events:             events,
		Musicians:          musicians,
		PriorCollaborators: collaborators,
	}, nil
}

func (e *Engine) recommendEvents(ctx context.Context, user *models.User) ([]models.ScoredEvent, error) {
	location := ""
	if e.Policy.FilterLocation {
		location = user.Location
	}
	pool, err := e.Events.ListUpcoming(ctx, location)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredEvent, 0, len(pool))
	for _, event := range pool {
		s := e.Scorer.Score(ctx, user.Genres, event.Genres, len(event.Likes))
		if s <= e.Policy.MinScore {
			continue
		}
		scored = append(scored, models.ScoredEvent{Event: event, Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

func (e *Engine) recommendMusicians(ctx context.Context, user *models.User) ([]models.ScoredMusician, error) {
	pool, err := e.Users.ListMusicians(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredMusician, 0, len(pool))
	for _, musician := range pool {
		s := e.Scorer.Score(ctx, user.Genres, musician.Genres, musician.Likes)
		if s <= e.Policy.MinScore {
			continue
		}
		scored = append(scored, models.ScoredMusician{Musician: musician.Public(), Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// priorCollaborators flattens the participant lists of every
// collaboration the user belongs to, excluding the user and
// deduplicating by identity.
func (e *Engine) priorCollaborators(ctx context.Context, user *models.User) ([]models.PublicProfile, error) {
	collabs, err := e.Collabs.ListByParticipant(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []models.PublicProfile{}
	for _, collab := range collabs {
		for _, p := range collab.Participants {
			if p.UserID == user.ID {
				continue
			}
			if _, dup := seen[p.UserID]; dup {
				continue
			}
			seen[p.UserID] = struct{}{}
			other, err := e.Users.GetByID(ctx, p.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue // dangling participant reference
				}
				return nil, err
			}
			out = append(out, other.Public())
		}
	}
	return out, nil
}
