package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// UserStore implements storage.UserStore on PostgreSQL.
//
// Schema:
//
//	CREATE TABLE users (
//	    id         TEXT PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    email      TEXT NOT NULL UNIQUE,
//	    password   TEXT NOT NULL,
//	    type       TEXT NOT NULL,
//	    bio        TEXT NOT NULL DEFAULT '',
//	    location   TEXT NOT NULL DEFAULT '',
//	    genres     TEXT[] NOT NULL DEFAULT '{}',
//	    premium    BOOLEAN NOT NULL DEFAULT FALSE,
//	    likes      INTEGER NOT NULL DEFAULT 0,
//	    followers  TEXT[] NOT NULL DEFAULT '{}',
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE saved_recommendations (
//	    user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
//	    kind     TEXT NOT NULL,
//	    item_id  TEXT NOT NULL,
//	    saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (user_id, kind, item_id)
//	);
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, name, email, password, type, bio, location, genres, premium, likes, followers, created_at"

func (s *UserStore) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Type, &u.Bio, &u.Location,
		pq.Array(&u.Genres), &u.Premium, &u.Likes, pq.Array(&u.Followers), &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Type,
		u.Bio, u.Location, pq.Array(u.Genres), u.Premium, u.Likes, pq.Array(u.Followers), u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return models.NewValidation("a user with that email already exists")
		}
		log.Printf("[DB] Error creating user: %v", err)
		return err
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET name = $2, email = $3, password = $4, type = $5, bio = $6,
		location = $7, genres = $8, premium = $9, likes = $10, followers = $11 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Type,
		u.Bio, u.Location, pq.Array(u.Genres), u.Premium, u.Likes, pq.Array(u.Followers))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) ListMusicians(ctx context.Context, excludeID string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE type = $1 AND id <> $2 ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, models.UserTypeMusician, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := s.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *UserStore) SaveRecommendation(ctx context.Context, userID string, ref models.SavedRecommendation) (bool, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return false, err
	}
	query := `INSERT INTO saved_recommendations (user_id, kind, item_id) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, kind, item_id) DO NOTHING`
	res, err := s.db.ExecContext(ctx, query, userID, ref.Kind, ref.ItemID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserStore) ListSaved(ctx context.Context, userID string) ([]models.SavedRecommendation, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	// Save order, matching the in-memory backend.
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, item_id FROM saved_recommendations WHERE user_id = $1 ORDER BY saved_at, item_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SavedRecommendation
	for rows.Next() {
		var ref models.SavedRecommendation
		if err := rows.Scan(&ref.Kind, &ref.ItemID); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (s *UserStore) DeleteSaved(ctx context.Context, userID, itemID string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_recommendations WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	return err
}
