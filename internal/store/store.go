package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// ErrFavoriteNotFound is returned when a favorite id does not exist.
var ErrFavoriteNotFound = errors.New("favorite not found")

type Store struct {
	DB *sql.DB
}

// Favorite is one saved page.
type Favorite struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWithDSN opens a Postgres connection and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) AddFavorite(ctx context.Context, title, url string) (Favorite, error) {
	f := Favorite{ID: uuid.NewString(), Title: title, URL: url, CreatedAt: time.Now().UTC()}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO favorites (id, title, url, created_at) VALUES ($1, $2, $3, $4)`,
		f.ID, f.Title, f.URL, f.CreatedAt)
	if err != nil {
		return Favorite{}, err
	}
	return f, nil
}

func (s *Store) ListFavorites(ctx context.Context) ([]Favorite, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, url, created_at FROM favorites ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Title, &f.URL, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) DeleteFavorite(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
