package redis_repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const historyKey = "history:entries"

// HistoryEntry is one recorded search or page visit. Kind distinguishes the
// two; Query is set for searches, URL/Title for visits.
type HistoryEntry struct {
	ID    string    `json:"id"`
	Kind  string    `json:"kind"`
	Query string    `json:"query,omitempty"`
	URL   string    `json:"url,omitempty"`
	Title string    `json:"title,omitempty"`
	At    time.Time `json:"at"`
}

const (
	HistoryKindSearch = "search"
	HistoryKindVisit  = "visit"
)

// HistoryRepository keeps a bounded, newest-first list of history entries in
// Redis. Entries beyond MaxEntries are trimmed on write.
type HistoryRepository struct {
	Client     *redis.Client
	MaxEntries int
}

func (r *HistoryRepository) Add(ctx context.Context, e HistoryEntry) (HistoryEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return HistoryEntry{}, err
	}
	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, historyKey, data)
	if r.MaxEntries > 0 {
		pipe.LTrim(ctx, historyKey, 0, int64(r.MaxEntries-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return HistoryEntry{}, err
	}
	return e, nil
}

// Recent returns up to n entries, newest first. Entries that fail to decode
// are skipped rather than failing the whole read.
func (r *HistoryRepository) Recent(ctx context.Context, n int) ([]HistoryEntry, error) {
	if n <= 0 {
		n = 50
	}
	vals, err := r.Client.LRange(ctx, historyKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(vals))
	for _, v := range vals {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *HistoryRepository) Clear(ctx context.Context) error {
	return r.Client.Del(ctx, historyKey).Err()
}

// PruneOlderThan drops entries recorded before the cutoff. The list is
// rewritten atomically; an empty survivor set just deletes the key.
func (r *HistoryRepository) PruneOlderThan(ctx context.Context, age time.Duration) (int, error) {
	vals, err := r.Client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-age)
	var keep []any
	for _, v := range vals {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		if e.At.After(cutoff) {
			keep = append(keep, v)
		}
	}
	pruned := len(vals) - len(keep)
	if pruned == 0 {
		return 0, nil
	}
	pipe := r.Client.TxPipeline()
	pipe.Del(ctx, historyKey)
	if len(keep) > 0 {
		pipe.RPush(ctx, historyKey, keep...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return pruned, nil
}
