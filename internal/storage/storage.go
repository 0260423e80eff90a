package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	gamePrefix = "game/"
	keyStats   = "stats"
)

var ErrNotFound = errors.New("record not found")

// ClockRecord is the persisted form of a game clock. Durations are milliseconds.
type ClockRecord struct {
	BaseMs      int64    `json:"base_ms"`
	IncrementMs int64    `json:"increment_ms"`
	RemainingMs [2]int64 `json:"remaining_ms"`
	Active      int      `json:"active"`
	Running     bool     `json:"running"`
}

// GameRecord is a snapshot of one session, enough to rebuild its state.
type GameRecord struct {
	ID        string       `json:"id"`
	WhiteSet  string       `json:"white_set"`
	BlackSet  string       `json:"black_set"`
	FEN       string       `json:"fen"`
	GameOver  bool         `json:"game_over"`
	Outcome   string       `json:"outcome"`
	Winner    string       `json:"winner"`
	Ply       int          `json:"ply"`
	Started   bool         `json:"started"`
	Clock     *ClockRecord `json:"clock,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Stats counts finished games
type Stats struct {
	GamesFinished int            `json:"games_finished"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Stalemates    int            `json:"stalemates"`
	ByOutcome     map[string]int `json:"by_outcome"`
	BySetPair     map[string]int `json:"by_set_pair"`
}

func NewStats() *Stats {
	return &Stats{
		ByOutcome: make(map[string]int),
		BySetPair: make(map[string]int),
	}
}

// Store wraps BadgerDB
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a throwaway database, used by tests and by servers run without a data dir
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte { return []byte(gamePrefix + id) }

func (s *Store) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return errors.New("game record without id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

func (s *Store) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// ListGames 返回所有快照，按 key（即 id）排序
func (s *Store) ListGames() ([]*GameRecord, error) {
	var out []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, &rec)
		}
		return nil
	})
	return out, err
}

// LoadStats returns empty stats if nothing was recorded yet
func (s *Store) LoadStats() (*Stats, error) {
	stats := NewStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.ByOutcome == nil {
		stats.ByOutcome = make(map[string]int)
	}
	if stats.BySetPair == nil {
		stats.BySetPair = make(map[string]int)
	}
	return stats, err
}

// RecordResult 在一个事务里读改写统计，winner 为 "w"/"b"/"-"
func (s *Store) RecordResult(rec *GameRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewStats()
		item, err := txn.Get([]byte(keyStats))
		switch {
		case err == badger.ErrKeyNotFound:
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}
		if stats.ByOutcome == nil {
			stats.ByOutcome = make(map[string]int)
		}
		if stats.BySetPair == nil {
			stats.BySetPair = make(map[string]int)
		}

		stats.GamesFinished++
		switch rec.Winner {
		case "w":
			stats.WhiteWins++
		case "b":
			stats.BlackWins++
		}
		if rec.Outcome == "stalemate" {
			stats.Stalemates++
		}
		stats.ByOutcome[rec.Outcome]++
		stats.BySetPair[rec.WhiteSet+"/"+rec.BlackSet]++

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}
