package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

const cleanupInterval = 5 * time.Minute

// SQLiteStore keeps scs sessions in a sqlite table so logins survive a
// restart.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

func NewSQLite(path string, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:   db,
		log:  log,
		done: make(chan struct{}),
	}, nil
}

func (s *SQLiteStore) start(_ context.Context) error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.DeleteExpired(); err != nil {
					s.log.Warn("failed deleting expired sessions", zap.Error(err))
				}
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

func (s *SQLiteStore) stop(_ context.Context) error {
	close(s.done)
	s.wg.Wait()
	return s.db.Close()
}

func (s *SQLiteStore) Find(token string) ([]byte, bool, error) {
	var b []byte
	err := s.db.QueryRow(
		"SELECT data FROM sessions WHERE token = ? AND expiry > ?",
		token, time.Now().UnixNano(),
	).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *SQLiteStore) Commit(token string, b []byte, expiry time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (token, data, expiry) VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET data = excluded.data, expiry = excluded.expiry`,
		token, b, expiry.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) Delete(token string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

func (s *SQLiteStore) DeleteExpired() error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE expiry <= ?", time.Now().UnixNano())
	return err
}
