package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// SessionStore keeps browsing sessions in a sessions table. It implements
// scs.CtxStore.
type SessionStore struct {
	pool *pgxpool.Pool
}

var _ scs.CtxStore = (*SessionStore)(nil)

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

// EnsureSchema creates the sessions table when it does not exist yet.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	table := `
		CREATE TABLE IF NOT EXISTS sessions (
			token  TEXT PRIMARY KEY,
			data   BYTEA NOT NULL,
			expiry TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.pool.Exec(ctx, table); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry)`
	if _, err := s.pool.Exec(ctx, index); err != nil {
		return fmt.Errorf("create sessions expiry index: %w", err)
	}
	return nil
}

func (s *SessionStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	query := `SELECT data FROM sessions WHERE token = $1 AND current_timestamp < expiry`

	var b []byte
	if err := s.pool.QueryRow(ctx, query, token).Scan(&b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find session: %w", err)
	}
	return b, true, nil
}

func (s *SessionStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	query := `
		INSERT INTO sessions (token, data, expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
		SET data = EXCLUDED.data, expiry = EXCLUDED.expiry
	`

	if _, err := s.pool.Exec(ctx, query, token, b, expiry.UTC()); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteCtx(ctx context.Context, token string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *SessionStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *SessionStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

// DeleteExpired removes sessions whose expiry has passed.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expiry < current_timestamp`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}

// StartCleanup deletes expired sessions every interval until ctx is done.
func (s *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.DeleteExpired(ctx)
				if err != nil {
					log.WithError(err).Warn("session cleanup failed")
					continue
				}
				if n > 0 {
					log.WithField("deleted", n).Debug("expired sessions removed")
				}
			}
		}
	}()
}
