package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/pawprint/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/pawprint/internal/services/web/storage"
	"github.com/louisbranch/pawprint/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for web sessions.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a web session SQLite store.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSession upserts a session. created_at survives updates, and expired rows
// are pruned on every write.
func (s *Store) PutSession(ctx context.Context, session webstorage.Session) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	session.ID = strings.TrimSpace(session.ID)
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	session.UserID = strings.TrimSpace(session.UserID)
	if session.UserID == "" {
		return fmt.Errorf("session user id is required")
	}
	if session.ExpiresAt.IsZero() {
		return fmt.Errorf("session expiry is required")
	}

	now := s.now().UTC()
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, now.UnixMilli()); err != nil {
		return fmt.Errorf("prune expired sessions: %w", err)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO web_sessions (session_hash, user_id, display_name, email, avatar_url, role, token, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_hash) DO UPDATE SET
		   user_id = excluded.user_id,
		   display_name = excluded.display_name,
		   email = excluded.email,
		   avatar_url = excluded.avatar_url,
		   role = excluded.role,
		   token = excluded.token,
		   expires_at = excluded.expires_at,
		   updated_at = excluded.updated_at`,
		hashSessionID(session.ID),
		session.UserID,
		session.DisplayName,
		session.Email,
		session.AvatarURL,
		session.Role,
		session.Token,
		session.ExpiresAt.UTC().UnixMilli(),
		now.UnixMilli(),
		now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession loads a live session by id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (webstorage.Session, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.Session{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return webstorage.Session{}, false, nil
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT user_id, display_name, email, avatar_url, role, token, expires_at, created_at
		 FROM web_sessions
		 WHERE session_hash = ? AND expires_at > ?`,
		hashSessionID(sessionID),
		s.now().UTC().UnixMilli(),
	)

	session := webstorage.Session{ID: sessionID}
	var expiresAt, createdAt int64
	if err := row.Scan(
		&session.UserID,
		&session.DisplayName,
		&session.Email,
		&session.AvatarURL,
		&session.Role,
		&session.Token,
		&expiresAt,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.Session{}, false, nil
		}
		return webstorage.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	session.ExpiresAt = unixMillisToTime(expiresAt)
	session.CreatedAt = unixMillisToTime(createdAt)
	return session, true, nil
}

// DeleteSession removes a session. Unknown ids are not an error.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE session_hash = ?`, hashSessionID(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions prunes sessions that expired at or before now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, now.UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return removed, nil
}

func hashSessionID(sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.SessionStore = (*Store)(nil)
