package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pagewright/pagewright/internal/types"
)

// ArtifactStore keeps the latest compiled output per document.
type ArtifactStore interface {
	// PersistArtifacts replaces the document's stored files with the given
	// set. The swap is transactional: readers never see a partial set.
	PersistArtifacts(ctx context.Context, documentID string, files []types.File) error

	// LoadArtifacts returns the stored files sorted by path.
	LoadArtifacts(ctx context.Context, documentID string) ([]types.File, error)

	// MarkPublished records the document's publish time.
	MarkPublished(ctx context.Context, documentID string, at time.Time) error

	// PublishedAt returns the last publish time, or zero if never published.
	PublishedAt(ctx context.Context, documentID string) (time.Time, error)
}

// NewArtifactStore returns a SQLite-backed artifact store.
func NewArtifactStore(db *DB) ArtifactStore {
	return &sqlArtifactStore{db: db}
}

type sqlArtifactStore struct {
	db *DB
}

func (s *sqlArtifactStore) PersistArtifacts(ctx context.Context, documentID string, files []types.File) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (id) VALUES (?)`, documentID); err != nil {
		return fmt.Errorf("ensure document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM artifacts WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("clear artifacts: %w", err)
	}
	for _, f := range files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO artifacts (document_id, path, mime_type, content, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			documentID, f.Path, f.MIMEType, f.Content, time.Now().UTC()); err != nil {
			return fmt.Errorf("insert artifact %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persist: %w", err)
	}
	return nil
}

func (s *sqlArtifactStore) LoadArtifacts(ctx context.Context, documentID string) ([]types.File, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT path, mime_type, content FROM artifacts WHERE document_id = ? ORDER BY path`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	defer rows.Close()

	var files []types.File
	for rows.Next() {
		var f types.File
		if err := rows.Scan(&f.Path, &f.MIMEType, &f.Content); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *sqlArtifactStore) MarkPublished(ctx context.Context, documentID string, at time.Time) error {
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO documents (id, published_at) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET published_at = excluded.published_at`,
		documentID, at.UTC())
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	return nil
}

func (s *sqlArtifactStore) PublishedAt(ctx context.Context, documentID string) (time.Time, error) {
	var at sql.NullTime
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT published_at FROM documents WHERE id = ?`, documentID).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("published at: %w", err)
	}
	if !at.Valid {
		return time.Time{}, nil
	}
	return at.Time, nil
}
