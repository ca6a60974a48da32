package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/scenepatch/pkg/scene"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenes (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    hash       TEXT NOT NULL,
    scene      JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_scenes_updated_at ON scenes(updated_at DESC);
`

// PostgresStore keeps one JSONB row per scene.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects to dsn and creates the schema if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// CreateSchema creates the scenes table if it does not exist.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put implements [Store]. Replacing a row keeps its created_at.
func (s *PostgresStore) Put(ctx context.Context, doc *Document) (string, error) {
	data, err := scene.Marshal(doc.Scene)
	if err != nil {
		return "", fmt.Errorf("encode scene: %w", err)
	}
	prepare(doc, time.Now().UTC().Truncate(time.Microsecond))

	err = s.db.QueryRow(ctx, `
		INSERT INTO scenes (id, name, hash, scene, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, hash = EXCLUDED.hash,
		    scene = EXCLUDED.scene, updated_at = EXCLUDED.updated_at
		RETURNING created_at`,
		doc.ID, doc.Name, doc.Hash, data, doc.CreatedAt, doc.UpdatedAt,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("put document %s: %w", doc.ID, err)
	}
	return doc.ID, nil
}

// Get implements [Store].
func (s *PostgresStore) Get(ctx context.Context, id string) (*Document, error) {
	var (
		doc  Document
		data []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, hash, scene, created_at, updated_at FROM scenes WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Name, &doc.Hash, &data, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	doc.Scene = &scene.Scene{}
	if err := json.Unmarshal(data, doc.Scene); err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", id, err)
	}
	return &doc, nil
}

// Delete implements [Store].
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements [Store].
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Summary, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name,
		       CASE jsonb_typeof(scene->'nodes') WHEN 'array' THEN jsonb_array_length(scene->'nodes') ELSE 0 END,
		       CASE jsonb_typeof(scene->'edges') WHEN 'array' THEN jsonb_array_length(scene->'edges') ELSE 0 END,
		       updated_at
		FROM scenes
		ORDER BY updated_at DESC, id
		LIMIT $1`, lim)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Nodes, &sm.Edges, &sm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Close implements [Store].
func (s *PostgresStore) Close(context.Context) error {
	s.db.Close()
	return nil
}

var _ Store = (*PostgresStore)(nil)
