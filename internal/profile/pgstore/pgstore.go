// Package pgstore provides a PostgreSQL implementation of profile.Store.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/docket/internal/profile"
)

var tracer = otel.Tracer("github.com/linnemanlabs/docket/internal/profile/pgstore")

//go:embed schema.sql
var schema string

// Store persists lawyer profiles in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL with an otel query tracer, applies the
// schema, and returns a ready Store.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Get returns the stored profile, or a default profile when none exists.
func (s *Store) Get(ctx context.Context, id string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT id, display_name, email, preferences, updated_at FROM lawyer_profiles WHERE id = $1`
	p, err := scanProfile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if p == nil {
		return profile.DefaultProfile(id), nil
	}
	return p, nil
}

// UpdateTriagePreferences upserts the profile with the new preferences
// and returns the stored value.
func (s *Store) UpdateTriagePreferences(ctx context.Context, id string, prefs profile.TriagePreferences) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "pgstore.UpdateTriagePreferences", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPSERT"),
	))
	defer span.End()

	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	base := profile.DefaultProfile(id)
	now := time.Now().UTC()

	query := `INSERT INTO lawyer_profiles (id, display_name, email, preferences, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_at  = EXCLUDED.updated_at
		RETURNING id, display_name, email, preferences, updated_at`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, base.ID, base.DisplayName, base.Email, prefsJSON, now))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if p == nil {
		return nil, errors.New("upsert returned no row")
	}
	return p, nil
}

// Reset deletes the stored profile and returns the default.
func (s *Store) Reset(ctx context.Context, id string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Reset", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "DELETE"),
	))
	defer span.End()

	if _, err := s.pool.Exec(ctx, `DELETE FROM lawyer_profiles WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("delete profile: %w", err)
	}
	return profile.DefaultProfile(id), nil
}

// scanProfile scans one row into a Profile. Returns (nil, nil) when no
// row is found.
func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p         profile.Profile
		prefsJSON []byte
	)

	err := row.Scan(&p.ID, &p.DisplayName, &p.Email, &prefsJSON, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	if err := json.Unmarshal(prefsJSON, &p.TriagePreferences); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}

	return &p, nil
}
