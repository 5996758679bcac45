// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
	"github.com/tomtom215/mantra/internal/models"
)

// queryTimeout bounds every statement issued by DuckDB.
const queryTimeout = 30 * time.Second

var schema = []string{
	`CREATE TABLE IF NOT EXISTS actors (
		id BIGINT PRIMARY KEY,
		name VARCHAR,
		role VARCHAR NOT NULL,
		interests VARCHAR,
		followers BIGINT DEFAULT 0,
		posts BIGINT DEFAULT 0,
		likes BIGINT DEFAULT 0,
		comments BIGINT DEFAULT 0,
		shares BIGINT DEFAULT 0,
		fan_profile VARCHAR,
		creator_profile VARCHAR,
		sponsor_profile VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		follower_id BIGINT NOT NULL,
		followee_id BIGINT NOT NULL,
		PRIMARY KEY (follower_id, followee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS content (
		id BIGINT PRIMARY KEY,
		kind VARCHAR NOT NULL,
		title VARCHAR,
		body VARCHAR,
		tags VARCHAR,
		views BIGINT DEFAULT 0,
		likes BIGINT DEFAULT 0,
		comments BIGINT DEFAULT 0,
		shares BIGINT DEFAULT 0,
		author_id BIGINT,
		created_at TIMESTAMP,
		has_media BOOLEAN DEFAULT false,
		attrs VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS interactions (
		actor_id BIGINT NOT NULL,
		item_id BIGINT NOT NULL,
		weight DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS possessions (
		actor_id BIGINT NOT NULL,
		kind VARCHAR NOT NULL,
		item_id BIGINT NOT NULL,
		PRIMARY KEY (actor_id, kind, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_kind ON content(kind)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id)`,
}

// contentAttrs holds the kind-specific optional fields of a content row.
type contentAttrs struct {
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	Attendees       *int64     `json:"attendees,omitempty"`
	Sold            *int64     `json:"sold,omitempty"`
	Stock           *int64     `json:"stock,omitempty"`
	DiscountPercent *float64   `json:"discount_percent,omitempty"`
	Featured        bool       `json:"featured,omitempty"`
	Exclusive       bool       `json:"exclusive,omitempty"`
	Members         *int64     `json:"members,omitempty"`
	Official        bool       `json:"official,omitempty"`
}

// DuckDB is a Store backed by an embedded DuckDB database.
type DuckDB struct {
	conn *sql.DB
}

// OpenDuckDB opens (creating if needed) the database at path and applies the
// schema. An empty path or ":memory:" opens an in-memory database.
func OpenDuckDB(ctx context.Context, path string, threads int, maxMemory string) (*DuckDB, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	if path == "" {
		path = ":memory:"
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads, maxMemory)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DuckDB{conn: conn}
	if err := db.initialize(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("path", path).Int("threads", threads).Msg("DuckDB store opened")
	return db, nil
}

func (d *DuckDB) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	for _, stmt := range schema {
		if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
	}
}

// Close implements Store.
func (d *DuckDB) Close() error {
	return d.conn.Close()
}

// Ping implements Reader.
func (d *DuckDB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

const actorColumns = `id, name, role, interests, followers, posts, likes, comments, shares,
	fan_profile, creator_profile, sponsor_profile`

// Actor implements Reader.
func (d *DuckDB) Actor(ctx context.Context, id int64) (_ *models.Actor, err error) {
	defer observeQuery("select", "actors", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := d.conn.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = ?`, id)
	a, err := scanActor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("actor %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query actor: %w", err)
	}

	follows, err := d.int64s(ctx, `SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY followee_id`, id)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	a.Follows = follows
	return &a, nil
}

// Actors implements Reader.
func (d *DuckDB) Actors(ctx context.Context, role models.Role) (_ []models.Actor, err error) {
	defer observeQuery("select", "actors", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + actorColumns + ` FROM actors`
	var args []any
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, string(role))
	}
	query += ` ORDER BY id`

	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer rows.Close()

	var actors []models.Actor
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actors: %w", err)
	}

	follows, err := d.followMap(ctx)
	if err != nil {
		return nil, err
	}
	for i := range actors {
		actors[i].Follows = follows[actors[i].ID]
	}
	return actors, nil
}

func (d *DuckDB) followMap(ctx context.Context) (map[int64][]int64, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT follower_id, followee_id FROM follows ORDER BY follower_id, followee_id`)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var follower, followee int64
		if err := rows.Scan(&follower, &followee); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		out[follower] = append(out[follower], followee)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActor(row rowScanner) (models.Actor, error) {
	var (
		a                     models.Actor
		name, interests       sql.NullString
		role                  string
		fan, creator, sponsor sql.NullString
	)
	err := row.Scan(&a.ID, &name, &role, &interests,
		&a.Engagement.Followers, &a.Engagement.Posts, &a.Engagement.Likes,
		&a.Engagement.Comments, &a.Engagement.Shares,
		&fan, &creator, &sponsor)
	if err != nil {
		return a, err
	}
	a.Name = name.String
	a.Role = models.Role(role)

	if err := unmarshalNullable(interests, &a.Interests); err != nil {
		return a, fmt.Errorf("decode interests: %w", err)
	}
	if fan.Valid {
		a.Fan = &models.FanProfile{}
		if err := json.Unmarshal([]byte(fan.String), a.Fan); err != nil {
			return a, fmt.Errorf("decode fan profile: %w", err)
		}
	}
	if creator.Valid {
		a.Creator = &models.CreatorProfile{}
		if err := json.Unmarshal([]byte(creator.String), a.Creator); err != nil {
			return a, fmt.Errorf("decode creator profile: %w", err)
		}
	}
	if sponsor.Valid {
		a.Sponsor = &models.SponsorProfile{}
		if err := json.Unmarshal([]byte(sponsor.String), a.Sponsor); err != nil {
			return a, fmt.Errorf("decode sponsor profile: %w", err)
		}
	}
	return a, nil
}

// Content implements Reader.
func (d *DuckDB) Content(ctx context.Context, kind models.ContentKind) (_ []models.ContentItem, err error) {
	defer observeQuery("select", "content", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, kind, title, body, tags, views, likes, comments, shares,
		       author_id, created_at, has_media, attrs
		FROM content
		WHERE kind = ?
		ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var (
			item              models.ContentItem
			k                 string
			title, body, tags sql.NullString
			attrsJSON         sql.NullString
			createdAt         sql.NullTime
		)
		if err := rows.Scan(&item.ID, &k, &title, &body, &tags,
			&item.Engagement.Views, &item.Engagement.Likes, &item.Engagement.Comments, &item.Engagement.Shares,
			&item.AuthorID, &createdAt, &item.HasMedia, &attrsJSON); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		item.Kind = models.ContentKind(k)
		item.Title = title.String
		item.Text = body.String
		item.CreatedAt = createdAt.Time.UTC()
		if err := unmarshalNullable(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}

		var attrs contentAttrs
		if err := unmarshalNullable(attrsJSON, &attrs); err != nil {
			return nil, fmt.Errorf("decode attrs: %w", err)
		}
		item.StartsAt = attrs.StartsAt
		item.Attendees = attrs.Attendees
		item.Sold = attrs.Sold
		item.Stock = attrs.Stock
		item.DiscountPercent = attrs.DiscountPercent
		item.Featured = attrs.Featured
		item.Exclusive = attrs.Exclusive
		item.Members = attrs.Members
		item.Official = attrs.Official

		items = append(items, item)
	}
	return items, rows.Err()
}

// Interactions implements Reader.
func (d *DuckDB) Interactions(ctx context.Context) (_ []models.InteractionRecord, err error) {
	defer observeQuery("select", "interactions", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := d.conn.QueryContext(ctx, `SELECT actor_id, item_id, weight FROM interactions ORDER BY actor_id, item_id, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []models.InteractionRecord
	for rows.Next() {
		var rec models.InteractionRecord
		if err := rows.Scan(&rec.ActorID, &rec.ItemID, &rec.Weight); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Possessed implements Reader.
func (d *DuckDB) Possessed(ctx context.Context, actorID int64, kind models.ContentKind) (_ []int64, err error) {
	defer observeQuery("select", "possessions", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return d.int64s(ctx, `SELECT item_id FROM possessions WHERE actor_id = ? AND kind = ? ORDER BY item_id`,
		actorID, string(kind))
}

// Followers implements Reader.
func (d *DuckDB) Followers(ctx context.Context, actorID int64) (_ []int64, err error) {
	defer observeQuery("select", "follows", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return d.int64s(ctx, `SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY follower_id`, actorID)
}

// observeQuery records the duration and outcome of a store query.
func observeQuery(operation, table string, start time.Time, err *error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), *err)
}

func (d *DuckDB) int64s(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// PutActor implements Writer. The actor's follow list replaces any previous one.
func (d *DuckDB) PutActor(ctx context.Context, a *models.Actor) error {
	interests, err := json.Marshal(a.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}
	fan, err := marshalNullable(a.Fan)
	if err != nil {
		return err
	}
	creator, err := marshalNullable(a.Creator)
	if err != nil {
		return err
	}
	sponsor, err := marshalNullable(a.Sponsor)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO actors (`+actorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Role), string(interests),
		a.Engagement.Followers, a.Engagement.Posts, a.Engagement.Likes,
		a.Engagement.Comments, a.Engagement.Shares,
		fan, creator, sponsor)
	if err != nil {
		return fmt.Errorf("upsert actor: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = ?`, a.ID); err != nil {
		return fmt.Errorf("clear follows: %w", err)
	}
	for _, followee := range a.Follows {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO follows (follower_id, followee_id) VALUES (?, ?)`,
			a.ID, followee); err != nil {
			return fmt.Errorf("insert follow: %w", err)
		}
	}
	return tx.Commit()
}

// PutContent implements Writer.
func (d *DuckDB) PutContent(ctx context.Context, item *models.ContentItem) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	attrs, err := json.Marshal(contentAttrs{
		StartsAt:        item.StartsAt,
		Attendees:       item.Attendees,
		Sold:            item.Sold,
		Stock:           item.Stock,
		DiscountPercent: item.DiscountPercent,
		Featured:        item.Featured,
		Exclusive:       item.Exclusive,
		Members:         item.Members,
		Official:        item.Official,
	})
	if err != nil {
		return fmt.Errorf("encode attrs: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err = d.conn.ExecContext(ctx, `INSERT OR REPLACE INTO content
		(id, kind, title, body, tags, views, likes, comments, shares, author_id, created_at, has_media, attrs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Kind), item.Title, item.Text, string(tags),
		item.Engagement.Views, item.Engagement.Likes, item.Engagement.Comments, item.Engagement.Shares,
		item.AuthorID, item.CreatedAt.UTC(), item.HasMedia, string(attrs))
	if err != nil {
		return fmt.Errorf("upsert content: %w", err)
	}
	return nil
}

// PutInteraction implements Writer.
func (d *DuckDB) PutInteraction(ctx context.Context, rec models.InteractionRecord) error {
	if rec.Weight < 0 {
		return fmt.Errorf("interaction (%d, %d): negative weight %v", rec.ActorID, rec.ItemID, rec.Weight)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := d.conn.ExecContext(ctx, `INSERT INTO interactions (actor_id, item_id, weight) VALUES (?, ?, ?)`,
		rec.ActorID, rec.ItemID, rec.Weight)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// PutPossession implements Writer.
func (d *DuckDB) PutPossession(ctx context.Context, actorID int64, kind models.ContentKind, itemID int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := d.conn.ExecContext(ctx, `INSERT OR IGNORE INTO possessions (actor_id, kind, item_id) VALUES (?, ?, ?)`,
		actorID, string(kind), itemID)
	if err != nil {
		return fmt.Errorf("insert possession: %w", err)
	}
	return nil
}

func marshalNullable[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode profile: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalNullable(s sql.NullString, dst any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), dst)
}
