package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skyland/internal/game"
)

// Postgres keeps sessions as whole-snapshot jsonb rows and badge
// unlocks as a keyed table whose primary key makes Achieve idempotent.
// Settlement reports land in an append-only audit table.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the schema. Safe to run on every startup.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS skyland`,
		`CREATE TABLE IF NOT EXISTS skyland.sessions (
			id uuid PRIMARY KEY,
			auto_advance boolean NOT NULL DEFAULT false,
			snapshot jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS skyland.user_achievements (
			session_id uuid NOT NULL,
			achievement_id text NOT NULL,
			star_rating int NOT NULL,
			trophy_grade text NOT NULL,
			achieved_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (session_id, achievement_id)
		)`,
		`CREATE TABLE IF NOT EXISTS skyland.settlements (
			id bigserial PRIMARY KEY,
			session_id uuid NOT NULL,
			day int NOT NULL,
			portfolio_return double precision NOT NULL,
			coin_delta bigint NOT NULL,
			coins_after bigint NOT NULL,
			report jsonb NOT NULL,
			settled_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS settlements_session_day
			ON skyland.settlements (session_id, day)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Create(ctx context.Context, s *game.Session) error {
	snapshot, err := json.Marshal(s.State)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO skyland.sessions (id, auto_advance, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.AutoAdvance, snapshot, s.CreatedAt, s.UpdatedAt)
	return err
}

func (p *Postgres) Get(ctx context.Context, id string) (*game.Session, error) {
	var (
		s        game.Session
		snapshot []byte
	)
	err := p.db.QueryRow(ctx, `
		SELECT id, auto_advance, snapshot, created_at, updated_at
		FROM skyland.sessions
		WHERE id = $1
	`, id).Scan(&s.ID, &s.AutoAdvance, &snapshot, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrSessionNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &s.State); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (p *Postgres) Save(ctx context.Context, s *game.Session) error {
	snapshot, err := json.Marshal(s.State)
	if err != nil {
		return err
	}
	cmd, err := p.db.Exec(ctx, `
		UPDATE skyland.sessions
		SET auto_advance = $1, snapshot = $2, updated_at = $3
		WHERE id = $4
	`, s.AutoAdvance, snapshot, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrSessionNotFound
	}
	return nil
}

func (p *Postgres) ListAutoAdvance(ctx context.Context) ([]string, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id FROM skyland.sessions WHERE auto_advance ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (p *Postgres) HasAchievement(ctx context.Context, sessionID, achievementID string) (bool, error) {
	var n int
	err := p.db.QueryRow(ctx, `
		SELECT COUNT(1) FROM skyland.user_achievements
		WHERE session_id = $1 AND achievement_id = $2
	`, sessionID, achievementID).Scan(&n)
	return n > 0, err
}

// Achieve inserts at most once per (session, achievement); a repeat
// unlock is a silent no-op.
func (p *Postgres) Achieve(ctx context.Context, sessionID, achievementID string, starRating int, trophyGrade string) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO skyland.user_achievements (session_id, achievement_id, star_rating, trophy_grade)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, achievement_id) DO NOTHING
	`, sessionID, achievementID, starRating, trophyGrade)
	return err
}

func (p *Postgres) Summary(ctx context.Context, sessionID string) (game.AchievementSummary, error) {
	out := game.AchievementSummary{TrophyCounts: map[string]int{}}
	rows, err := p.db.Query(ctx, `
		SELECT achievement_id, achieved_at, star_rating, trophy_grade
		FROM skyland.user_achievements
		WHERE session_id = $1
		ORDER BY achieved_at
	`, sessionID)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	for rows.Next() {
		var ua game.UserAchievement
		if err := rows.Scan(&ua.AchievementID, &ua.AchievedAt, &ua.StarRating, &ua.TrophyGrade); err != nil {
			return out, err
		}
		out.Unlocked = append(out.Unlocked, ua)
		out.TotalStars += ua.StarRating
		out.TrophyCounts[ua.TrophyGrade]++
	}
	return out, rows.Err()
}

func (p *Postgres) Record(ctx context.Context, sessionID string, res game.SettlementResult) error {
	report, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO skyland.settlements (session_id, day, portfolio_return, coin_delta, coins_after, report)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sessionID, res.Day, res.PortfolioReturn, res.CoinDelta, res.CoinsAfter, report)
	return err
}
