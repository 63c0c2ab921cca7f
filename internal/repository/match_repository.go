package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pitchmatch/internal/database"
	"pitchmatch/internal/domain/match"

	"github.com/google/uuid"
)

// Score is one computed pair waiting to be persisted for a startup.
type Score struct {
	InvestorID      uuid.UUID
	MatchPercentage int
}

type MatchRepository interface {
	// ReplaceForStartup atomically swaps the startup's match set for scores.
	// Every new row starts pending. Concurrent calls for the same startup are
	// serialized and the last one to commit wins.
	ReplaceForStartup(ctx context.Context, startupID uuid.UUID, scores []Score) ([]match.Match, error)
	ListForStartup(ctx context.Context, startupID uuid.UUID, f match.Filter) ([]match.View, error)
	ListForInvestor(ctx context.Context, investorID uuid.UUID, f match.Filter) ([]match.View, error)
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	// UpdateStatus sets status to to only while the row is still in from.
	// It returns ErrStatusChanged when another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) (match.Match, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, startup_id, investor_id, match_percentage, status::text, created_at, updated_at`

func (r *PostgresMatchRepository) ReplaceForStartup(ctx context.Context, startupID uuid.UUID, scores []Score) ([]match.Match, error) {
	if startupID == uuid.Nil {
		return nil, fmt.Errorf("replace matches: empty startup id")
	}

	investors := make([]string, len(scores))
	percentages := make([]int32, len(scores))
	position := make(map[uuid.UUID]int, len(scores))
	for i, s := range scores {
		investors[i] = s.InvestorID.String()
		percentages[i] = int32(s.MatchPercentage)
		position[s.InvestorID] = i
	}

	out := make([]match.Match, len(scores))
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		// Held until commit, so a second replace for this startup waits and
		// then deletes the rows this one inserted.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, startupID.String()); err != nil {
			return fmt.Errorf("lock startup matches: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE startup_id = $1`, startupID); err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		if len(scores) == 0 {
			return nil
		}

		rows, err := tx.Query(ctx,
			`INSERT INTO matches (startup_id, investor_id, match_percentage, status)
			 SELECT $1, s.investor_id, s.match_percentage, $4::match_status
			 FROM unnest($2::uuid[], $3::int[]) AS s (investor_id, match_percentage)
			 RETURNING `+matchColumns,
			startupID,
			investors,
			percentages,
			string(match.StatusPending),
		)
		if err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			m, err := scanMatch(rows)
			if err != nil {
				return fmt.Errorf("scan inserted match: %w", err)
			}
			out[position[m.InvestorID]] = m
			n++
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
		if n != len(scores) {
			return fmt.Errorf("insert matches: %d of %d rows returned", n, len(scores))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) ListForStartup(ctx context.Context, startupID uuid.UUID, f match.Filter) ([]match.View, error) {
	return r.list(ctx, "m.startup_id", "LEFT JOIN investor_profiles c ON c.user_id = m.investor_id", "c.organization_name", startupID, f)
}

func (r *PostgresMatchRepository) ListForInvestor(ctx context.Context, investorID uuid.UUID, f match.Filter) ([]match.View, error) {
	return r.list(ctx, "m.investor_id", "LEFT JOIN startup_profiles c ON c.user_id = m.startup_id", "c.company_name", investorID, f)
}

func (r *PostgresMatchRepository) list(ctx context.Context, ownerCol, join, nameCol string, owner uuid.UUID, f match.Filter) ([]match.View, error) {
	f = f.Normalized()

	where := []string{ownerCol + " = $1", "m.match_percentage >= $2"}
	args := []any{owner, f.MinScore}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("m.status = $%d::match_status", len(args)))
	}
	args = append(args, f.Limit)

	q := fmt.Sprintf(
		`SELECT m.id, m.startup_id, m.investor_id, m.match_percentage, m.status::text, m.created_at, m.updated_at, %s
		 FROM matches m %s
		 WHERE %s
		 ORDER BY m.match_percentage DESC, m.created_at ASC, m.id ASC
		 LIMIT $%d`,
		nameCol, join, strings.Join(where, " AND "), len(args),
	)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	out := make([]match.View, 0)
	for rows.Next() {
		var v match.View
		var status string
		if err := rows.Scan(
			&v.ID,
			&v.StartupID,
			&v.InvestorID,
			&v.MatchPercentage,
			&status,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.CounterpartName,
		); err != nil {
			return nil, err
		}
		v.Status = match.Status(status)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	m, err := scanMatch(r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if errors.Is(err, database.ErrNoRows) {
		return match.Match{}, ErrNotFound
	}
	if err != nil {
		return match.Match{}, fmt.Errorf("find match: %w", err)
	}
	return m, nil
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE matches SET status = $3::match_status, updated_at = now()
		 WHERE id = $1 AND status = $2::match_status
		 RETURNING `+matchColumns,
		id,
		string(from),
		string(to),
	)
	m, err := scanMatch(row)
	if errors.Is(err, database.ErrNoRows) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return match.Match{}, findErr
		}
		return match.Match{}, ErrStatusChanged
	}
	if err != nil {
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}
	return m, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	var status string
	if err := row.Scan(
		&m.ID,
		&m.StartupID,
		&m.InvestorID,
		&m.MatchPercentage,
		&status,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	return m, nil
}
