package repository

import (
	"context"
	"errors"
	"fmt"

	"pitchmatch/internal/database"
	"pitchmatch/internal/domain/investor"

	"github.com/google/uuid"
)

type InvestorProfileRepository interface {
	ListAll(ctx context.Context) ([]investor.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (investor.Profile, error)
	Upsert(ctx context.Context, p investor.Profile) (investor.Profile, error)
}

type PostgresInvestorProfileRepository struct {
	db database.DB
}

func NewPostgresInvestorProfileRepository(db database.DB) *PostgresInvestorProfileRepository {
	return &PostgresInvestorProfileRepository{db: db}
}

const investorProfileColumns = `id, user_id, organization_name, website, description, focus_sectors,
	focus_stages, geography_focus, ticket_size_min, ticket_size_max, created_at, updated_at`

func (r *PostgresInvestorProfileRepository) ListAll(ctx context.Context) ([]investor.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+investorProfileColumns+` FROM investor_profiles ORDER BY created_at ASC, user_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list investor profiles: %w", err)
	}
	defer rows.Close()

	out := make([]investor.Profile, 0)
	for rows.Next() {
		p, err := scanInvestorProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInvestorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (investor.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+investorProfileColumns+` FROM investor_profiles WHERE user_id = $1`,
		userID,
	)
	p, err := scanInvestorProfile(row)
	if errors.Is(err, database.ErrNoRows) {
		return investor.Profile{}, ErrNotFound
	}
	if err != nil {
		return investor.Profile{}, fmt.Errorf("find investor profile: %w", err)
	}
	return p, nil
}

func (r *PostgresInvestorProfileRepository) Upsert(ctx context.Context, p investor.Profile) (investor.Profile, error) {
	if p.UserID == uuid.Nil {
		return investor.Profile{}, fmt.Errorf("upsert investor profile: empty user id")
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO investor_profiles (user_id, organization_name, website, description, focus_sectors,
			focus_stages, geography_focus, ticket_size_min, ticket_size_max)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (user_id) DO UPDATE SET
			organization_name = EXCLUDED.organization_name,
			website = EXCLUDED.website,
			description = EXCLUDED.description,
			focus_sectors = EXCLUDED.focus_sectors,
			focus_stages = EXCLUDED.focus_stages,
			geography_focus = EXCLUDED.geography_focus,
			ticket_size_min = EXCLUDED.ticket_size_min,
			ticket_size_max = EXCLUDED.ticket_size_max,
			updated_at = now()
		 RETURNING `+investorProfileColumns,
		p.UserID,
		p.OrganizationName,
		p.Website,
		p.Description,
		nonNil(p.FocusSectors),
		nonNil(p.FocusStages),
		nonNil(p.GeographyFocus),
		p.TicketSizeMin,
		p.TicketSizeMax,
	)
	out, err := scanInvestorProfile(row)
	if err != nil {
		return investor.Profile{}, fmt.Errorf("upsert investor profile: %w", err)
	}
	return out, nil
}

func scanInvestorProfile(row database.Row) (investor.Profile, error) {
	var p investor.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.OrganizationName,
		&p.Website,
		&p.Description,
		&p.FocusSectors,
		&p.FocusStages,
		&p.GeographyFocus,
		&p.TicketSizeMin,
		&p.TicketSizeMax,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
