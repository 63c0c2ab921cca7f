package repository

import (
	"context"
	"errors"
	"fmt"

	"pitchmatch/internal/database"
	"pitchmatch/internal/domain/startup"

	"github.com/google/uuid"
)

type StartupProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (startup.Profile, error)
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
	Upsert(ctx context.Context, p startup.Profile) (startup.Profile, error)
}

type PostgresStartupProfileRepository struct {
	db database.DB
}

func NewPostgresStartupProfileRepository(db database.DB) *PostgresStartupProfileRepository {
	return &PostgresStartupProfileRepository{db: db}
}

const startupProfileColumns = `id, user_id, company_name, website, description, industry, stage,
	headquarters, funding_ask, readiness_score, ai_analyzed_at, created_at, updated_at`

func (r *PostgresStartupProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (startup.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+startupProfileColumns+` FROM startup_profiles WHERE user_id = $1`,
		userID,
	)
	p, err := scanStartupProfile(row)
	if errors.Is(err, database.ErrNoRows) {
		return startup.Profile{}, ErrNotFound
	}
	if err != nil {
		return startup.Profile{}, fmt.Errorf("find startup profile: %w", err)
	}
	return p, nil
}

// ListUserIDs returns every startup owner key, oldest profile first.
func (r *PostgresStartupProfileRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM startup_profiles ORDER BY created_at ASC, user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list startup ids: %w", err)
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStartupProfileRepository) Upsert(ctx context.Context, p startup.Profile) (startup.Profile, error) {
	if p.UserID == uuid.Nil {
		return startup.Profile{}, fmt.Errorf("upsert startup profile: empty user id")
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO startup_profiles (user_id, company_name, website, description, industry, stage,
			headquarters, funding_ask, readiness_score, ai_analyzed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			website = EXCLUDED.website,
			description = EXCLUDED.description,
			industry = EXCLUDED.industry,
			stage = EXCLUDED.stage,
			headquarters = EXCLUDED.headquarters,
			funding_ask = EXCLUDED.funding_ask,
			readiness_score = EXCLUDED.readiness_score,
			ai_analyzed_at = EXCLUDED.ai_analyzed_at,
			updated_at = now()
		 RETURNING `+startupProfileColumns,
		p.UserID,
		p.CompanyName,
		p.Website,
		p.Description,
		p.Industry,
		p.Stage,
		p.Headquarters,
		p.FundingAsk,
		p.ReadinessScore,
		p.AIAnalyzedAt,
	)
	out, err := scanStartupProfile(row)
	if err != nil {
		return startup.Profile{}, fmt.Errorf("upsert startup profile: %w", err)
	}
	return out, nil
}

func scanStartupProfile(row database.Row) (startup.Profile, error) {
	var p startup.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.CompanyName,
		&p.Website,
		&p.Description,
		&p.Industry,
		&p.Stage,
		&p.Headquarters,
		&p.FundingAsk,
		&p.ReadinessScore,
		&p.AIAnalyzedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
