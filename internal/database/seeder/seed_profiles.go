package seeder

import (
	"context"
	"fmt"

	"pitchmatch/internal/database"

	"github.com/google/uuid"
)

// Demo owner ids are fixed so repeated seeding stays idempotent.
var (
	DemoStartupAcme   = uuid.MustParse("5e1d0c1a-0000-4000-8000-000000000001")
	DemoStartupLumen  = uuid.MustParse("5e1d0c1a-0000-4000-8000-000000000002")
	DemoStartupKiln   = uuid.MustParse("5e1d0c1a-0000-4000-8000-000000000003")
	DemoInvestorPeak  = uuid.MustParse("1a7e5700-0000-4000-8000-000000000001")
	DemoInvestorDelta = uuid.MustParse("1a7e5700-0000-4000-8000-000000000002")
	DemoInvestorNorth = uuid.MustParse("1a7e5700-0000-4000-8000-000000000003")
)

type StartupProfilesSeeder struct{}

func (StartupProfilesSeeder) Name() string { return "startup_profiles" }

func (StartupProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "startup_profiles",
		"user_id", "company_name", "industry", "stage", "headquarters", "funding_ask", "readiness_score",
	); err != nil {
		return err
	}

	items := []struct {
		UserID       uuid.UUID
		Company      string
		Industry     string
		Stage        string
		Headquarters string
		FundingAsk   string
		Readiness    float64
	}{
		{DemoStartupAcme, "Acme Ledger", "FinTech", "Seed", "Austin, TX", "$500K", 82},
		{DemoStartupLumen, "Lumen Health", "Digital Health", "Series A", "Boston, MA", "$3M", 67},
		{DemoStartupKiln, "Kiln Robotics", "Robotics", "Pre-Seed", "Berlin", "$250k", 45},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO startup_profiles (user_id, company_name, industry, stage, headquarters, funding_ask, readiness_score)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO NOTHING`,
				it.UserID, it.Company, it.Industry, it.Stage, it.Headquarters, it.FundingAsk, it.Readiness,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", it.Company, err)
			}
		}
		return nil
	})
}

type InvestorProfilesSeeder struct{}

func (InvestorProfilesSeeder) Name() string { return "investor_profiles" }

func (InvestorProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "investor_profiles",
		"user_id", "organization_name", "focus_sectors", "focus_stages", "geography_focus", "ticket_size_min", "ticket_size_max",
	); err != nil {
		return err
	}

	items := []struct {
		UserID  uuid.UUID
		Org     string
		Sectors []string
		Stages  []string
		Geos    []string
		Min     *float64
		Max     *float64
	}{
		{DemoInvestorPeak, "Peak Capital", []string{"Fintech", "B2B SaaS"}, []string{"Seed", "Series A"}, []string{"Texas"}, ptr(250_000), ptr(1_000_000)},
		{DemoInvestorDelta, "Delta Bio Partners", []string{"Healthcare", "Biotech"}, []string{"Series A", "Series B"}, []string{"USA"}, ptr(2_000_000), ptr(8_000_000)},
		{DemoInvestorNorth, "North Angels", []string{"Hardware", "Climate"}, []string{"Pre-seed"}, []string{"Europe", "Berlin"}, nil, ptr(300_000)},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO investor_profiles (user_id, organization_name, focus_sectors, focus_stages, geography_focus, ticket_size_min, ticket_size_max)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO NOTHING`,
				it.UserID, it.Org, it.Sectors, it.Stages, it.Geos, it.Min, it.Max,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", it.Org, err)
			}
		}
		return nil
	})
}

func ptr(f float64) *float64 { return &f }
