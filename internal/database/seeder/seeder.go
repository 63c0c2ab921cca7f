package seeder

import (
	"context"
	"fmt"

	"pitchmatch/internal/database"

	"go.uber.org/zap"
)

// Seeder writes demo rows for one table. Running it twice must not
// duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// DemoProfiles lists the seeders for the demo dataset, startups first.
func DemoProfiles() []Seeder {
	return []Seeder{
		StartupProfilesSeeder{},
		InvestorProfilesSeeder{},
	}
}

// RunAll runs seeders in order and stops at the first failure.
func RunAll(ctx context.Context, db database.DB, logger *zap.Logger, seeders ...Seeder) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", zap.String("table", s.Name()))
	}
	return nil
}
