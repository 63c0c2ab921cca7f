package cli

import (
	"fmt"
	"strings"
	"time"

	"pitchmatch/internal/app"
	"pitchmatch/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withContainer(func(c *app.Container) error {
				n, err := c.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "applied %d migration(s)\n", n)
				return nil
			})
		},
	}
}

func newSeedCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo startup and investor profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withContainer(func(c *app.Container) error {
				if err := c.Seed(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(e.out, "seeded demo profiles")
				return nil
			})
		},
	}
}

func newRecalculateCommand(e *env) *cobra.Command {
	var startup string

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Rebuild matches for one startup or for every startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var one uuid.UUID
			if s := strings.TrimSpace(startup); s != "" {
				id, err := uuid.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid --startup: %w", err)
				}
				one = id
			}

			return e.withContainer(func(c *app.Container) error {
				if one != uuid.Nil {
					res, err := c.Matching.Recalculate(cmd.Context(), one)
					if err != nil {
						return err
					}
					return writeMatches(e.out, res)
				}

				report, err := c.Batch.RecalculateAll(cmd.Context())
				if err != nil {
					return err
				}
				e.logger.Info("batch finished",
					zap.Int("successes", report.Successes),
					zap.Int("failures", report.Failures),
				)
				return writeBatchReport(e.out, report)
			})
		},
	}

	cmd.Flags().StringVar(&startup, "startup", "", "startup user id (default: all startups)")
	return cmd
}

func newScoreCommand(e *env) *cobra.Command {
	var startup, investor string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Explain the score of one startup/investor pair without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := uuid.Parse(strings.TrimSpace(startup))
			if err != nil {
				return fmt.Errorf("invalid --startup: %w", err)
			}
			i, err := uuid.Parse(strings.TrimSpace(investor))
			if err != nil {
				return fmt.Errorf("invalid --investor: %w", err)
			}

			return e.withContainer(func(c *app.Container) error {
				p, err := c.Matching.Preview(cmd.Context(), s, i)
				if err != nil {
					return err
				}
				return writePreview(e.out, p, c.Matching.Weights())
			})
		},
	}

	cmd.Flags().StringVar(&startup, "startup", "", "startup user id")
	cmd.Flags().StringVar(&investor, "investor", "", "investor user id")
	_ = cmd.MarkFlagRequired("startup")
	_ = cmd.MarkFlagRequired("investor")
	return cmd
}

func newTokenCommand(e *env) *cobra.Command {
	var user, role, email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token with AUTH_JWT_SECRET for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := uuid.New()
			if s := strings.TrimSpace(user); s != "" {
				parsed, err := uuid.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				id = parsed
			}
			r, ok := jwt.ParseRole(role)
			if !ok {
				return fmt.Errorf("invalid --role %q: want startup, investor or admin", role)
			}

			svc := jwt.NewHMACService(e.cfg.Auth.JWTSecret, e.cfg.Auth.JWTIssuer, ttl)
			tok, err := svc.GenerateAccessToken(id, r, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user id (default: random)")
	cmd.Flags().StringVar(&role, "role", string(jwt.RoleStartup), "startup, investor or admin")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
