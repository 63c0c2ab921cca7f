package cli

import (
	"context"
	"fmt"
	"io"

	"pitchmatch/internal/app"
	"pitchmatch/internal/config"
	"pitchmatch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const name = "matchctl"

// env carries what every subcommand resolves lazily: commands that only
// sign tokens never touch the database.
type env struct {
	v      *viper.Viper
	out    io.Writer
	cfg    config.Config
	logger *zap.Logger
}

// NewRootCommand builds the matchctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	e := &env{v: config.NewViper(), out: out}

	root := &cobra.Command{
		Use:           name,
		Short:         name + " operates the pitchmatch scoring store from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = e.v.BindPFlag("LOG_JSON", root.PersistentFlags().Lookup("json"))
	_ = e.v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newMigrateCommand(e),
		newSeedCommand(e),
		newRecalculateCommand(e),
		newScoreCommand(e),
		newTokenCommand(e),
	)

	return root
}

// Execute runs matchctl with the process arguments.
func Execute(ctx context.Context, out io.Writer) error {
	return NewRootCommand(out).ExecuteContext(ctx)
}

func (e *env) load() error {
	cfg, err := config.LoadFrom(e.v)
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.App.LogJSON, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = lg.Named(name)
	return nil
}

// withContainer connects to the stores for the duration of fn.
func (e *env) withContainer(fn func(c *app.Container) error) error {
	c, err := app.NewContainer(e.cfg, e.logger)
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			e.logger.Warn("close container", zap.Error(err))
		}
	}()
	return fn(c)
}
