package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/legion/internal/app"
	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/config"
	"github.com/baharkarakas/legion/internal/logger"
	"github.com/baharkarakas/legion/internal/query"
	repo "github.com/baharkarakas/legion/internal/repository"
	"github.com/baharkarakas/legion/internal/seed"
	"github.com/baharkarakas/legion/internal/services"
)

type cli struct {
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "legionctl",
		Short:         "Maintenance commands for the legion API store",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			c.log = logger.NewWithWriter(c.cfg.Env, cmd.ErrOrStderr())
			return nil
		},
	}

	c.cfg = config.Load()
	f := root.PersistentFlags()
	f.StringVar(&c.cfg.StoreDriver, "store", c.cfg.StoreDriver, "store driver: postgres or file")
	f.StringVar(&c.cfg.DatabaseURL, "database-url", c.cfg.DatabaseURL, "postgres connection string")
	f.StringVar(&c.cfg.DataFile, "data-file", c.cfg.DataFile, "path of the JSON data file")

	root.AddCommand(c.migrateCmd(), c.seedCmd(), c.workoutsCmd())
	return root
}

func (c *cli) open(ctx context.Context, migrate bool) (repo.Store, error) {
	return app.OpenStore(ctx, c.cfg, migrate, c.log)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations (postgres only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.StoreDriver != config.StorePostgres {
				return fmt.Errorf("migrate needs --store=%s", config.StorePostgres)
			}
			s, err := c.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			return s.Close()
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the bundled demo data into empty collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := seed.Bundled()
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), s, auth.NewHasher(), snap, c.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "members=%d workouts=%d users=%d records=%d\n",
				res.Members, res.Workouts, res.Users, res.Records)
			return nil
		},
	}
}

func (c *cli) workoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "Workout queries",
	}

	var p query.WorkoutParams
	random := &cobra.Command{
		Use:   "random",
		Short: "Print one random workout matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			w, err := services.NewWorkoutService(s, nil).Random(cmd.Context(), p)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(w)
		},
	}
	random.Flags().StringVar(&p.Mode, "mode", "", "case-insensitive substring of the workout mode")
	random.Flags().StringVar(&p.Equipment, "equipment", "", "comma-separated equipment that must all be present")
	random.Flags().StringVar(&p.Sort, "sort", "", "name, mode, createdAt or updatedAt; prefix with - to reverse")

	cmd.AddCommand(random)
	return cmd
}
