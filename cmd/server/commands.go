package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lumen-api/internal/config"
	"github.com/phrazzld/lumen-api/internal/platform/logger"
	"github.com/phrazzld/lumen-api/internal/platform/postgres"
	"github.com/phrazzld/lumen-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// errInvalidCredentials makes check-config exit non-zero.
var errInvalidCredentials = errors.New("one or more credentials look invalid")

// configLoader loads the configuration named by the --config flag.
type configLoader func() (*config.Config, error)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "server",
		Short:        "Lumen lesson generation API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default ./config.yaml, environment variables use the LUMEN_ prefix)")

	load := func() (*config.Config, error) {
		return config.LoadFile(configPath)
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newCheckConfigCmd(load),
		newTokenCmd(load),
	)
	return root
}

// setup loads the configuration and installs the configured logger as the default.
func setup(load configLoader) (*config.Config, *slog.Logger, error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(load)
			if err != nil {
				return err
			}
			log.Info("Lumen API server starting",
				slog.Int("port", cfg.Server.Port),
				slog.String("database_backend", cfg.Database.Backend),
				slog.String("llm_provider", cfg.LLM.Provider))

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("failed to initialize application", slog.String("error", err.Error()))
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short:     "Run database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(load)
			if err != nil {
				return err
			}
			if cfg.Database.Backend != "postgres" {
				return fmt.Errorf("migrations need the postgres backend, configured backend is %q", cfg.Database.Backend)
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database.URL, log)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := db.Close(); cerr != nil {
					log.Error("failed to close database", slog.String("error", cerr.Error()))
				}
			}()

			return postgres.Migrate(cmd.Context(), db, args[0], log)
		},
	}
}

func newCheckConfigCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Check the configured credentials for obvious mistakes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			valid := true
			for _, report := range config.ValidateCredentials(cfg) {
				if report.Valid() {
					fmt.Fprintf(out, "%s: ok\n", report.Name)
					continue
				}
				valid = false
				for _, problem := range report.Errors {
					fmt.Fprintf(out, "%s: %s\n", report.Name, problem)
				}
			}
			if !valid {
				return errInvalidCredentials
			}
			return nil
		},
	}
}

func newTokenCmd(load configLoader) *cobra.Command {
	var subject, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the teacher endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			jwtService, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("failed to create JWT service: %w", err)
			}
			token, err := jwtService.GenerateToken(cmd.Context(), subject, role)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "teacher", "token subject")
	cmd.Flags().StringVar(&role, "role", auth.RoleTeacher, "role claim")
	return cmd
}
