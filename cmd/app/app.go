package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/authclient"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/config"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/db"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/logger"
	"github.com/yizeng/gab/gin/gorm/relief-api/internal/repository/dao"
)

const defaultConfigPath = "./cmd/app/config.yml"

var configPath string

// Start runs the CLI. Without a subcommand it serves the API.
func Start() error {
	root := &cobra.Command{
		Use:           "relief-api",
		Short:         "REST API for disaster relief volunteers, missions and donations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		newMigrateCmd(),
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the reference data (profiles, catalogs, default city)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, postgresDB, err := bootstrap(nil)
				if err != nil {
					return err
				}
				if err = dao.InitTables(postgresDB); err != nil {
					return fmt.Errorf("failed to migrate tables -> %w", err)
				}
				if err = dao.Seed(postgresDB); err != nil {
					return fmt.Errorf("failed to seed database -> %w", err)
				}
				zap.L().Info("database seeded")
				return nil
			},
		},
	)

	return root.Execute()
}

func newMigrateCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, postgresDB, err := bootstrap(nil)
			if err != nil {
				return err
			}
			return migrate(postgresDB, reset)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table of the public schema before migrating")

	return cmd
}

func migrate(postgresDB *gorm.DB, reset bool) error {
	if !reset {
		if err := dao.InitTables(postgresDB); err != nil {
			return fmt.Errorf("failed to migrate tables -> %w", err)
		}
		zap.L().Info("tables migrated")
		return nil
	}

	if err := dao.ResetTables(postgresDB); err != nil {
		return fmt.Errorf("failed to reset tables -> %w", err)
	}
	zap.L().Warn("tables dropped and migrated again")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, postgresDB, err := bootstrap(func(reloaded *config.AppConfig) {
		if err := logger.SetLevel(reloaded.API.LogLevel); err != nil {
			zap.L().Warn("failed to apply log level", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}
	if err = dao.Seed(postgresDB); err != nil {
		return fmt.Errorf("failed to seed database -> %w", err)
	}

	s, err := api.NewServer(conf, postgresDB, authclient.New(conf.Auth))
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = s.Run(ctx); err != nil {
		return fmt.Errorf("failed to run the server -> %w", err)
	}

	return nil
}

// bootstrap loads the config, sets up the logger and opens the database. A non nil onChange
// enables config hot reload.
func bootstrap(onChange func(conf *config.AppConfig)) (*config.AppConfig, *gorm.DB, error) {
	var (
		conf *config.AppConfig
		err  error
	)
	if onChange != nil {
		conf, err = config.LoadAndWatch(configPath, onChange)
	} else {
		conf, err = config.Load(configPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to set log level -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL, conf.Postgres)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}
