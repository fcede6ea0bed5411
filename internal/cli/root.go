package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TWRT/equipeapp/internal/cache"
	"github.com/TWRT/equipeapp/internal/config"
	"github.com/TWRT/equipeapp/internal/logger"
	"github.com/TWRT/equipeapp/internal/models"
	"github.com/TWRT/equipeapp/internal/repository"
	"github.com/TWRT/equipeapp/internal/service"
)

// app is everything a command needs. It is built once per invocation in the
// root PersistentPreRunE and closed in PersistentPostRunE.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	db      *sql.DB
	service *service.TaskService
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.New(cfg.Env, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := repository.InitDB(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		log.Error().
			Err(err).
			Str("path", cfg.Database.Path).
			Msg("failed to initialize database")
		return nil, err
	}
	log.Debug().
		Str("driver", cfg.Database.Driver).
		Str("path", cfg.Database.Path).
		Msg("initialized database")

	svc := service.NewTaskService(
		repository.NewTaskRepository(db),
		cache.NewMemory[string, []models.Task](cfg.Cache.TTL),
		models.Roster(),
		log,
	)

	return &app{cfg: cfg, logger: log, db: db, service: svc}, nil
}

// NewRootCommand wires the command tree. loadConfig is called before any
// subcommand runs.
func NewRootCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:           "equipeapp",
		Short:         "Track team task requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			built, err := newApp(cfg)
			if err != nil {
				return err
			}
			*a = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
	}

	root.AddCommand(
		newServeCommand(a),
		newTaskCommand(a),
		newDashboardCommand(a),
		newTeamCommand(a),
	)
	return root
}

func Execute() int {
	zerolog.TimestampFieldName = "timestamp"

	root := NewRootCommand(func() (*config.Config, error) {
		return config.Load(".env")
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
