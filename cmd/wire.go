package cmd

import (
	"errors"
	"fmt"
	"os"

	boardadapter "github.com/bnema/roundctl/internal/adapters/render/board"
	sqlitestore "github.com/bnema/roundctl/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/roundctl/internal/adapters/repo/toml"
	"github.com/bnema/roundctl/internal/application"
	"github.com/bnema/roundctl/internal/config"
	"github.com/bnema/roundctl/internal/logging"
	"github.com/bnema/roundctl/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg            config.Config
	logger         *zap.Logger
	clock          ports.Clock
	archive        ports.RoundArchive
	predictor      *application.Predictor
	archiveService *application.ArchiveService
	boardRenderer  func(boardadapter.Board, boardadapter.RenderOptions) (string, error)
	closers        []func() error
}

func wireApp(verbose bool) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	cfg, err := config.Load(v, homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{
		cfg:           cfg,
		logger:        logger,
		clock:         ports.SystemClock{},
		boardRenderer: boardadapter.Render,
	}

	switch cfg.ArchiveDriver {
	case config.ArchiveDriverTOML:
		v.Set(config.KeyArchivePath, cfg.ArchivePath)
		repo, err := tomlrepo.NewArchiveRepository(v)
		if err != nil {
			return nil, fmt.Errorf("wire toml archive: %w", err)
		}
		a.archive = repo
	case config.ArchiveDriverSQLite:
		store, err := sqlitestore.Open(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("wire sqlite archive: %w", err)
		}
		a.archive = store
		a.closers = append(a.closers, store.Close)
	case config.ArchiveDriverNone:
	}

	a.predictor = application.NewPredictor(a.clock)
	a.archiveService = application.NewArchiveService(a.archive)

	logger.Debug("app wired",
		zap.String("archive_driver", string(cfg.ArchiveDriver)),
		zap.String("archive_path", cfg.ArchivePath),
		zap.Duration("round_duration", cfg.RoundDuration))

	return a, nil
}

func (a *app) engineConfig() application.EngineConfig {
	return application.EngineConfig{
		RoundDuration:   a.cfg.RoundDuration,
		HistoryCapacity: a.cfg.HistoryCapacity,
		Location:        a.cfg.Location,
	}
}

func (a *app) newEngine() (*application.Engine, error) {
	engine, err := application.NewEngine(a.engineConfig(), a.clock, a.archive, a.logger)
	if err != nil {
		return nil, fmt.Errorf("start round engine: %w", err)
	}
	return engine, nil
}

func (a *app) renderOptions() boardadapter.RenderOptions {
	return boardadapter.RenderOptions{Location: a.cfg.Location}
}

func (a *app) close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil

	if a.logger != nil {
		// Sync on a terminal stderr reports EINVAL/ENOTTY on some platforms.
		_ = a.logger.Sync()
	}

	return errors.Join(errs...)
}
