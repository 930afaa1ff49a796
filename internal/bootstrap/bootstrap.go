package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	accountinadapter "sparks/internal/modules/account/adapter/in"
	accountoutadapter "sparks/internal/modules/account/adapter/out"
	accountdto "sparks/internal/modules/account/dto"
	accountservice "sparks/internal/modules/account/service"
	accountusecase "sparks/internal/modules/account/usecase"
	journeyinadapter "sparks/internal/modules/journey/adapter/in"
	journeyoutadapter "sparks/internal/modules/journey/adapter/out"
	journeyservice "sparks/internal/modules/journey/service"
	journeyusecase "sparks/internal/modules/journey/usecase"
	"sparks/internal/platform/clock"
	"sparks/internal/platform/config"
	"sparks/internal/platform/id"
	"sparks/internal/platform/logging"
	"sparks/internal/platform/sparkapi"
	uiapp "sparks/internal/ui/app"
)

type App struct {
	AccountCLI accountinadapter.CLIHandler
	JourneyCLI journeyinadapter.CLIHandler
	Logger     *zap.Logger

	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	return NewWithLogger(cfg, logger)
}

// NewWithLogger wires the application around an existing logger.
func NewWithLogger(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	client := sparkapi.New(sparkapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger.Named("api"),
		IDs:     ids,
	})

	credentials, err := accountoutadapter.NewSQLiteCredentialStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new credential store: %w", err)
	}
	accountUC := accountusecase.NewInteractor(accountservice.NewSessionService(
		accountoutadapter.NewAPIAuthGateway(client),
		credentials,
		client,
		logger,
	))

	journeyUC := journeyusecase.NewInteractor(journeyservice.NewDataStore(journeyservice.Ports{
		Quests:      journeyoutadapter.NewAPIQuestGateway(client, logger.Named("quests")),
		Reflections: journeyoutadapter.NewAPIReflectionGateway(client, logger.Named("reflections")),
		Rewards:     journeyoutadapter.NewAPIRewardGateway(client),
		Mood:        journeyoutadapter.NewAPIMoodGateway(client),
		Analytics:   journeyoutadapter.NewAPIAnalyticsGateway(client),
		Media:       journeyoutadapter.NewAPIMediaUploader(client),
		Journal:     journeyoutadapter.NewVaultJournalStore(cfg.JournalDir),
		Session:     journeyoutadapter.NewAccountStandingAdapter(accountUC),
	}, clk, ids, logger))

	client.OnUnauthorized(func() {
		logger.Warn("credential rejected by backend; signing out")
		if err := accountUC.Expire(context.Background()); err != nil {
			logger.Error("expire session", zap.Error(err))
		}
	})
	accountUC.Watch(func(session accountdto.SessionOutput) {
		if !session.Authenticated {
			journeyUC.Clear(context.Background())
			return
		}
		if err := journeyUC.Refresh(context.Background()); err != nil {
			logger.Warn("initial refresh", zap.Error(err))
		}
	})

	return &App{
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
		JourneyCLI: journeyinadapter.NewCLIHandler(journeyUC),
		Logger:     logger,
		closers:    []func() error{credentials.Close, ignoreSyncError(logger)},
	}, nil
}

// Start restores the persisted session. A restored session triggers the
// first data refresh.
func (a *App) Start(ctx context.Context) error {
	_, err := a.AccountCLI.Restore(ctx)
	return err
}

func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AccountCLI, app.JourneyCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Sync on a file-backed logger can fail on some platforms for reasons that
// do not matter at shutdown.
func ignoreSyncError(logger *zap.Logger) func() error {
	return func() error {
		_ = logger.Sync()
		return nil
	}
}
