package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sparks/internal/bootstrap"
	"sparks/internal/platform/config"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir  string
	apiURL   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	defaultDir, err := config.DefaultDataDir()
	if err != nil {
		defaultDir = ".sparks"
	}

	root := &cobra.Command{
		Use:           "sparks",
		Short:         "Solo Sparks: quests, reflections and rewards for personal growth",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDir, "directory for the session database, logs and journal")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newRegisterCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoamiCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newMoodCmd(flags))
	root.AddCommand(newQuestsCmd(flags))
	root.AddCommand(newReflectionsCmd(flags))
	root.AddCommand(newRewardsCmd(flags))
	root.AddCommand(newPointsCmd(flags))
	root.AddCommand(newAnalyticsCmd(flags))
	root.AddCommand(newUploadCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir, config.Overrides{APIBaseURL: flags.apiURL, LogLevel: flags.logLevel})
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := app.Start(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// withApp runs fn against a started app and closes it afterwards.
func withApp(flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

// requireSession fails fast for commands that need a signed-in user.
func requireSession(ctx context.Context, app *bootstrap.App) error {
	if !app.AccountCLI.Current(ctx).Authenticated {
		return fmt.Errorf("not signed in: run `sparks login` or `sparks register`")
	}
	return nil
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := requireSession(ctx, app); err != nil {
					return err
				}
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and sync status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				session := app.AccountCLI.Current(ctx)
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "session: %s\n", session.State)
				if session.Profile != nil {
					_, _ = fmt.Fprintf(out, "user: %s <%s>\n", session.Profile.Name, session.Profile.Email)
				}
				status := app.JourneyCLI.Status(ctx)
				_, _ = fmt.Fprintf(out, "loading: %t\n", status.Loading)
				if status.Error != "" {
					_, _ = fmt.Fprintf(out, "last error: %s\n", status.Error)
				}
				return nil
			})
		},
	}
}
