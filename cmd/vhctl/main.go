package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volunteerhub-backend/pkg/client"
)

// App holds what every command needs.
type App struct {
	ctx           context.Context
	logger        *zap.Logger
	auth          *client.AuthStore
	state         client.AuthState
	sessionFile   client.FilePersister
	notifications client.NotificationState
}

var (
	apiURL      string
	sessionPath string
	verbose     bool
	app         *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vhctl",
		Short:         "VolunteerHub CLI",
		Long:          `Browse events, register for them and read notifications from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	defaultURL := os.Getenv("VH_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API base URL (env VH_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Session file (default ~/.vhctl/session.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(managerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initApp() error {
	app = &App{ctx: context.Background(), logger: zap.NewNop()}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		app.logger = logger
	}

	if sessionPath == "" {
		path, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		sessionPath = path
	}
	app.sessionFile = client.FilePersister{Path: sessionPath}

	api := client.New(apiURL)
	app.auth = client.NewAuthStore(api, app.sessionFile, client.EnvPersister{})

	state, err := app.auth.Restore(app.ctx)
	if err != nil {
		app.logger.Warn("could not restore session", zap.Error(err))
	}
	app.state = state
	app.logger.Debug("session restored",
		zap.String("api", apiURL),
		zap.Bool("authenticated", state.Authenticated()))
	return nil
}

// requireLogin returns a token-bound client or ErrNotAuthenticated.
func requireLogin() (*client.Client, error) {
	if !app.state.Authenticated() {
		return nil, fmt.Errorf("%w: run `vhctl login` or set %s", client.ErrNotAuthenticated, client.TokenEnv)
	}
	return app.auth.Client(app.state), nil
}
