package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bigcal/internal/auth"
	"bigcal/internal/config"
	"bigcal/internal/layout"
	"bigcal/internal/paths"
	"bigcal/internal/timeparse"
)

type App struct {
	Config     *config.Config
	ConfigPath string
	CachePath  string
	Session    *auth.Session
	Location   *time.Location

	// Year is the year requested with --year.
	Year int
	// Demo, ICSPath and Refresh pick the event source; see LoadYear.
	Demo    bool
	ICSPath string
	Refresh bool

	clock func() time.Time
}

// Now returns the current time in the app's configured location.
func (a *App) Now() time.Time {
	now := time.Now
	if a.clock != nil {
		now = a.clock
	}
	return now().In(a.Location)
}

func (a *App) LayoutOptions() layout.Options {
	return layout.Options{
		Location:      a.Location,
		FallbackColor: a.Config.FallbackColor,
		VisibleEvents: a.Config.VisibleEvents,
	}
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bigcal",
		Short:         "Year-at-a-glance calendar for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogging(verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			return startTUI(app)
		},
	}
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config.yaml (defaults to ~/.config/bigcal/config.yaml)")
	flags.String("credentials", "", "Path to OAuth credentials.json (defaults to ~/.config/bigcal/credentials.json)")
	flags.String("year", "", "Year to show: 2025, \"next year\", \"last year\" (defaults to the current year)")
	flags.Bool("demo", false, "Show generated demo events instead of Google Calendar")
	flags.String("ics", "", "Read events from an ICS file instead of Google Calendar")
	flags.Bool("refresh", false, "Ignore the local cache and fetch again")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newYearCmd())
	cmd.AddCommand(newMonthCmd())
	cmd.AddCommand(newEventCmd())
	cmd.AddCommand(newCalendarsCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogoutCmd())

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	loc, err := timeparse.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	credPath, _ := cmd.Flags().GetString("credentials")
	if credPath == "" {
		credPath, err = paths.CredentialsPath()
		if err != nil {
			return nil, err
		}
	}
	tokenPath, err := paths.TokenPath()
	if err != nil {
		return nil, err
	}
	cachePath, err := paths.CachePath()
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		CachePath:  cachePath,
		Session:    auth.NewSession(credPath, tokenPath),
		Location:   loc,
	}
	demo, _ := cmd.Flags().GetBool("demo")
	app.Demo = demo || cfg.Demo
	app.ICSPath, _ = cmd.Flags().GetString("ics")
	app.Refresh, _ = cmd.Flags().GetBool("refresh")

	yearText, _ := cmd.Flags().GetString("year")
	app.Year, err = timeparse.ParseYear(yearText, app.Now(), loc)
	if err != nil {
		return nil, err
	}
	slog.Debug("app initialized", "config", cfgPath, "timezone", loc.String(), "year", app.Year, "demo", app.Demo)
	return app, nil
}

func (a *App) SaveConfig() error {
	if a == nil || a.Config == nil || a.ConfigPath == "" {
		return fmt.Errorf("config is not initialized")
	}
	return config.Save(a.ConfigPath, a.Config)
}
