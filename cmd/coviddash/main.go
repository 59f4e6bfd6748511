package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"CovidDash/internal/action"
	"CovidDash/internal/app"
	"CovidDash/internal/config"
	"CovidDash/internal/domain"
	"CovidDash/internal/logging"
)

// cli carries the global flags and what PersistentPreRunE builds from them.
type cli struct {
	configPath string
	apiURL     string
	logLevel   string

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "coviddash",
		Short: "COVID-19 dashboard client",
		Long: `coviddash drives the COVID-19 dashboard backend.

Run without arguments to start the interactive terminal dashboard, or use a
subcommand to run a single action and print the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.closeLog != nil {
				_ = c.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(c.cfg, c.logger)
			if err != nil {
				return err
			}
			return application.Interactive(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (or set COVIDASH_CONFIG)")
	root.PersistentFlags().StringVar(&c.apiURL, "api", "", "Backend base URL (or set COVIDASH_API_URL)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		c.regionCmd(),
		c.nationalCmd(),
		c.commentsCmd(),
		c.commentCmd(),
		c.edaCmd(),
		c.forecastCmd(),
		c.healthCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	c.cfg = config.Load(c.configPath)
	if c.apiURL != "" {
		c.cfg.API.BaseURL = c.apiURL
	}
	if c.logLevel != "" {
		c.cfg.Logging.Level = c.logLevel
	}

	// The interactive dashboard owns the terminal: log to the file or nowhere.
	var console io.Writer = cmd.ErrOrStderr()
	if !cmd.HasParent() {
		console = io.Discard
	}

	logger, closeLog, err := logging.Open(c.cfg.Logging, console)
	if err != nil {
		return err
	}
	c.logger, c.closeLog = logger, closeLog
	return nil
}

// run builds the application, lets fill set page fields and runs name.
func (c *cli) run(cmd *cobra.Command, name string, fill func(*app.Application)) (*app.Application, error) {
	application, err := app.New(c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	if fill != nil {
		fill(application)
	}
	return application, application.Run(cmd.Context(), name, cmd.OutOrStdout())
}

func (c *cli) regionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "region STATE",
		Short: "Chart daily cases and deaths of a state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.run(cmd, action.LoadRegion, func(a *app.Application) {
				a.Page().SetValue(domain.FieldRegion, joinArgs(args))
			})
			return err
		},
	}
}

func (c *cli) nationalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "national",
		Short: "Chart daily cases and deaths of the whole USA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.run(cmd, action.LoadNational, nil)
			return err
		},
	}
}

func (c *cli) commentsCmd() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.run(cmd, action.RefreshComments, func(a *app.Application) {
				a.Page().SetValue(domain.FieldCommentFilter, state)
			})
			return err
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Only comments about this state")
	return cmd
}

func (c *cli) commentCmd() *cobra.Command {
	var name, state, tags string
	cmd := &cobra.Command{
		Use:   "comment TEXT",
		Short: "Post a comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.run(cmd, action.PostComment, func(a *app.Application) {
				p := a.Page()
				p.SetValue(domain.FieldCommentName, name)
				p.SetValue(domain.FieldCommentText, joinArgs(args))
				p.SetValue(domain.FieldCommentState, state)
				p.SetValue(domain.FieldCommentTags, tags)
			})
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Author name (default Anonymous)")
	cmd.Flags().StringVar(&state, "state", "", "State the comment is about")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	return cmd
}

func (c *cli) edaCmd() *cobra.Command {
	var open, download bool
	cmd := &cobra.Command{
		Use:   "eda [STATE]",
		Short: "Run the exploratory analysis of a state",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.run(cmd, action.RunEDA, func(a *app.Application) {
				a.Page().SetValue(domain.FieldEDARegion, joinArgs(args))
			})
			if err != nil {
				return err
			}
			if download {
				dest, err := application.Dashboard().Download(cmd.Context(), domain.LinkDownloadCSV)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", dest)
			}
			if open {
				for _, id := range []domain.ControlID{domain.LinkOpenCases, domain.LinkOpenDeaths} {
					if err := application.Dashboard().Open(id); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the charts in a browser")
	cmd.Flags().BoolVar(&download, "download", false, "Save the CSV into the download directory")
	return cmd
}

func (c *cli) forecastCmd() *cobra.Command {
	var days string
	var open bool
	cmd := &cobra.Command{
		Use:   "forecast [STATE]",
		Short: "Build a forecast for a state",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := c.run(cmd, action.RunForecast, func(a *app.Application) {
				a.Page().SetValue(domain.FieldForecastState, joinArgs(args))
				a.Page().SetValue(domain.FieldForecastDays, days)
			})
			if err != nil {
				return err
			}
			if open {
				return application.Dashboard().Open(domain.LinkOpenForecast)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&days, "days", "", "Forecast horizon in days (default from config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the forecast in a browser")
	return cmd
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(c.cfg, c.logger)
			if err != nil {
				return err
			}
			state, err := application.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
