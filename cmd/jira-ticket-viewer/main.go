package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jira-ticket-viewer/internal/common"
	"jira-ticket-viewer/internal/handlers"
	"jira-ticket-viewer/internal/services"

	"github.com/spf13/cobra"
)

const serviceName = "jira-ticket-viewer"

type options struct {
	configPath string
	mode       string
	quiet      bool
	validate   bool
	noColor    bool
	timeout    time.Duration
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   serviceName + " [TICKET_KEY]",
		Short: "Fetch a Jira ticket and print its details",
		Long: `Fetches a single Jira issue through the REST API v3 and prints a readable report.
Credentials come from the TOML config file or JIRA_BASE_URL, JIRA_EMAIL and JIRA_API_TOKEN.
Without a ticket key the configured default ticket is fetched.`,
		Version:       common.GetFullVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return run(cmd.Context(), opts, key)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	rootCmd.Flags().StringVar(&opts.mode, "mode", "dev", "Environment mode: 'dev', 'development', 'prod', or 'production'")
	rootCmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Suppress banner and print the ticket as JSON")
	rootCmd.Flags().BoolVar(&opts.validate, "validate", false, "Validate configuration and exit")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Overall deadline including retries (0 means none)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			common.PrintError(err.Error())
		}
		os.Exit(1)
	}
}

// reportedError marks failures run has already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func run(ctx context.Context, opts *options, key string) error {
	common.SetColorEnabled(!opts.noColor)
	report := handlers.NewReportHandler(os.Stdout, !opts.noColor)

	cfg, err := common.LoadConfig(opts.configPath)
	if err != nil {
		return fail(report, opts, "Failed to load configuration", err)
	}
	cfg.Viewer.Environment = parseMode(opts.mode)

	if opts.validate {
		if !opts.quiet {
			common.PrintSuccess("Configuration is valid")
		}
		return nil
	}

	if err := common.InitLogger(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := common.GetLogger()

	logger.Info().
		Str("version", common.GetVersion()).
		Str("build", common.GetBuild()).
		Str("environment", cfg.Viewer.Environment).
		Msg("Starting Jira Ticket Viewer")

	if !opts.quiet {
		common.PrintBanner(cfg.Viewer.Name, cfg.Viewer.Environment, cfg.Jira.BaseURL, common.GetLogFilePath())
	}

	creds, err := cfg.Jira.Credentials()
	if err != nil {
		return fail(report, opts, "Invalid Jira configuration", err)
	}

	auth, err := services.NewAuthHeaderProvider(creds)
	if err != nil {
		return fail(report, opts, "Invalid Jira configuration", err)
	}

	client := services.NewJiraClient(creds, auth, services.NewRetryPolicy(creds), logger)
	tickets := services.NewTicketService(client, logger, cfg.Jira.ExpandRendered)

	if strings.TrimSpace(key) == "" {
		key = cfg.Viewer.DefaultTicket
	}

	warnings := cfg.Warnings()
	if opts.timeout > 0 && opts.timeout < creds.AttemptTimeout() {
		warnings = append(warnings, fmt.Sprintf(
			"--timeout %s is shorter than one request attempt (%s); retries may never run",
			opts.timeout, creds.AttemptTimeout()))
	}
	for _, warning := range warnings {
		logger.Warn().Msg(warning)
		if !opts.quiet {
			common.PrintWarning(warning)
		}
	}

	if !opts.quiet {
		common.PrintInfo(fmt.Sprintf("Fetching ticket %s", strings.TrimSpace(key)))
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	start := time.Now()
	ticket, err := tickets.GetTicket(ctx, key)
	if err != nil {
		logger.Error().
			Str("ticket", key).
			Str("error_type", string(common.ErrorTypeOf(err))).
			Err(err).
			Msg("Failed to fetch ticket")
		return fail(report, opts, "Error fetching ticket", err)
	}

	if opts.quiet {
		return report.RenderJSON(ticket, time.Since(start))
	}

	report.RenderTicket(ticket)
	common.PrintSuccess("Ticket details retrieved successfully!")
	return nil
}

// fail reports err in the selected output mode. The returned error is
// marked as reported so main only sets the exit code.
func fail(report *handlers.ReportHandler, opts *options, title string, err error) error {
	if opts.quiet {
		if jsonErr := report.RenderJSONError(err); jsonErr != nil {
			return jsonErr
		}
		return &reportedError{err: err}
	}

	common.PrintError(fmt.Sprintf("%s: %s", title, message(err)))
	var je *common.JiraError
	if errors.As(err, &je) && je.Cause != nil {
		fmt.Fprintf(os.Stderr, "Cause: %s\n", je.Cause.Error())
	}
	return &reportedError{err: err}
}

// message prefers the human readable message of a JiraError over its tagged form
func message(err error) string {
	var je *common.JiraError
	if errors.As(err, &je) {
		if je.Details != "" {
			return je.Message + ": " + je.Details
		}
		return je.Message
	}
	return err.Error()
}

func parseMode(mode string) string {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return "production"
	default:
		return "development"
	}
}
