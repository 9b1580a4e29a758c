package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/api"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/config"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/logging"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/page"
	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/tui"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	verbose  bool
	endpoint string
	pagePath string
	watch    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Terminal portfolio with a chat assistant",
	Long: `portfolio renders a markdown portfolio page in the terminal with a nav
bar that scrolls smoothly to each section, and a chat widget that forwards
questions to a remote chat endpoint.

Run without arguments to open the interactive page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd)

		logger, err = logging.New(logging.Options{
			File:    cfg.LogFile,
			Level:   cfg.LogLevel,
			Verbose: verbose,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the nav links of the page and where they lead",
	Args:  cobra.NoArgs,
	RunE:  listSections,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "portfolio %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Chat endpoint URL (or set PORTFOLIO_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&pagePath, "page", "", "Markdown page to show instead of the built-in one (or set PORTFOLIO_PAGE)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload the page when its file changes")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags lets explicit flags win over the config file and environment.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("page") {
		cfg.Page = pagePath
	}
	if flags.Changed("watch") {
		cfg.Watch = watch
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "portfolio is running without an interactive terminal")
		fmt.Fprintln(out, "Run it in a terminal for the full page, or use 'portfolio ask' to chat")
		return nil
	}

	doc, err := page.Load(cfg.Page)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := api.NewClient(cfg.Endpoint)
	opts := tui.Options{
		Document:  doc,
		PagePath:  cfg.Page,
		Transport: client,
		Logger:    logger,
		Style:     "light",
	}
	if lipgloss.HasDarkBackground() {
		opts.Style = "dark"
	}

	if cfg.Watch && cfg.Page != "" {
		w, err := page.NewWatcher(cfg.Page, logger)
		if err != nil {
			return err
		}
		w.Start(ctx)
		defer w.Stop()
		opts.Changes = w.Changes()
	}

	logger.Info("starting portfolio",
		zap.String("version", Version),
		zap.String("page", cfg.Page),
		zap.String("endpoint", client.Endpoint()))

	p := tea.NewProgram(tui.New(ctx, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
