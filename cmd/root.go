package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/display"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

const filterCacheSize = 64

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	browser    *browse.Browser
	formatter  *display.ConsoleFormatter
	filters    *filter.Manager

	// Shared command flags
	filterExpr string
	preset     string
	outputMode string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse TMDB movies and manage your favourites from the terminal",
	Long: `marquee is a CLI for The Movie Database. It lets you discover movies by
genre or title, read movie details, and keep a list of favourite movies on
your TMDB account.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the build information reported by the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "", "output format: table or json (overrides display.output)")
}

// initializeApp loads the configuration and builds the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("output") {
		if outputMode != "table" && outputMode != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputMode)
		}
		cfg.Display.Output = outputMode
	}

	logger = setupLogger(cfg.Logging)

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.ClientConfig(), logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithUserAgent("marquee/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	browser = browse.NewBrowser(tmdbClient, logger)
	formatter = display.NewConsoleFormatter(cfg.TMDB.ImageBaseURL, cfg.Display.ShowDetails)

	filters = filter.NewManager(filter.WithCompiler(filter.NewCompiler(
		filter.WithCache(filterCacheSize),
		filter.WithCustomFunctions(map[string]any{
			"genreID": genreResolver(cmd.Context()),
		}),
	)))
	presets := make(map[string]string, len(cfg.Filter.Presets))
	for name, p := range cfg.Filter.Presets {
		presets[name] = p.Expression
	}
	if err := filters.RegisterFilters(presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// genreResolver returns the genreID filter helper. It resolves a genre
// name to its id and remembers every answer, so the genre list is only
// fetched when an expression uses it.
func genreResolver(ctx context.Context) func(string) (int, error) {
	var (
		mu    sync.Mutex
		cache = make(map[string]int)
	)

	return func(name string) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		if id, ok := cache[name]; ok {
			return id, nil
		}
		id, err := browser.ResolveGenre(ctx, name)
		if err != nil {
			return 0, err
		}
		cache[name] = id
		return id, nil
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	color := cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// addFilterFlags registers the client-side filter flags on a listing command
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the results")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// getFilterExpression determines the filter expression to use. An empty
// result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if _, ok := filters.GetFilter(preset); ok {
			return preset, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

// applyFilter narrows movies with the selected filter, if any
func applyFilter(ctx context.Context, movies []tmdb.MovieSummary) ([]tmdb.MovieSummary, error) {
	expression, err := getFilterExpression()
	if err != nil {
		return nil, err
	}
	if expression == "" {
		return movies, nil
	}

	logger.Debug().Str("filter", expression).Int("movies", len(movies)).Msg("Applying filter")

	matches, err := filters.ApplyNamed(ctx, expression, movies)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return matches, nil
}

// render prints text, or v as JSON when JSON output is selected
func render(text string, v any) error {
	if cfg.Display.Output == "json" {
		return display.WriteJSON(os.Stdout, v)
	}
	fmt.Println(text)
	return nil
}
