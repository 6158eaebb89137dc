package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/display"
)

var favoritesDetails bool

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favourites", "fav"},
	Short:   "List your favourite movies",
	Long: `List the favourite movies of your TMDB account.

Use the add and remove subcommands to change the list.`,
	PreRunE: initializeApp,
	RunE:    runFavorites,
}

var favoritesAddCmd = &cobra.Command{
	Use:     "add <id>...",
	Short:   "Add movies to your favourites",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFavorites(cmd, args, true)
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove movies from your favourites",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFavorites(cmd, args, false)
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd)

	favoritesCmd.Flags().BoolVar(&favoritesDetails, "details", false, "fetch runtime, genres and budget for every favourite")
	addFilterFlags(favoritesCmd)
}

func runFavorites(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	movies, err := applyFilter(ctx, browser.Favorites(ctx))
	if err != nil {
		return err
	}

	if !favoritesDetails {
		return render(formatter.FormatFavorites(movies), movies)
	}

	details := browse.NewLoader(tmdbClient, browse.DefaultConcurrency, logger).Details(ctx, movies)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFavourite Movies (%d):\n", len(details))
	for _, d := range details {
		fmt.Fprintf(&sb, "\n%s (%s) • %s • %s\n", d.Title, display.ReleaseYear(d.ReleaseDate), display.Runtime(d.Runtime), display.Rating(d.VoteAverage))
		fmt.Fprintf(&sb, "  %s\n", display.JoinNames(d.GenreNames()))
	}

	return render(sb.String(), details)
}

// setFavorites sets the favorite state of each movie id in args
func setFavorites(cmd *cobra.Command, args []string, favorite bool) error {
	ctx := cmd.Context()

	verb := "Added to"
	if !favorite {
		verb = "Removed from"
	}

	var failures int
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid movie id '%s': must be a positive integer", arg)
		}

		if err := browser.SetFavorite(ctx, id, favorite); err != nil {
			fmt.Printf("✗ %d: %v\n", id, err)
			failures++
			continue
		}
		fmt.Printf("✓ %s favourites: %d\n", verb, id)
	}

	if failures > 0 {
		return fmt.Errorf("failed to update %d of %d favourites", failures, len(args))
	}
	return nil
}
