package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <query>...",
	Short:   "Search movies by title",
	Long:    `Search movies by title and show the first page of results.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addFilterFlags(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	logger.Info().Str("query", query).Msg("Searching movies")

	movies, err := tmdbClient.SearchMovies(ctx, query)
	if err != nil {
		return err
	}

	movies, err = applyFilter(ctx, movies)
	if err != nil {
		return err
	}

	return render(formatter.FormatMovieList(movies), movies)
}
