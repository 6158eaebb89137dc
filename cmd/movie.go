package cmd

import (
	"github.com/spf13/cobra"
)

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:     "movie <id>",
	Short:   "Show the details of a movie",
	Long:    `Show the full details of a movie by its TMDB id, including whether it is one of your favourites.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runMovie,
}

func init() {
	rootCmd.AddCommand(movieCmd)
}

func runMovie(cmd *cobra.Command, args []string) error {
	view, err := browser.Detail(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(formatter.FormatMovieDetail(view.Movie, view.IsFavorite), struct {
		Movie      any  `json:"movie"`
		IsFavorite bool `json:"is_favorite"`
	}{view.Movie, view.IsFavorite})
}
