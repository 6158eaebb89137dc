package cmd

import (
	"github.com/spf13/cobra"
)

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:     "genres",
	Short:   "List the movie genres",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := tmdbClient.ListGenres(cmd.Context())
		if err != nil {
			return err
		}
		return render(formatter.FormatGenres(genres), genres)
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}
