package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

var (
	discoverQuery string
	discoverGenre string
	discoverPage  int
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover popular movies, optionally by genre or title",
	Long: `Show one page of popular movies together with the genre list.

A title query takes precedence over a genre. The genre may be given by id or
by name, for example --genre 28 or --genre action.`,
	PreRunE: initializeApp,
	RunE:    runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVarP(&discoverQuery, "query", "q", "", "search movies by title")
	discoverCmd.Flags().StringVarP(&discoverGenre, "genre", "g", "", "genre id or name")
	discoverCmd.Flags().IntVar(&discoverPage, "page", 1, "page number")
	addFilterFlags(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	listFilter := tmdb.ListFilter{
		Query: strings.TrimSpace(discoverQuery),
		Page:  discoverPage,
	}

	if discoverGenre != "" && listFilter.Query == "" {
		genreID, err := browser.ResolveGenre(ctx, discoverGenre)
		if err != nil {
			return err
		}
		listFilter.GenreID = genreID
	}

	logger.Info().
		Str("query", listFilter.Query).
		Int("genre", listFilter.GenreID).
		Int("page", listFilter.Page).
		Msg("Discovering movies")

	view := browser.Home(ctx, listFilter)
	if view.MoviesErr != nil {
		return view.MoviesErr
	}

	movies, err := applyFilter(ctx, view.Movies.Results)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if view.GenresErr == nil && len(view.Genres) > 0 {
		names := make([]string, 0, len(view.Genres))
		for _, genre := range view.Genres {
			names = append(names, genre.Name)
		}
		fmt.Fprintf(&sb, "Genres: %s\n", strings.Join(names, ", "))
	}
	// The banner comes from the filtered list so it never shows an excluded movie
	view.Movies.Results = movies
	if featured, ok := view.Featured(); ok {
		sb.WriteString(formatter.FormatBanner(featured))
	}
	sb.WriteString(formatter.FormatMoviePage(movies, view.Pager.Page, view.Pager.TotalPages))
	if view.Pager.HasNext() {
		fmt.Fprintf(&sb, "\nMore results: --page %d", view.Pager.Next().Page)
	}

	return render(sb.String(), view.Movies)
}

