package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

const overviewLimit = 240

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct {
	imageBaseURL string
	showDetails  bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(imageBaseURL string, showDetails bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		imageBaseURL: imageBaseURL,
		showDetails:  showDetails,
	}
}

// FormatMoviePage formats one page of results with its position
func (f *ConsoleFormatter) FormatMoviePage(movies []tmdb.MovieSummary, page, totalPages int) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nPage %d of %d\n", page, totalPages)
	sb.WriteString(f.FormatMovieList(movies))
	return sb.String()
}

// FormatMovieList formats a list of movies for console display
func (f *ConsoleFormatter) FormatMovieList(movies []tmdb.MovieSummary) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nMovie")
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(movies))

	// Format each movie
	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, movie, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatFavorites formats the favorites list
func (f *ConsoleFormatter) FormatFavorites(movies []tmdb.MovieSummary) string {
	if len(movies) == 0 {
		return "No favourite movies yet"
	}
	return "\nFavourite Movies" + f.FormatMovieList(movies)
}

// FormatBanner formats the featured movie shown above a listing
func (f *ConsoleFormatter) FormatBanner(movie tmdb.MovieSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n★ %s\n", movie.Title)
	if movie.Overview != "" {
		fmt.Fprintf(&sb, "  %s\n", truncate(movie.Overview, overviewLimit))
	}
	if url := BannerURL(f.imageBaseURL, movie); url != "" && f.showDetails {
		fmt.Fprintf(&sb, "  %s\n", url)
	}
	return sb.String()
}

// FormatMovieDetail formats the full detail view of a movie
func (f *ConsoleFormatter) FormatMovieDetail(movie *tmdb.MovieDetail, isFavorite bool) string {
	var sb strings.Builder

	heart := "♡"
	if isFavorite {
		heart = "♥"
	}

	fmt.Fprintf(&sb, "\n%s %s\n", movie.Title, heart)
	fmt.Fprintf(&sb, "%s • %s\n", ReleaseYear(movie.ReleaseDate), Runtime(movie.Runtime))
	fmt.Fprintf(&sb, "★ %s (%d votes)\n", Rating(movie.VoteAverage), movie.VoteCount)

	if movie.Tagline != "" {
		fmt.Fprintf(&sb, "\n%q\n", movie.Tagline)
	}

	rows := [][2]string{
		{"Overview", ValueOrNA(movie.Overview)},
		{"Genres", JoinNames(movie.GenreNames())},
		{"Budget", Budget(movie.Budget)},
		{"Revenue", Revenue(movie.Revenue)},
		{"Production Companies", JoinNames(movie.CompanyNames())},
	}
	if f.showDetails {
		rows = append(rows,
			[2]string{"Poster", ValueOrNA(PosterURL(f.imageBaseURL, movie.MovieSummary))},
			[2]string{"IMDb", ValueOrNA(movie.IMDbID)},
		)
	}

	for _, row := range rows {
		fmt.Fprintf(&sb, "\n%s\n  %s\n", row[0], row[1])
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatGenres formats the genre taxonomy
func (f *ConsoleFormatter) FormatGenres(genres []tmdb.Genre) string {
	if len(genres) == 0 {
		return "No genres available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nGenres (%d):\n\n", len(genres))

	for i, genre := range genres {
		prefix := "├"
		if i == len(genres)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s (ID: %d)\n", prefix, genre.Name, genre.ID)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatProfile formats the account profile. A nil account means the
// profile could not be fetched.
func (f *ConsoleFormatter) FormatProfile(account *tmdb.Account) string {
	if account == nil || account.Username == "" {
		return "No Username"
	}

	var sb strings.Builder
	sb.WriteString(account.Username)
	if account.Name != "" {
		fmt.Fprintf(&sb, " (%s)", account.Name)
	}
	if f.showDetails {
		fmt.Fprintf(&sb, "\nAccount ID: %d", account.ID)
		if account.ISO6391 != "" {
			fmt.Fprintf(&sb, "\nLanguage: %s-%s", account.ISO6391, account.ISO31661)
		}
	}
	return sb.String()
}

// formatMovie formats a single movie entry
func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie tmdb.MovieSummary, isLast bool) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── %s (%s)\n", prefix, movie.Title, ReleaseYear(movie.ReleaseDate))

	indent := "│   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%sID: %d | Rating: %s\n", indent, movie.ID, Rating(movie.VoteAverage))

	if !f.showDetails {
		return
	}

	if movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Overview, overviewLimit))
	}
	if url := PosterURL(f.imageBaseURL, movie); url != "" {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, url)
	}
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
