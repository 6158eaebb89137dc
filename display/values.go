package display

import (
	"math"
	"strconv"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

// Separator joins multi-valued fields such as genres
const Separator = " • "

// NotAvailable is shown for missing values
const NotAvailable = "N/A"

// Image sizes used by the screens
const (
	PosterSize = "w500"
	BannerSize = "w780"
)

// JoinNames joins names with the bullet separator, keeping their order
func JoinNames(names []string) string {
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, Separator)
}

// ValueOrNA returns s, or N/A when s is blank
func ValueOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Budget renders a budget in millions without rounding, e.g. "$63 million"
// or "$2.5 million"
func Budget(amount int64) string {
	return "$" + strconv.FormatFloat(float64(amount)/1_000_000, 'f', -1, 64) + " million"
}

// Revenue renders revenue in whole millions, e.g. "$101 million"
func Revenue(amount int64) string {
	return "$" + strconv.FormatInt(int64(math.Round(float64(amount)/1_000_000)), 10) + " million"
}

// Rating renders a vote average as a rounded score out of ten
func Rating(voteAverage float64) string {
	return strconv.Itoa(int(math.Round(voteAverage))) + "/10"
}

// Runtime renders a runtime in minutes, e.g. "139m"
func Runtime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(minutes) + "m"
}

// ImageURL builds an image URL from the image base, a size and a relative
// path. It returns an empty string when the path is empty.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}

// PosterURL returns the poster image URL of a movie
func PosterURL(base string, movie tmdb.MovieSummary) string {
	return ImageURL(base, PosterSize, movie.PosterPath)
}

// BannerURL returns the wide banner image URL of a movie, falling back to
// the poster when there is no backdrop
func BannerURL(base string, movie tmdb.MovieSummary) string {
	path := movie.BackdropPath
	if path == "" {
		path = movie.PosterPath
	}
	return ImageURL(base, BannerSize, path)
}

// truncate shortens s to at most limit runes, adding an ellipsis
func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// ReleaseYear returns the year part of a YYYY-MM-DD date, or N/A
func ReleaseYear(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return ValueOrNA(year)
}
