package tmdb

import (
	"context"
)

// Catalog defines the operations the rest of the application needs from TMDB
type Catalog interface {
	// ListMovies discovers or searches movies, one page at a time
	ListMovies(ctx context.Context, filter ListFilter) (*MoviePage, error)

	// ListGenres retrieves the movie genre taxonomy
	ListGenres(ctx context.Context) ([]Genre, error)

	// GetMovieDetail retrieves a single movie by its TMDB id
	GetMovieDetail(ctx context.Context, id string) (*MovieDetail, error)

	// ListFavorites retrieves the account's favorite movies, empty on failure
	ListFavorites(ctx context.Context) []MovieSummary

	// SetFavorite adds or removes a movie from the account's favorites
	SetFavorite(ctx context.Context, mediaID int, favorite bool) (*FavoriteAck, error)

	// GetAccountProfile retrieves the account profile, nil on failure
	GetAccountProfile(ctx context.Context) *Account

	// SearchMovies runs a first-page free-text search
	SearchMovies(ctx context.Context, query string) ([]MovieSummary, error)
}

var _ Catalog = (*Client)(nil)
