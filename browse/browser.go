package browse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/tmdb"
)

// NoUsername is shown when the account profile is unavailable
const NoUsername = "No Username"

// HomeView is the discovery screen: the genre bar and one page of movies.
// Genres and movies load independently, so either may fail alone.
type HomeView struct {
	Genres    []tmdb.Genre
	GenresErr error
	Movies    *tmdb.MoviePage
	MoviesErr error
	Pager     Pager
}

// Featured returns the first movie of the page, shown as the banner
func (v *HomeView) Featured() (tmdb.MovieSummary, bool) {
	if v.Movies == nil || len(v.Movies.Results) == 0 {
		return tmdb.MovieSummary{}, false
	}
	return v.Movies.Results[0], true
}

// DetailView is a movie detail together with its favorite state
type DetailView struct {
	Movie      *tmdb.MovieDetail
	IsFavorite bool
}

// ProfileView is the account screen
type ProfileView struct {
	Account *tmdb.Account
}

// DisplayName returns the username, or NoUsername when it is unknown
func (v ProfileView) DisplayName() string {
	if v.Account == nil || v.Account.Username == "" {
		return NoUsername
	}
	return v.Account.Username
}

// Browser drives the screens of the application on top of a catalog
type Browser struct {
	catalog tmdb.Catalog
	logger  zerolog.Logger
}

// NewBrowser creates a new Browser
func NewBrowser(catalog tmdb.Catalog, logger zerolog.Logger) *Browser {
	return &Browser{
		catalog: catalog,
		logger:  logger,
	}
}

// Home loads the genre list and a page of movies concurrently. A failure
// of one does not cancel the other; each error is kept on the view.
func (b *Browser) Home(ctx context.Context, filter tmdb.ListFilter) HomeView {
	var (
		view HomeView
		g    errgroup.Group
	)

	g.Go(func() error {
		view.Genres, view.GenresErr = b.catalog.ListGenres(ctx)
		if view.GenresErr != nil {
			b.logger.Warn().Err(view.GenresErr).Msg("Failed to load genres")
		}
		return nil
	})

	g.Go(func() error {
		view.Movies, view.MoviesErr = b.catalog.ListMovies(ctx, filter)
		if view.MoviesErr != nil {
			b.logger.Warn().Err(view.MoviesErr).Int("page", filter.Page).Msg("Failed to load movies")
		}
		return nil
	})

	// Both goroutines always return nil
	_ = g.Wait()

	if view.Movies != nil {
		view.Pager = NewPager(view.Movies.Page, view.Movies.TotalPages)
	} else {
		view.Pager = NewPager(filter.Page, 1)
	}

	return view
}

// Detail loads a movie and the favorites list concurrently and reports
// whether the movie is a favorite
func (b *Browser) Detail(ctx context.Context, id string) (*DetailView, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		detail    *tmdb.MovieDetail
		favorites []tmdb.MovieSummary
	)

	g.Go(func() error {
		var err error
		detail, err = b.catalog.GetMovieDetail(gctx, id)
		return err
	})

	g.Go(func() error {
		favorites = b.catalog.ListFavorites(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load movie %s: %w", id, err)
	}

	return &DetailView{
		Movie:      detail,
		IsFavorite: tmdb.ContainsMovie(favorites, detail.ID),
	}, nil
}

// ToggleFavorite flips the favorite state of a movie. On failure the
// previous state is returned with the error.
func (b *Browser) ToggleFavorite(ctx context.Context, movieID int, current bool) (bool, error) {
	desired := !current

	ack, err := b.catalog.SetFavorite(ctx, movieID, desired)
	if err != nil {
		b.logger.Error().Err(err).Int("movie_id", movieID).Bool("favorite", desired).Msg("Failed to update favorite")
		return current, err
	}

	b.logger.Debug().
		Int("movie_id", movieID).
		Bool("favorite", desired).
		Int("status_code", ack.StatusCode).
		Msg("Favorite updated")

	return desired, nil
}

// SetFavorite sets the favorite state of a movie to an explicit value
func (b *Browser) SetFavorite(ctx context.Context, movieID int, favorite bool) error {
	_, err := b.ToggleFavorite(ctx, movieID, !favorite)
	return err
}

// Favorites returns the favorite movies, empty when they cannot be loaded
func (b *Browser) Favorites(ctx context.Context) []tmdb.MovieSummary {
	return b.catalog.ListFavorites(ctx)
}

// Profile returns the account screen
func (b *Browser) Profile(ctx context.Context) ProfileView {
	return ProfileView{Account: b.catalog.GetAccountProfile(ctx)}
}

// ResolveGenre turns a genre id or a case-insensitive genre name into an id
func (b *Browser) ResolveGenre(ctx context.Context, nameOrID string) (int, error) {
	nameOrID = strings.TrimSpace(nameOrID)
	if id, err := strconv.Atoi(nameOrID); err == nil {
		return id, nil
	}

	genres, err := b.catalog.ListGenres(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve genre %q: %w", nameOrID, err)
	}

	for _, genre := range genres {
		if strings.EqualFold(genre.Name, nameOrID) {
			return genre.ID, nil
		}
	}

	return 0, fmt.Errorf("unknown genre %q", nameOrID)
}

// Loader fetches several movie details concurrently with a bounded number
// of requests in flight
type Loader struct {
	catalog     tmdb.Catalog
	concurrency int
	logger      zerolog.Logger
}

// DefaultConcurrency is the number of detail requests a Loader runs at once
const DefaultConcurrency = 5

// NewLoader creates a new Loader
func NewLoader(catalog tmdb.Catalog, concurrency int, logger zerolog.Logger) *Loader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Loader{catalog: catalog, concurrency: concurrency, logger: logger}
}

// Details fetches the detail of every movie, keeping input order. Movies
// that fail to load are logged and skipped.
func (l *Loader) Details(ctx context.Context, movies []tmdb.MovieSummary) []*tmdb.MovieDetail {
	results := make([]*tmdb.MovieDetail, len(movies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	var mu sync.Mutex
	for i, movie := range movies {
		g.Go(func() error {
			detail, err := l.catalog.GetMovieDetail(ctx, strconv.Itoa(movie.ID))
			if err != nil {
				l.logger.Warn().Err(err).Int("movie_id", movie.ID).Str("movie", movie.Title).Msg("Failed to get movie details")
				return nil
			}

			mu.Lock()
			results[i] = detail
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	details := make([]*tmdb.MovieDetail, 0, len(movies))
	for _, d := range results {
		if d != nil {
			details = append(details, d)
		}
	}
	return details
}
