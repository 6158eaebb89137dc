package filter

import (
	"context"

	"github.com/s0up4200/marquee/tmdb"
)

// Apply returns the movies matching f, keeping their order. It stops at
// the first evaluation error or when ctx is done.
func Apply(ctx context.Context, f Filter, movies []tmdb.MovieSummary) ([]tmdb.MovieSummary, error) {
	matches := make([]tmdb.MovieSummary, 0, len(movies))

	for _, movie := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := f.Evaluate(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, movie)
		}
	}

	return matches, nil
}
