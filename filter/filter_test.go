package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hasGenre(28)`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `containsFold(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Rating > 5`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `VoteAverage + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `hasGenre(28) and Year > 2020 and VoteAverage >= 7.0 and not Adult`,
		},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	movie := tmdb.MovieSummary{
		ID:               550,
		Title:            "Fight Club",
		Overview:         "An insomniac office worker and a soap maker form an underground fight club.",
		ReleaseDate:      "1999-10-15",
		VoteAverage:      8.4,
		VoteCount:        26000,
		Popularity:       61.4,
		GenreIDs:         []int{18, 53},
		OriginalLanguage: "en",
		PosterPath:       "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{name: "has genre", expression: `hasGenre(18)`, expected: true},
		{name: "missing genre", expression: `hasGenre(28)`, expected: false},
		{name: "genre membership", expression: `53 in GenreIDs`, expected: true},
		{name: "year comparison", expression: `Year < 2000`, expected: true},
		{name: "rating", expression: `VoteAverage >= 8 and VoteCount > 1000`, expected: true},
		{name: "title contains ignores case", expression: `containsFold(Title, "FIGHT")`, expected: true},
		{name: "prefix ignores case", expression: `hasPrefixFold(Title, "fight")`, expected: true},
		{name: "suffix ignores case", expression: `hasSuffixFold(Title, "CLUB")`, expected: true},
		{name: "contains operator is case sensitive", expression: `Title contains "Club"`, expected: true},
		{name: "contains operator misses other case", expression: `Title contains "club"`, expected: false},
		{name: "startsWith operator", expression: `Title startsWith "Fight"`, expected: true},
		{name: "endsWith operator", expression: `Title endsWith "Club"`, expected: true},
		{name: "language", expression: `lower(OriginalLanguage) == "en"`, expected: true},
		{name: "poster", expression: `HasPoster`, expected: true},
		{name: "adult", expression: `Adult`, expected: false},
		{name: "release date older than ten years", expression: `parseDate(ReleaseDate) < yearsAgo(10)`, expected: true},
		{name: "days since release", expression: `daysSince(parseDate(ReleaseDate)) > 365`, expected: true},
		{name: "movie struct access", expression: `Movie.ID == 550`, expected: true},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			result, err := f.Evaluate(movie)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result, tt.expression)
		})
	}
}

func TestEvaluateMissingReleaseDate(t *testing.T) {
	f, err := NewCompiler().Compile(`Year == 0 and parseDate(ReleaseDate).IsZero()`)
	require.NoError(t, err)

	result, err := f.Evaluate(tmdb.MovieSummary{ID: 1, Title: "Untitled"})
	require.NoError(t, err)
	assert.True(t, result)
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 1980 },
	}))

	f, err := compiler.Compile(`isClassic(Year)`)
	require.NoError(t, err)

	result, err := f.Evaluate(tmdb.MovieSummary{ReleaseDate: "1972-03-14"})
	require.NoError(t, err)
	assert.True(t, result)
}

func TestEvaluationError(t *testing.T) {
	f, err := NewCompiler().Compile(`GenreIDs[3] == 1`)
	require.NoError(t, err)

	_, err = f.Evaluate(tmdb.MovieSummary{ID: 7, Title: "Se7en", GenreIDs: []int{80}})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, 7, evalErr.MovieID)
	assert.Equal(t, "Se7en", evalErr.MovieTitle)
}

func TestApply(t *testing.T) {
	movies := generateTestMovies(20)

	f, err := NewCompiler().Compile(`hasGenre(28) and VoteAverage >= 7`)
	require.NoError(t, err)

	matches, err := Apply(context.Background(), f, movies)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	// Order is preserved and every match satisfies the filter
	for i, movie := range matches {
		assert.True(t, movie.HasGenre(28))
		assert.GreaterOrEqual(t, movie.VoteAverage, 7.0)
		if i > 0 {
			assert.Greater(t, movie.ID, matches[i-1].ID)
		}
	}

	t.Run("no matches is empty not nil", func(t *testing.T) {
		f, err := NewCompiler().Compile(`Adult`)
		require.NoError(t, err)

		matches, err := Apply(context.Background(), f, movies)
		require.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Apply(ctx, f, movies)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestManager(t *testing.T) {
	manager := NewManager()
	ctx := context.Background()

	err := manager.RegisterFilters(map[string]string{
		"action":  `hasGenre(28)`,
		"recent":  `parseDate(ReleaseDate) > yearsAgo(3)`,
		"popular": `Popularity > 50`,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"action", "popular", "recent"}, manager.ListFilters())

	f, exists := manager.GetFilter("action")
	require.True(t, exists)
	assert.Equal(t, `hasGenre(28)`, f.Expression())

	movies := generateTestMovies(30)
	matches, err := manager.ApplyNamed(ctx, "action", movies)
	require.NoError(t, err)
	assert.NotEmpty(t, matches)

	// Not a preset name, compiled as an expression
	matches, err = manager.ApplyNamed(ctx, `Year >= 2024`, movies)
	require.NoError(t, err)
	for _, movie := range matches {
		assert.GreaterOrEqual(t, movie.Year(), "2024")
	}

	_, err = manager.ApplyNamed(ctx, "does-not-exist", movies)
	assert.Error(t, err)

	t.Run("failed batch registers nothing", func(t *testing.T) {
		err := manager.RegisterFilters(map[string]string{
			"good": `Adult`,
			"bad":  `Adult +`,
		})
		require.Error(t, err)
		_, exists := manager.GetFilter("good")
		assert.False(t, exists)
	})

	t.Run("custom compiler", func(t *testing.T) {
		manager := NewManager(WithCompiler(NewCompiler(WithCustomFunctions(map[string]any{
			"genreID": func(name string) (int, error) { return 28, nil },
		}))))

		require.NoError(t, manager.RegisterFilter("action", `hasGenre(genreID("Action"))`))
		matches, err := manager.ApplyNamed(ctx, "action", generateTestMovies(8))
		require.NoError(t, err)
		assert.NotEmpty(t, matches)
		for _, movie := range matches {
			assert.True(t, movie.HasGenre(28))
		}
	})
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`hasGenre(28)`)
	require.NoError(t, err)

	second, err := compiler.Compile(`  hasGenre(28)  `)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`Year > 2000`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Adult`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	// The least recently used entry was evicted
	third, err := compiler.Compile(`hasGenre(28)`)
	require.NoError(t, err)
	assert.NotSame(t, first, third)

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestNoCache(t *testing.T) {
	compiler := NewCompiler()
	_, err := compiler.Compile(`Adult`)
	require.NoError(t, err)
	assert.Equal(t, 0, compiler.Size())
}

func TestReleaseDateHelpers(t *testing.T) {
	f, err := NewCompiler().Compile(`parseDate(ReleaseDate) > now().AddDate(0, -1, 0)`)
	require.NoError(t, err)

	recent := tmdb.MovieSummary{ReleaseDate: time.Now().AddDate(0, 0, -3).Format(dateLayout)}
	result, err := f.Evaluate(recent)
	require.NoError(t, err)
	assert.True(t, result)
}
