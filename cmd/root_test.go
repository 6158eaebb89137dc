package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

func setupFilters(t *testing.T, defaultExpression string) {
	t.Helper()

	cfg = &config.Config{
		Filter: config.FilterConfig{
			DefaultExpression: defaultExpression,
			Presets: map[string]config.FilterPreset{
				"action": {Expression: "hasGenre(28)", Description: "Action movies"},
			},
		},
	}
	filters = filter.NewManager()
	require.NoError(t, filters.RegisterFilter("action", "hasGenre(28)"))
	logger = zerolog.Nop()

	filterExpr, preset = "", ""
	t.Cleanup(func() { filterExpr, preset = "", "" })
}

func TestGetFilterExpression(t *testing.T) {
	t.Run("flag wins over preset", func(t *testing.T) {
		setupFilters(t, "Adult")
		filterExpr, preset = "Year > 2000", "action"

		expr, err := getFilterExpression()
		require.NoError(t, err)
		assert.Equal(t, "Year > 2000", expr)
	})

	t.Run("preset", func(t *testing.T) {
		setupFilters(t, "")
		preset = "action"

		expr, err := getFilterExpression()
		require.NoError(t, err)
		assert.Equal(t, "action", expr)
	})

	t.Run("unknown preset", func(t *testing.T) {
		setupFilters(t, "")
		preset = "horror"

		_, err := getFilterExpression()
		assert.ErrorContains(t, err, "preset 'horror' not found")
	})

	t.Run("default expression", func(t *testing.T) {
		setupFilters(t, "VoteAverage > 7")

		expr, err := getFilterExpression()
		require.NoError(t, err)
		assert.Equal(t, "VoteAverage > 7", expr)
	})
}

func TestApplyFilter(t *testing.T) {
	movies := []tmdb.MovieSummary{
		{ID: 1, Title: "Heat", GenreIDs: []int{28, 80}},
		{ID: 2, Title: "Amélie", GenreIDs: []int{35}},
	}

	t.Run("no filter keeps everything", func(t *testing.T) {
		setupFilters(t, "")

		got, err := applyFilter(context.Background(), movies)
		require.NoError(t, err)
		assert.Equal(t, movies, got)
	})

	t.Run("preset", func(t *testing.T) {
		setupFilters(t, "")
		preset = "action"

		got, err := applyFilter(context.Background(), movies)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Heat", got[0].Title)
	})

	t.Run("invalid expression", func(t *testing.T) {
		setupFilters(t, "")
		filterExpr = "Budget >"

		_, err := applyFilter(context.Background(), movies)
		assert.ErrorContains(t, err, "invalid filter expression")
	})
}

func TestSetupLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("v1.4.2")
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", v.String())

	_, err = parseVersion("dev")
	assert.Error(t, err)
}

func TestFeaturedMovieFollowsFilter(t *testing.T) {
	setupFilters(t, "")
	preset = "action"

	movies := []tmdb.MovieSummary{
		{ID: 2, Title: "Amélie", GenreIDs: []int{35}},
		{ID: 1, Title: "Heat", GenreIDs: []int{28, 80}},
	}

	view := browse.HomeView{Movies: &tmdb.MoviePage{Page: 1, TotalPages: 1, Results: movies}}

	filtered, err := applyFilter(context.Background(), view.Movies.Results)
	require.NoError(t, err)
	view.Movies.Results = filtered

	featured, ok := view.Featured()
	require.True(t, ok)
	assert.Equal(t, "Heat", featured.Title)

	preset = ""
	filterExpr = "Adult"
	view.Movies.Results, err = applyFilter(context.Background(), movies)
	require.NoError(t, err)
	_, ok = view.Featured()
	assert.False(t, ok)
}

func TestGenreResolver(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"genres": []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}},
		})
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(tmdb.Config{BaseURL: server.URL, Token: "token", AccountID: "1"}, zerolog.Nop())
	require.NoError(t, err)
	prev := browser
	browser = browse.NewBrowser(client, zerolog.Nop())
	t.Cleanup(func() { browser = prev })

	resolve := genreResolver(context.Background())

	id, err := resolve("action")
	require.NoError(t, err)
	assert.Equal(t, 28, id)

	id, err = resolve("action")
	require.NoError(t, err)
	assert.Equal(t, 28, id)
	assert.Equal(t, int32(1), requests.Load())

	id, err = resolve("18")
	require.NoError(t, err)
	assert.Equal(t, 18, id)
	assert.Equal(t, int32(1), requests.Load())

	_, err = resolve("western")
	assert.ErrorContains(t, err, "unknown genre")

	t.Run("usable in filter expressions", func(t *testing.T) {
		manager := filter.NewManager(filter.WithCompiler(filter.NewCompiler(
			filter.WithCustomFunctions(map[string]any{"genreID": resolve}),
		)))

		matches, err := manager.ApplyNamed(context.Background(), `hasGenre(genreID("Drama"))`, []tmdb.MovieSummary{
			{ID: 1, Title: "Heat", GenreIDs: []int{28, 80}},
			{ID: 2, Title: "Manchester by the Sea", GenreIDs: []int{18}},
		})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 2, matches[0].ID)
	})
}
