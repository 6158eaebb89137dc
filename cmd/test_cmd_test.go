package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

func TestRunTestFetchesProfileOnce(t *testing.T) {
	var profileRequests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/genre/movie/list":
			_ = json.NewEncoder(w).Encode(map[string]any{"genres": []tmdb.Genre{{ID: 28, Name: "Action"}}})
		case "/account/7":
			profileRequests.Add(1)
			_ = json.NewEncoder(w).Encode(tmdb.Account{ID: 7, Username: "cinephile"})
		case "/account/7/favorite/movies":
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []tmdb.MovieSummary{{ID: 550}}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(tmdb.Config{BaseURL: server.URL, Token: "token", AccountID: "7"}, zerolog.Nop())
	require.NoError(t, err)

	prevCfg, prevClient, prevBrowser, prevFilters := cfg, tmdbClient, browser, filters
	t.Cleanup(func() { cfg, tmdbClient, browser, filters = prevCfg, prevClient, prevBrowser, prevFilters })

	cfg = &config.Config{TMDB: config.TMDBConfig{BaseURL: server.URL, AccountID: "7"}}
	tmdbClient = client
	browser = browse.NewBrowser(client, zerolog.Nop())
	filters = filter.NewManager()

	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	require.NoError(t, runTest(cmd, nil))
	assert.Equal(t, int32(1), profileRequests.Load())
}
