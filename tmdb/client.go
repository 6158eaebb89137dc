package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is the locale used by SearchMovies
	DefaultLanguage = "en-US"

	favoriteFallbackMessage = "Failed to mark as favorite"
)

// Config holds the static credentials and endpoint of the client
type Config struct {
	BaseURL   string
	Token     string
	AccountID string
	Language  string
}

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	token      string
	accountID  string
	language   string
	userAgent  string
	timeout    *time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: API token is required", ErrInvalidConfig)
	}
	if cfg.AccountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", ErrInvalidConfig)
	}

	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	client := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		accountID:  cfg.AccountID,
		language:   language,
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout != nil {
		httpClient := *client.httpClient
		httpClient.Timeout = *client.timeout
		client.httpClient = &httpClient
	}

	return client, nil
}

// response is a fully read HTTP response
type response struct {
	statusCode int
	statusText string
	body       []byte
}

func (r *response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// doRequest performs an authenticated HTTP request and reads the whole body
func (c *Client) doRequest(ctx context.Context, op, method, endpoint string, params url.Values, payload any) (*response, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("TMDB API response")

	return &response{
		statusCode: resp.StatusCode,
		statusText: statusText(resp),
		body:       data,
	}, nil
}

// getJSON performs a GET and decodes a 2xx body into out
func (c *Client) getJSON(ctx context.Context, op, endpoint string, params url.Values, out any) error {
	resp, err := c.doRequest(ctx, op, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}

	if !resp.ok() {
		return &RequestFailedError{
			Op:         op,
			StatusCode: resp.statusCode,
			Status:     resp.statusText,
			Message:    resp.statusText,
		}
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// statusText returns the reason phrase of a response, e.g. "Not Found"
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// ListMovies retrieves one page of movies. A non-empty Query searches by
// text; otherwise a GenreID narrows the popularity sorted discovery listing.
func (c *Client) ListMovies(ctx context.Context, filter ListFilter) (*MoviePage, error) {
	params := url.Values{}
	endpoint := "/discover/movie"

	switch {
	case filter.Query != "":
		endpoint = "/search/movie"
		params.Set("query", filter.Query)
	case filter.GenreID > 0:
		params.Set("with_genres", strconv.Itoa(filter.GenreID))
		params.Set("sort_by", "popularity.desc")
	default:
		params.Set("sort_by", "popularity.desc")
	}
	params.Set("page", strconv.Itoa(filter.page()))

	var page MoviePage
	if err := c.getJSON(ctx, "fetch movies", endpoint, params, &page); err != nil {
		return nil, err
	}

	// TMDB omits page and total_pages on some error-shaped 200 bodies
	if page.Page < 1 {
		page.Page = filter.page()
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	if page.Results == nil {
		page.Results = []MovieSummary{}
	}

	c.logger.Debug().
		Int("page", page.Page).
		Int("total_pages", page.TotalPages).
		Int("count", len(page.Results)).
		Msg("Retrieved movies from TMDB")

	return &page, nil
}

// ListGenres retrieves the movie genre taxonomy
func (c *Client) ListGenres(ctx context.Context) ([]Genre, error) {
	var list genreList
	if err := c.getJSON(ctx, "fetch genres", "/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}

	if list.Genres == nil {
		list.Genres = []Genre{}
	}
	return list.Genres, nil
}

// GetMovieDetail retrieves a single movie. The id is sent as given, an
// empty id included; the service decides whether it is valid.
func (c *Client) GetMovieDetail(ctx context.Context, id string) (*MovieDetail, error) {
	var detail MovieDetail
	if err := c.getJSON(ctx, "fetch movie details", "/movie/"+url.PathEscape(id), nil, &detail); err != nil {
		c.logger.Error().Err(err).Str("movie_id", id).Msg("Error fetching movie details")
		return nil, err
	}

	return &detail, nil
}

// ListFavorites retrieves the account's favorite movies.
// Any failure is logged and yields an empty list.
func (c *Client) ListFavorites(ctx context.Context) []MovieSummary {
	var page MoviePage
	if err := c.getJSON(ctx, "fetch favorite movies", c.accountPath("/favorite/movies"), nil, &page); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to fetch favorite movies, treating as empty")
		return []MovieSummary{}
	}

	if page.Results == nil {
		return []MovieSummary{}
	}
	return page.Results
}

// IsFavorite checks whether a movie is in the account's favorites
func (c *Client) IsFavorite(ctx context.Context, movieID int) bool {
	return ContainsMovie(c.ListFavorites(ctx), movieID)
}

// SetFavorite adds (favorite=true) or removes a movie from the favorites
func (c *Client) SetFavorite(ctx context.Context, mediaID int, favorite bool) (*FavoriteAck, error) {
	const op = "mark as favorite"

	payload := favoriteRequest{
		MediaType: MediaTypeMovie,
		MediaID:   mediaID,
		Favorite:  favorite,
	}

	resp, err := c.doRequest(ctx, op, http.MethodPost, c.accountPath("/favorite"), nil, payload)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		message := favoriteFallbackMessage
		var body FavoriteAck
		if json.Unmarshal(resp.body, &body) == nil && body.StatusMessage != "" {
			message = body.StatusMessage
		}
		return nil, &RequestFailedError{
			Op:         op,
			StatusCode: resp.statusCode,
			Status:     resp.statusText,
			Message:    message,
		}
	}

	var ack FavoriteAck
	if err := json.Unmarshal(resp.body, &ack); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	c.logger.Info().
		Int("media_id", mediaID).
		Bool("favorite", favorite).
		Msg("Updated favorite")

	return &ack, nil
}

// GetAccountProfile retrieves the account profile, or nil if it could not
// be fetched
func (c *Client) GetAccountProfile(ctx context.Context) *Account {
	var account Account
	if err := c.getJSON(ctx, "fetch user details", c.accountPath(""), nil, &account); err != nil {
		c.logger.Warn().Err(err).Msg("Error fetching user details")
		return nil
	}
	return &account
}

// SearchMovies runs a free-text search and returns the first page of
// results. A blank query returns an empty list without a request.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]MovieSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []MovieSummary{}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	params.Set("page", "1")

	var page MoviePage
	if err := c.getJSON(ctx, "search movies", "/search/movie", params, &page); err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("Error fetching movies")
		return nil, err
	}

	if page.Results == nil {
		return []MovieSummary{}, nil
	}
	return page.Results, nil
}

// accountPath builds an endpoint below the configured account. Favorites
// listing shares the configured id with the favorite mutation and the
// profile; it never sends a literal "{account_id}" placeholder.
func (c *Client) accountPath(suffix string) string {
	return "/account/" + url.PathEscape(c.accountID) + suffix
}

// ContainsMovie reports whether movies holds a movie with the given id
func ContainsMovie(movies []MovieSummary, movieID int) bool {
	for _, m := range movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}
