// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client is a thin, stateless wrapper: every method issues at most one
// HTTP request against the configured base URL and maps the response onto
// typed read models. It never retries, batches or caches.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(tmdb.Config{
//		BaseURL:   tmdb.DefaultBaseURL,
//		Token:     os.Getenv("MARQUEE_TMDB_TOKEN"),
//		AccountID: os.Getenv("MARQUEE_TMDB_ACCOUNT_ID"),
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.ListMovies(ctx, tmdb.ListFilter{GenreID: 878, Page: 2})
//
// # Error Handling
//
// Failing calls return one of two error types:
//
//   - *RequestFailedError: the service answered with a non-2xx status
//   - *TransportError: no usable response (connection, read or decode failure)
//
// Callers branch on kind with errors.As:
//
//	var reqErr *tmdb.RequestFailedError
//	if errors.As(err, &reqErr) && reqErr.IsUnauthorized() {
//		// bad token
//	}
//
// ListFavorites and GetAccountProfile never fail. Their signatures carry no
// error: a failure degrades to an empty slice or a nil account.
package tmdb
