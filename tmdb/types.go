package tmdb

import (
	"strings"
)

// MediaTypeMovie is the only media type this client marks as favorite
const MediaTypeMovie = "movie"

// MovieSummary is a movie as returned by list, discover and search endpoints
type MovieSummary struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video,omitempty"`
}

// Year returns the year part of the release date, or an empty string
func (m *MovieSummary) Year() string {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// HasGenre checks if the movie is tagged with the given genre id
func (m *MovieSummary) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Genre is an entry of the movie genre taxonomy
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a company credited on a movie
type ProductionCompany struct {
	ID            int    `json:"id,omitempty"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
}

// MovieDetail is the full record returned by the movie details endpoint
type MovieDetail struct {
	MovieSummary

	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Tagline             string              `json:"tagline,omitempty"`
	Status              string              `json:"status,omitempty"`
	Homepage            string              `json:"homepage,omitempty"`
	IMDbID              string              `json:"imdb_id,omitempty"`
}

// GenreNames returns the genre names in the order TMDB sent them
func (d *MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}

// CompanyNames returns the production company names in the order TMDB sent them
func (d *MovieDetail) CompanyNames() []string {
	names := make([]string, 0, len(d.ProductionCompanies))
	for _, c := range d.ProductionCompanies {
		names = append(names, c.Name)
	}
	return names
}

// ListFilter selects which movies ListMovies returns.
// Query takes precedence over GenreID; with neither set the popularity
// sorted discovery listing is used.
type ListFilter struct {
	Query   string
	GenreID int
	Page    int
}

// page returns the 1-based page number to request
func (f ListFilter) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

// MoviePage is one page of movie results
type MoviePage struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// HasMorePages checks if there are more pages after this one
func (p *MoviePage) HasMorePages() bool {
	return p.Page < p.TotalPages
}

// Account is the TMDB account profile
type Account struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Username     string        `json:"username"`
	IncludeAdult bool          `json:"include_adult"`
	ISO6391      string        `json:"iso_639_1,omitempty"`
	ISO31661     string        `json:"iso_3166_1,omitempty"`
	Avatar       AccountAvatar `json:"avatar"`
}

// AccountAvatar holds the avatar references of an account
type AccountAvatar struct {
	Gravatar struct {
		Hash string `json:"hash"`
	} `json:"gravatar"`
	TMDB struct {
		AvatarPath string `json:"avatar_path"`
	} `json:"tmdb"`
}

// FavoriteAck is the acknowledgment returned by the favorite mutation.
// TMDB uses the same shape for its error bodies.
type FavoriteAck struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// favoriteRequest is the body of the favorite mutation
type favoriteRequest struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Favorite  bool   `json:"favorite"`
}

type genreList struct {
	Genres []Genre `json:"genres"`
}
