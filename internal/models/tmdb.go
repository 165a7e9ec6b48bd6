package models

// TMDBFindResponse is the shape returned by the TMDB /find endpoint when
// resolving an IMDb identifier.
type TMDBFindResponse struct {
	MovieResults []TMDBResult `json:"movie_results"`
	TVResults    []TMDBResult `json:"tv_results"`
}

type TMDBResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// TMDBDetailsResponse is the subset of the details endpoint used for
// enrichment, fetched with credits and videos appended.
type TMDBDetailsResponse struct {
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Credits     struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Site string `json:"site"`
			Type string `json:"type"`
		} `json:"results"`
	} `json:"videos"`
}
