package models

// Trip is a planned metro journey posted by a user.
type Trip struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	TravelDate   string    `json:"travel_date"`
	TravelTime   string    `json:"travel_time"`
	IsRepeating  bool      `json:"is_repeating"`
	RepeatDays   []int     `json:"repeat_days"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// TripInput is the request body for creating or replacing a trip.
type TripInput struct {
	StartStation string `json:"start_station"`
	EndStation   string `json:"end_station"`
	TravelDate   string `json:"travel_date"`
	TravelTime   string `json:"travel_time"`
	IsRepeating  *bool  `json:"is_repeating,omitempty"`
	RepeatDays   []int  `json:"repeat_days,omitempty"`
}

// TripList wraps a list of trips.
type TripList struct {
	Items []Trip `json:"items"`
}

// SearchQuery carries the raw query parameters of a trip search.
type SearchQuery struct {
	StartStation string
	EndStation   string
	TravelDate   string
	TravelTime   string
	GenderFilter string
}

// TripMatch is a ranked search result: the trip, its owner and how well it fits.
type TripMatch struct {
	Trip
	MatchQuality  string        `json:"match_quality"`
	StartDistance int           `json:"start_distance"`
	EndDistance   int           `json:"end_distance"`
	TimeDiff      int           `json:"time_diff"`
	SortScore     float64       `json:"sort_score"`
	User          PublicProfile `json:"user"`
}

// SearchResults is the outcome of a trip search, best match first. The
// endpoint writes Items as a bare JSON array.
type SearchResults struct {
	Items []TripMatch `json:"items"`
	Count int         `json:"count"`
}
