package models

// StationLine is one metro line with its stations in running order.
type StationLine struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Stations []StationInfo `json:"stations"`
}

// StationInfo describes a station on a line.
type StationInfo struct {
	Name          string `json:"name"`
	IsInterchange bool   `json:"is_interchange"`
}

// StationList is the station directory.
type StationList struct {
	Lines        []StationLine `json:"lines"`
	StationCount int           `json:"station_count"`
}
